package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/config"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// PortingHandler handles import and export HTTP requests
type PortingHandler struct {
	porting services.PortingService
	logger  *slog.Logger
}

// NewPortingHandler creates a new porting handler
func NewPortingHandler(porting services.PortingService, logger *slog.Logger) *PortingHandler {
	return &PortingHandler{porting: porting, logger: logger}
}

type importNetscapeRequest struct {
	HTML     string                  `json:"html"`
	Strategy services.ImportStrategy `json:"strategy"`
}

// ImportNetscape imports a browser bookmark HTML document
// POST /api/import
func (h *PortingHandler) ImportNetscape(w http.ResponseWriter, r *http.Request) {
	var req importNetscapeRequest
	if err := httputil.ParseJSON(w, r, config.MaxImportBytes, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	result, err := h.porting.ImportNetscape(r.Context(), httputil.GetUserID(r), req.HTML, req.Strategy)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// ImportJSON imports a previously exported JSON document
// POST /api/import/json
func (h *PortingHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	var doc services.JSONExport
	if err := httputil.ParseJSON(w, r, config.MaxImportBytes, &doc); err != nil {
		handleBodyError(w, err)
		return
	}

	result, err := h.porting.ImportJSON(r.Context(), httputil.GetUserID(r), &doc)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// Export serializes the user's full hierarchy as a download.
// GET /api/export?format=html|json (html is the default)
func (h *PortingHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}

	switch format {
	case "html":
		doc, err := h.porting.ExportNetscape(r.Context(), httputil.GetUserID(r))
		if err != nil {
			handleError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
		w.Write([]byte(doc))

	case "json":
		doc, err := h.porting.ExportJSON(r.Context(), httputil.GetUserID(r))
		if err != nil {
			handleError(w, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.json"`)
		httputil.RespondJSON(w, http.StatusOK, doc)

	default:
		httputil.RespondError(w, http.StatusBadRequest, "format must be html or json")
	}
}
