package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// WorkspaceHandler handles workspace HTTP requests
// Follows Clean Architecture: handlers only communicate with services, never repositories
type WorkspaceHandler struct {
	workspaces services.WorkspaceService
	logger     *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaces services.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, logger: logger}
}

type titleRequest struct {
	Title string `json:"title"`
}

type reorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// Create creates a new workspace
// POST /api/workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	ws, err := h.workspaces.Create(r.Context(), httputil.GetUserID(r), req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, ws)
}

// Rename updates a workspace title
// PATCH /api/workspaces/{id}
func (h *WorkspaceHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req titleRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	ws, err := h.workspaces.Rename(r.Context(), httputil.GetUserID(r), id, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, ws)
}

// Delete removes a workspace and everything under it
// DELETE /api/workspaces/{id}
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.workspaces.Delete(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder rewrites the user's workspace ordering
// PUT /api/workspaces/reorder
func (h *WorkspaceHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.workspaces.Reorder(r.Context(), httputil.GetUserID(r), req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
