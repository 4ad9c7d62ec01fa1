package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folders services.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

type createFolderRequest struct {
	WorkspaceID string `json:"workspaceId"`
	Title       string `json:"title"`
}

type folderScopeRequest struct {
	WorkspaceID string   `json:"workspaceId"`
	OrderedIDs  []string `json:"orderedIds"`
}

// Create creates a new folder in a workspace
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	folder, err := h.folders.Create(r.Context(), httputil.GetUserID(r), req.WorkspaceID, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Rename updates a folder title
// PATCH /api/folders/{id}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req titleRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	folder, err := h.folders.Rename(r.Context(), httputil.GetUserID(r), id, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Delete removes a folder and everything under it
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.folders.Delete(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder rewrites the folder ordering within a workspace
// PUT /api/folders/reorder
func (h *FolderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req folderScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.folders.Reorder(r.Context(), httputil.GetUserID(r), req.WorkspaceID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move reparents a folder into another workspace. The body carries the
// destination and the complete post-move ordering of that workspace.
// PUT /api/folders/{id}/move
func (h *FolderHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req folderScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.folders.Move(r.Context(), httputil.GetUserID(r), id, req.WorkspaceID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
