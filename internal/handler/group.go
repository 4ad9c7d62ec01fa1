package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// GroupHandler handles group HTTP requests
type GroupHandler struct {
	groups services.GroupService
	logger *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups services.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, logger: logger}
}

type createGroupRequest struct {
	FolderID string `json:"folderId"`
	Title    string `json:"title"`
}

type groupScopeRequest struct {
	FolderID   string   `json:"folderId"`
	OrderedIDs []string `json:"orderedIds"`
}

// Create creates a new group in a folder
// POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	group, err := h.groups.Create(r.Context(), httputil.GetUserID(r), req.FolderID, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, group)
}

// Rename updates a group title
// PATCH /api/groups/{id}
func (h *GroupHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req titleRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	group, err := h.groups.Rename(r.Context(), httputil.GetUserID(r), id, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, group)
}

// Delete removes a group and its bookmarks
// DELETE /api/groups/{id}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.groups.Delete(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder rewrites the group ordering within a folder
// PUT /api/groups/reorder
func (h *GroupHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req groupScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.groups.Reorder(r.Context(), httputil.GetUserID(r), req.FolderID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move reparents a group into another folder
// PUT /api/groups/{id}/move
func (h *GroupHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req groupScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.groups.Move(r.Context(), httputil.GetUserID(r), id, req.FolderID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
