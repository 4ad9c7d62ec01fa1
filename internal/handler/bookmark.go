package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	bookmarks services.BookmarkService
	logger    *slog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(bookmarks services.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, logger: logger}
}

type bookmarkScopeRequest struct {
	GroupID    string   `json:"groupId"`
	OrderedIDs []string `json:"orderedIds"`
}

// Create creates a new bookmark in a group
// POST /api/bookmarks
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookmarkRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	bookmark, err := h.bookmarks.Create(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, bookmark)
}

// Update patches a bookmark's url, title, description, or tag set
// PATCH /api/bookmarks/{id}
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateBookmarkRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	bookmark, err := h.bookmarks.Update(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, bookmark)
}

// Delete removes a bookmark
// DELETE /api/bookmarks/{id}
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder rewrites the bookmark ordering within a group
// PUT /api/bookmarks/reorder
func (h *BookmarkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req bookmarkScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.bookmarks.Reorder(r.Context(), httputil.GetUserID(r), req.GroupID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move reparents a bookmark into another group
// PUT /api/bookmarks/{id}/move
func (h *BookmarkHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req bookmarkScopeRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	if err := h.bookmarks.Move(r.Context(), httputil.GetUserID(r), id, req.GroupID, req.OrderedIDs); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
