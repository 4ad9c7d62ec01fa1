package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// PreferencesHandler handles user preference HTTP requests
type PreferencesHandler struct {
	users  services.UserService
	logger *slog.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(users services.UserService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{users: users, logger: logger}
}

// GetPreferences returns the authenticated user's preferences
// GET /api/users/me/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user.Preferences)
}

// UpdatePreferences patches the authenticated user's preferences
// PATCH /api/users/me/preferences
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePreferencesRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	prefs, err := h.users.UpdatePreferences(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, prefs)
}
