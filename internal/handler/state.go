package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// StateHandler serves the full hierarchy in one response; the client renders
// from this single snapshot.
type StateHandler struct {
	state  services.StateService
	logger *slog.Logger
}

// NewStateHandler creates a new state handler
func NewStateHandler(state services.StateService, logger *slog.Logger) *StateHandler {
	return &StateHandler{state: state, logger: logger}
}

// GetState returns the user's workspaces, folders, groups, and bookmarks
// GET /api/state
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.state.GetState(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// HealthCheck reports liveness
// GET /health
func (h *StateHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
