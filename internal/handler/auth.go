package handler

import (
	"log/slog"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/auth"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	users  services.UserService
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users services.UserService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and returns a session token
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token after register", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login verifies credentials and returns a session token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httputil.ParseJSON(w, r, defaultMaxBody, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token after login", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}
