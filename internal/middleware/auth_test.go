package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VArterJr/neotypa-booktabs/internal/auth"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewTokenManager("middleware-test-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	return tokens
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := Auth(tokens)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{"public path without token", "/health", "", http.StatusOK, ""},
		{"login is public", "/api/auth/login", "", http.StatusOK, ""},
		{"missing token", "/api/state", "", http.StatusUnauthorized, ""},
		{"malformed header", "/api/state", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "/api/state", "Bearer nonsense", http.StatusUnauthorized, ""},
		{"valid token", "/api/state", "Bearer " + token, http.StatusOK, "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("userID = %q, want %q", gotUserID, tt.wantUserID)
			}
		})
	}
}
