package httputil

import (
	"context"
	"net/http"
)

// Unexported key type keeps context values collision-free.
type contextKey string

const userIDKey contextKey = "userID"

// WithUserID returns a shallow copy of the request whose context carries the
// authenticated user's id. Set once by the auth middleware.
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID reads the authenticated user's id from the request context.
// It is empty for requests that skipped the auth middleware.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
