package middleware

import (
	"net/http"
	"strings"

	"github.com/VArterJr/neotypa-booktabs/internal/auth"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// publicPaths are reachable without a token.
var publicPaths = map[string]bool{
	"/health":            true,
	"/api/auth/register": true,
	"/api/auth/login":    true,
}

// Auth validates the Bearer token on every non-public request and stores the
// authenticated user id in the request context.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
