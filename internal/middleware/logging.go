package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request with method, path, status,
// duration, and the acting user when authenticated.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			}
			if userID := httputil.GetUserID(r); userID != "" {
				attrs = append(attrs, "user_id", userID)
			}
			logger.Info("request", attrs...)
		})
	}
}
