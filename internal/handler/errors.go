package handler

import (
	"errors"
	"net/http"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/httputil"
)

// defaultMaxBody caps ordinary JSON request bodies. Import payloads get
// their own, much larger cap.
const defaultMaxBody = 1 << 20

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidReorderSet),
		errors.Is(err, domain.ErrUnsupportedVersion):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleBodyError maps request body decode failures, distinguishing an
// oversized body from malformed JSON.
func handleBodyError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}

// pathParam extracts a required path parameter from a Go 1.22 route pattern.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" path parameter is required")
		return "", false
	}
	return value, true
}
