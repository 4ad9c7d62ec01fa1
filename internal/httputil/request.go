package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at maxBytes; w is needed so MaxBytesReader can answer
// an oversized body with 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
