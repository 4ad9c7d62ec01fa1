package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status code.
// Handlers map anything implementing this interface directly to a response.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found or is not owned
	// by the acting user. The two cases are deliberately indistinguishable.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ReorderError indicates the supplied id list is not a permutation of
	// the scope's current membership. Positions are never partially applied.
	ReorderError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ReorderError) Error() string      { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ReorderError) StatusCode() int      { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrInvalidReorderSet
func (e *ReorderError) Is(target error) bool { return target == ErrInvalidReorderSet }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Is allows errors.Is() to match against ErrUnauthorized
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

func NewNotFoundError(message string) *NotFoundError         { return &NotFoundError{Message: message} }
func NewUnauthorizedError(message string) *UnauthorizedError { return &UnauthorizedError{Message: message} }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidReorderSet  = errors.New("invalid reorder set")
	ErrUnsupportedVersion = errors.New("unsupported export version")
)
