package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for caller-facing failures. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can classify with errors.Is while the
// message keeps the specifics (e.g. the missing id).
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// BadRequest wraps ErrBadRequest with a formatted detail message.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// Unauthorized wraps ErrUnauthorized with a formatted detail message.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with a formatted detail message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Status maps an error to its HTTP status code. Unclassified errors are
// treated as internal failures.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
