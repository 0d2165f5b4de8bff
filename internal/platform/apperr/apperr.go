// Package apperr defines the error taxonomy shared by all domain services.
// Services wrap these sentinels with context; handlers translate them to
// HTTP status codes in one place instead of re-deriving per endpoint.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrValidation marks missing or invalid caller input.
	ErrValidation = errors.New("invalid input")
	// ErrUnauthenticated marks a missing, malformed, or expired token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks a role or ownership violation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate marks a uniqueness-constraint conflict.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStorage marks an unreachable or failing data store.
	ErrStorage = errors.New("storage unavailable")
)

// Status maps an error to its HTTP status code. Unclassified errors are
// reported as internal server errors rather than leaked as-is.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HTTP converts an error into an echo HTTPError carrying the mapped status
// and the error message as the structured JSON "message" field.
func HTTP(err error) *echo.HTTPError {
	return echo.NewHTTPError(Status(err), err.Error())
}
