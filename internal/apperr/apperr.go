package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation reports input that violates field constraints.
	ErrValidation = errors.New("validation failed")

	// ErrConflict reports a duplicate value on a unique field.
	ErrConflict = errors.New("already exists")

	// ErrNotFound reports a missing user or contact. Contacts owned by another
	// user are reported the same way.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials reports a password that does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated reports a missing or malformed Authorization header.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken reports a token with a bad signature or an elapsed expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrStorage wraps failures of the backing store.
	ErrStorage = errors.New("storage failure")
)

// Status maps an error from the taxonomy above to an HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidToken):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
