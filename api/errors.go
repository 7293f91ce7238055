package api

import (
	"fmt"
	"net/http"

	apperrors "github.com/Sereen-Kh/ai-deployment-platform/internal/errors"
)

// Error is a non-2xx response from the platform API. Transport failures and
// refresh failures are reported as wrapped errors instead; anything carrying
// an *Error reached the backend and came back with a status.
type Error struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Detail)
}

// Is maps status codes onto the package-level sentinels so callers can branch
// with errors.Is without inspecting status codes.
func (e *Error) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case apperrors.ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case apperrors.ErrServer:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}
