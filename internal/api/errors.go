package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/guestbook/internal/domain"
	"github.com/phrazzld/guestbook/internal/service/auth"
	"github.com/phrazzld/guestbook/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidSession),
		errors.Is(err, auth.ErrExpiredSession),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenExchange):
		return http.StatusUnauthorized

	// Identity provider misbehaving
	case errors.Is(err, auth.ErrMissingIDToken),
		errors.Is(err, auth.ErrUserInfo):
		return http.StatusBadGateway

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, auth.ErrStateMismatch):
		return http.StatusBadRequest

	// Pool exhausted or database too slow for the request deadline
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidSession),
		errors.Is(err, auth.ErrExpiredSession),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid session"

	case errors.Is(err, auth.ErrStateMismatch):
		return "Login request expired or was tampered with"

	case errors.Is(err, auth.ErrTokenExchange):
		return "Login was rejected by the identity provider"

	case errors.Is(err, auth.ErrMissingIDToken),
		errors.Is(err, auth.ErrUserInfo):
		return "Identity provider returned an unusable response"

	case errors.Is(err, domain.ErrEmptyGuestName):
		return "Guest name cannot be empty"

	case errors.Is(err, domain.ErrGuestNameTooLong):
		return "Guest name is too long"

	case errors.Is(err, domain.ErrInvalidGuestName):
		return "Guest name contains invalid characters"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid guest data"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, context.DeadlineExceeded):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}
