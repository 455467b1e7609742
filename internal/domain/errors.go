package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// The guest-specific errors below wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyGuestName is returned when a signature has no name after trimming.
	ErrEmptyGuestName = fmt.Errorf("%w: guest name cannot be empty", ErrValidation)

	// ErrGuestNameTooLong is returned when a name exceeds MaxGuestNameLength runes.
	ErrGuestNameTooLong = fmt.Errorf("%w: guest name is too long", ErrValidation)

	// ErrInvalidGuestName is returned for names that are not valid UTF-8 or
	// contain NUL bytes, neither of which a TEXT column accepts.
	ErrInvalidGuestName = fmt.Errorf("%w: guest name contains invalid characters", ErrValidation)
)
