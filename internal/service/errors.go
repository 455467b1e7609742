package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/guestbook/internal/domain"
)

// GuestbookServiceError wraps errors from the guestbook service with context.
type GuestbookServiceError struct {
	// Operation is the operation that failed (e.g., "sign", "list_guests")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GuestbookServiceError.
func (e *GuestbookServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("guestbook service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("guestbook service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GuestbookServiceError) Unwrap() error {
	return e.Err
}

// NewGuestbookServiceError creates a new GuestbookServiceError.
// Validation errors are returned unwrapped so the API layer can show them.
func NewGuestbookServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &GuestbookServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
