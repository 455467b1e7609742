package store

import (
	"context"

	"github.com/phrazzld/guestbook/internal/domain"
)

// GuestStore persists guestbook signatures.
type GuestStore interface {
	// Create inserts guest and fills in its ID and CreatedAt.
	Create(ctx context.Context, guest *domain.Guest) error

	// List returns every guest in insertion order.
	List(ctx context.Context) ([]domain.Guest, error)
}
