package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/guestbook/internal/domain"
	"github.com/phrazzld/guestbook/internal/store"
)

// MemoryGuestStore is an in-memory store.GuestStore.
type MemoryGuestStore struct {
	CreateErr error
	ListErr   error

	mu     sync.Mutex
	guests []domain.Guest
	nextID int64
}

var _ store.GuestStore = (*MemoryGuestStore)(nil)

// NewMemoryGuestStore creates an empty store.
func NewMemoryGuestStore() *MemoryGuestStore {
	return &MemoryGuestStore{nextID: 1}
}

// Create implements store.GuestStore.
func (s *MemoryGuestStore) Create(_ context.Context, guest *domain.Guest) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	guest.ID = s.nextID
	guest.CreatedAt = time.Now().UTC()
	s.nextID++
	s.guests = append(s.guests, *guest)
	return nil
}

// List implements store.GuestStore.
func (s *MemoryGuestStore) List(context.Context) ([]domain.Guest, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Guest(nil), s.guests...), nil
}
