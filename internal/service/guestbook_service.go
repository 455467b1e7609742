package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/guestbook/internal/domain"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/store"
)

// GuestbookService provides guestbook operations.
type GuestbookService interface {
	// Sign validates name and records it as a new guest.
	Sign(ctx context.Context, name string) (*domain.Guest, error)

	// Guests returns all guests in the order they signed.
	Guests(ctx context.Context) ([]domain.Guest, error)
}

type guestbookServiceImpl struct {
	guests store.GuestStore
	logger *slog.Logger
}

// NewGuestbookService creates a GuestbookService backed by guests.
// It returns an error if guests is nil.
func NewGuestbookService(guests store.GuestStore, log *slog.Logger) (GuestbookService, error) {
	if guests == nil {
		return nil, &GuestbookServiceError{
			Operation: "create_service",
			Message:   "guest store cannot be nil",
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &guestbookServiceImpl{
		guests: guests,
		logger: log.With("component", "guestbook_service"),
	}, nil
}

// Sign implements GuestbookService.
func (s *guestbookServiceImpl) Sign(ctx context.Context, name string) (*domain.Guest, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	guest, err := domain.NewGuest(name)
	if err != nil {
		log.Debug("rejected guest name", "error", err)
		return nil, NewGuestbookServiceError("sign", "invalid guest name", err)
	}

	if err := s.guests.Create(ctx, guest); err != nil {
		log.Error("failed to record guest", "error", err)
		return nil, NewGuestbookServiceError("sign", "failed to record guest", err)
	}

	log.Info("guest signed", "guest_id", guest.ID)
	return guest, nil
}

// Guests implements GuestbookService.
func (s *guestbookServiceImpl) Guests(ctx context.Context) ([]domain.Guest, error) {
	guests, err := s.guests.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list guests", "error", err)
		return nil, NewGuestbookServiceError("list_guests", "failed to list guests", err)
	}
	return guests, nil
}
