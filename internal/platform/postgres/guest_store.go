package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/guestbook/internal/domain"
	"github.com/phrazzld/guestbook/internal/store"
)

const (
	insertGuestSQL = `INSERT INTO guests (guest) VALUES ($1) RETURNING id, created_at`
	listGuestsSQL  = `SELECT id, guest, created_at FROM guests ORDER BY id`
	pingSQL        = `SELECT 1`
)

// PostgresGuestStore implements the store.GuestStore interface.
// Every method runs exactly one statement inside store.WithCursor.
type PostgresGuestStore struct {
	pool   store.Pool
	logger *slog.Logger
}

var _ store.GuestStore = (*PostgresGuestStore)(nil)

// NewPostgresGuestStore creates a guest store drawing connections from pool.
func NewPostgresGuestStore(pool store.Pool, logger *slog.Logger) *PostgresGuestStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGuestStore{
		pool:   pool,
		logger: logger.With("store", "guest"),
	}
}

// Create implements store.GuestStore.Create.
// The insert is committed before Create returns; ID and CreatedAt are only
// set on guest once the commit succeeded.
func (s *PostgresGuestStore) Create(ctx context.Context, guest *domain.Guest) error {
	if err := guest.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	type inserted struct {
		id        int64
		createdAt time.Time
	}

	row, err := store.WithCursor(ctx, s.pool, true,
		func(ctx context.Context, cur *store.Cursor) (inserted, error) {
			var r inserted
			err := cur.QueryRow(ctx, insertGuestSQL, guest.Name).Scan(&r.id, &r.createdAt)
			return r, err
		})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to insert guest", "error", err)
		return store.NewStoreError("guest", "create", "failed to insert guest", MapError(err))
	}

	guest.ID = row.id
	guest.CreatedAt = row.createdAt
	s.logger.DebugContext(ctx, "guest inserted", "guest_id", guest.ID)
	return nil
}

// List implements store.GuestStore.List.
func (s *PostgresGuestStore) List(ctx context.Context) ([]domain.Guest, error) {
	guests, err := store.WithCursor(ctx, s.pool, false,
		func(ctx context.Context, cur *store.Cursor) ([]domain.Guest, error) {
			rows, err := cur.Query(ctx, listGuestsSQL)
			if err != nil {
				return nil, err
			}
			return pgx.CollectRows(rows, scanGuest)
		})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list guests", "error", err)
		return nil, store.NewStoreError("guest", "list", "failed to list guests", MapError(err))
	}
	return guests, nil
}

// Ping checks that a connection can be checked out and a statement run.
func (s *PostgresGuestStore) Ping(ctx context.Context) error {
	_, err := store.WithCursor(ctx, s.pool, false,
		func(ctx context.Context, cur *store.Cursor) (int, error) {
			var one int
			err := cur.QueryRow(ctx, pingSQL).Scan(&one)
			return one, err
		})
	return err
}

func scanGuest(row pgx.CollectableRow) (domain.Guest, error) {
	var g domain.Guest
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt)
	return g, err
}
