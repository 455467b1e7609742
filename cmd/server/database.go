package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/platform/postgres"
)

// setupAppDatabase creates the connection pool shared by every request.
// The caller owns the pool and must close it.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*postgres.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database, logger.With("component", "database"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return pool, nil
}
