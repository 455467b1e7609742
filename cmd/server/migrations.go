package main

import (
	"context"
	"log/slog"

	"github.com/phrazzld/guestbook/internal/platform/postgres"
)

// runMigrations executes one migration command over a database/sql view of pool.
func runMigrations(ctx context.Context, pool *postgres.Pool, command string, logger *slog.Logger) error {
	db := pool.DB()
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close migration database handle", "error", err)
		}
	}()

	logger.Info("Executing migrations", "command", command)
	return postgres.Migrate(ctx, db, command, logger)
}
