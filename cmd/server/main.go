// Package main implements the guestbook server: a server-rendered guest list
// backed by PostgreSQL, with optional login through a hosted OpenID Connect
// provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/guestbook/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command ("+strings.Join(postgres.MigrationCommands, ", ")+") and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires the application together. With migrateCmd set it runs that
// migration command and returns instead of serving.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	pool, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer pool.Close()
		return runMigrations(ctx, pool, migrateCmd, logger)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, pool, "up", logger); err != nil {
			pool.Close()
			return err
		}
	}

	app, err := newApplication(cfg, logger, pool)
	if err != nil {
		pool.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
