package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/guestbook/internal/api"
	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/platform/postgres"
	"github.com/phrazzld/guestbook/internal/service"
	"github.com/phrazzld/guestbook/internal/service/auth"
	"github.com/phrazzld/guestbook/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// pool is nil when the stores are supplied directly, as in tests.
	pool *postgres.Pool

	guestStore store.GuestStore
	health     api.HealthChecker
	poolStats  api.PoolStatsReporter

	guestbook service.GuestbookService
	sessions  auth.SessionService
	// authenticator is nil when no identity provider is configured.
	authenticator api.Authenticator
}

// newApplication creates the application around an established pool.
func newApplication(cfg *config.Config, logger *slog.Logger, pool *postgres.Pool) (*application, error) {
	guests := postgres.NewPostgresGuestStore(pool, logger)
	app := &application{
		config:     cfg,
		logger:     logger,
		pool:       pool,
		guestStore: guests,
		health:     guests,
		poolStats:  pool,
	}
	if err := app.initServices(); err != nil {
		return nil, err
	}
	return app, nil
}

// initServices builds the services on top of the application's stores.
func (app *application) initServices() error {
	var err error
	app.guestbook, err = service.NewGuestbookService(app.guestStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create guestbook service: %w", err)
	}

	app.sessions, err = auth.NewSessionService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	if app.config.Auth.OIDCEnabled() {
		authenticator, err := auth.NewAuthenticator(app.config.Auth, app.config.Server.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create authenticator: %w", err)
		}
		app.authenticator = authenticator
		app.logger.Info("OIDC login enabled", "domain", app.config.Auth.Domain)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
	}
	app.logger.Info("Application shutdown completed")
}
