package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/guestbook/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"oidc_enabled", cfg.Auth.OIDCEnabled())
	slog.Debug("Database configuration",
		"url_present", cfg.Database.URL != "",
		"min_conns", cfg.Database.MinConns,
		"max_conns", cfg.Database.MaxConns,
		"auto_migrate", cfg.Database.AutoMigrate)

	return cfg, nil
}
