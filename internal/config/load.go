package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "GUESTBOOK"

// envFallbacks maps config keys to unprefixed variable names that are also
// honored, in order, after the prefixed name.
var envFallbacks = map[string][]string{
	"server.port":        {"PORT"},
	"database.url":       {"DATABASE_URL"},
	"auth.secret_key":    {"SECRET_KEY"},
	"auth.domain":        {"AUTH0_DOMAIN"},
	"auth.client_id":     {"AUTH0_CLIENT_ID"},
	"auth.client_secret": {"AUTH0_CLIENT_SECRET"},
}

// configKeys lists every key Load binds to the environment.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"server.base_url",
	"database.url",
	"database.min_conns",
	"database.max_conns",
	"database.auto_migrate",
	"auth.secret_key",
	"auth.domain",
	"auth.client_id",
	"auth.client_secret",
	"auth.session_lifetime_hours",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom behaves like Load but uses the provided viper instance, which lets
// callers point it at a specific config file.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, key := range configKeys {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := append([]string{key, envName}, envFallbacks[key]...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conns", 100)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("auth.session_lifetime_hours", 24)
}
