package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BaseURL is the externally visible origin, used to build OAuth redirects.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// MinConns is the number of connections the pool keeps established.
	MinConns int32 `mapstructure:"min_conns" validate:"gte=0"`
	// MaxConns bounds the number of concurrently checked-out connections.
	MaxConns    int32 `mapstructure:"max_conns" validate:"gt=0,gtefield=MinConns"`
	AutoMigrate bool  `mapstructure:"auto_migrate"`
}

// AuthConfig contains session and identity provider settings.
// The provider fields are optional; when Domain is empty the login routes
// are not mounted.
type AuthConfig struct {
	SecretKey            string `mapstructure:"secret_key" validate:"required,min=16"`
	Domain               string `mapstructure:"domain" validate:"omitempty,hostname_rfc1123"`
	ClientID             string `mapstructure:"client_id" validate:"required_with=Domain"`
	ClientSecret         string `mapstructure:"client_secret" validate:"required_with=Domain"`
	SessionLifetimeHours int    `mapstructure:"session_lifetime_hours" validate:"gt=0"`
}

// OIDCEnabled reports whether an identity provider is configured.
func (a AuthConfig) OIDCEnabled() bool {
	return a.Domain != ""
}
