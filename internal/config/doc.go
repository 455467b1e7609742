// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to settings needed by the server, the database pool,
// and the login flow.
package config
