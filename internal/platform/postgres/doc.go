// Package postgres provides the PostgreSQL implementations behind the
// interfaces in internal/store: a pgxpool-backed store.Pool, the guest
// store, driver error mapping, and the embedded goose migrations.
package postgres
