package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/platform/postgres"
	"github.com/phrazzld/guestbook/internal/redact"
)

// TestTimeout bounds connection setup and schema preparation.
const TestTimeout = 30 * time.Second

// NewTestPool returns a migrated pool with an empty guests table, closed when
// the test ends. The test is skipped when no database is configured.
func NewTestPool(t *testing.T, maxConns int32) *postgres.Pool {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s and %s not set, skipping integration test", EnvTestDBURL, EnvDatabaseURL)
	}

	log, _ := logger.NewTestLogger()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{URL: dbURL, MinConns: 1, MaxConns: maxConns}, log)
	if err != nil {
		t.Fatalf("failed to connect to test database: %s", redact.Error(err))
	}
	t.Cleanup(pool.Close)

	db := pool.DB()
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(ctx, db, "up", log); err != nil {
		t.Fatalf("failed to migrate test database: %s", redact.Error(err))
	}
	if _, err := db.ExecContext(ctx, "TRUNCATE guests RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to reset guests table: %v", err)
	}

	return pool
}
