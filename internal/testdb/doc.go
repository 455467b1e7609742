// Package testdb provides utilities for database-backed tests.
//
// Integration tests carry the `integration` build tag and call NewTestPool,
// which skips the test unless a database URL is configured, migrates the
// schema, and empties the guests table:
//
//	func TestIntegrationSomething(t *testing.T) {
//		pool := testdb.NewTestPool(t, 4)
//		...
//	}
//
// The URL is read from GUESTBOOK_TEST_DB_URL, falling back to DATABASE_URL.
package testdb
