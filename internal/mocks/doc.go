// Package mocks provides centralized fake implementations for testing.
//
// FakePool stands in for the database pool and records every lifecycle step
// (acquire, begin, statements, commit, rollback, release) so tests can assert
// on ordering. MemoryGuestStore keeps signatures in memory for handler and
// service tests that do not care about SQL.
//
// Usage:
//
//	pool := mocks.NewFakePool(1)
//	_, err := store.WithCursor(ctx, pool, true, fn)
//	assert.Equal(t, []string{"acquire", "begin", "commit", "rollback", "release"}, pool.Events())
package mocks
