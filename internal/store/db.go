package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is a bounded set of live database connections shared across requests.
// Acquire blocks until a connection is free, the pool's own policy fails the
// request, or ctx is done. Implementations must be safe for concurrent use and
// must never hand the same Conn to two callers at once.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is one live session checked out of a Pool. It belongs to a single
// caller until Release, which must be called exactly once.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	Release()
}

// Querier is implemented by anything that can run a statement.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx is a transaction opened on a Conn. pgx.Tx satisfies it.
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PoolStats is a snapshot of pool usage.
type PoolStats struct {
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
	Total    int32 `json:"total"`
	Max      int32 `json:"max"`
}
