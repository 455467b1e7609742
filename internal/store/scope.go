package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/guestbook/internal/platform/logger"
)

// CleanupTimeout bounds the rollback and release work done when a scope
// unwinds. Cleanup runs detached from the caller's cancellation so that a
// cancelled request still returns its connection in a clean state.
var CleanupTimeout = 5 * time.Second

// ConnFn is a function that runs while holding a checked-out connection.
type ConnFn[T any] func(ctx context.Context, conn Conn) (T, error)

// CursorFn is a function that runs against an open cursor.
type CursorFn[T any] func(ctx context.Context, cur *Cursor) (T, error)

// WithConnection acquires a connection from pool, passes it to fn, and
// releases it exactly once afterwards, whether fn returns normally, returns
// an error, or panics. If acquisition fails nothing is released and the
// error is returned wrapped.
func WithConnection[T any](ctx context.Context, pool Pool, fn ConnFn[T]) (T, error) {
	var zero T

	conn, err := pool.Acquire(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to acquire connection",
			slog.String("error", err.Error()))
		return zero, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}

// WithCursor runs fn against a cursor opened on a connection from pool.
//
// If fn succeeds and commit is true the transaction is committed before the
// cursor is closed. If fn fails, commit is skipped and closing the cursor
// rolls the transaction back. The cursor is closed exactly once and the
// connection released after it, on every exit path. Errors from fn or from
// commit are returned after cleanup has run; nothing is retried.
func WithCursor[T any](ctx context.Context, pool Pool, commit bool, fn CursorFn[T]) (T, error) {
	return WithConnection(ctx, pool, func(ctx context.Context, conn Conn) (result T, err error) {
		log := logger.FromContext(ctx)

		tx, err := conn.Begin(ctx)
		if err != nil {
			log.Error("failed to open cursor", slog.String("error", err.Error()))
			return result, fmt.Errorf("failed to open cursor: %w", err)
		}
		cur := &Cursor{tx: tx}

		defer func() {
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), CleanupTimeout)
			defer cancel()

			closeErr := cur.close(cleanupCtx)
			if closeErr == nil {
				return
			}
			if err == nil {
				// The work itself succeeded; a failed rollback of a finished
				// read only leaves a broken connection for the pool to discard.
				log.Warn("failed to close cursor", slog.String("error", closeErr.Error()))
				return
			}
			log.Error("failed to roll back cursor",
				slog.String("rollback_error", closeErr.Error()),
				slog.String("original_error", err.Error()))
			err = errors.Join(err, fmt.Errorf("failed to roll back: %w", closeErr))
		}()

		result, err = fn(ctx, cur)
		if err != nil {
			log.Debug("cursor body failed, rolling back", slog.String("error", err.Error()))
			var zero T
			return zero, err
		}

		if commit {
			if err = cur.commit(ctx); err != nil {
				log.Error("failed to commit", slog.String("error", err.Error()))
				var zero T
				return zero, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
			}
			log.Debug("cursor committed")
		}

		return result, nil
	})
}

// Cursor executes statements on a checked-out connection. It is only valid
// inside the WithCursor call that created it; afterwards every method
// returns ErrCursorClosed.
type Cursor struct {
	tx     Tx
	closed bool
}

var _ Querier = (*Cursor)(nil)

// Exec runs a statement that returns no rows.
func (c *Cursor) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if c.closed {
		return pgconn.CommandTag{}, ErrCursorClosed
	}
	return c.tx.Exec(ctx, sql, args...)
}

// Query runs a statement that returns rows. The rows must be consumed or
// closed before the enclosing scope returns.
func (c *Cursor) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if c.closed {
		return nil, ErrCursorClosed
	}
	return c.tx.Query(ctx, sql, args...)
}

// QueryRow runs a statement expected to return at most one row.
func (c *Cursor) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if c.closed {
		return errRow{err: ErrCursorClosed}
	}
	return c.tx.QueryRow(ctx, sql, args...)
}

func (c *Cursor) commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

// close rolls back whatever was not committed. Rolling back a committed
// transaction reports pgx.ErrTxClosed, which is not a failure here.
func (c *Cursor) close(ctx context.Context) error {
	c.closed = true
	err := c.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
