package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/redact"
	"github.com/phrazzld/guestbook/internal/store"
)

// ErrInvalidDatabaseURL is returned by NewPool when the connection string
// cannot be parsed. The parse error is redacted before it is attached.
var ErrInvalidDatabaseURL = errors.New("invalid database URL")

// pingTimeout bounds the connectivity check done when the pool is created.
const pingTimeout = 5 * time.Second

// Pool is a store.Pool backed by pgxpool. It keeps at least MinConns
// connections established and never hands out more than MaxConns at once;
// Acquire blocks while the pool is exhausted until ctx is done.
type Pool struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ store.Pool = (*Pool)(nil)

// NewPool creates the connection pool described by cfg and verifies that the
// database is reachable. The caller owns the pool and must Close it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDatabaseURL, redact.Error(err))
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pgPool.Ping(pingCtx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection pool established",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"min_conns", poolCfg.MinConns,
		"max_conns", poolCfg.MaxConns)

	return &Pool{pool: pgPool, logger: logger}, nil
}

// Acquire implements store.Pool.
func (p *Pool) Acquire(ctx context.Context) (store.Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: conn}, nil
}

// Stats returns the current pool usage.
func (p *Pool) Stats() store.PoolStats {
	s := p.pool.Stat()
	return store.PoolStats{
		Acquired: s.AcquiredConns(),
		Idle:     s.IdleConns(),
		Total:    s.TotalConns(),
		Max:      s.MaxConns(),
	}
}

// DB returns a database/sql handle that borrows connections from the same
// pool. It is used for migrations; closing it does not close the pool.
func (p *Pool) DB() *sql.DB {
	return stdlib.OpenDBFromPool(p.pool)
}

// Close closes every connection. It blocks until all acquired connections
// have been released.
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("database connection pool closed")
}

type pooledConn struct {
	conn *pgxpool.Conn
}

func (c *pooledConn) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (c *pooledConn) Release() {
	c.conn.Release()
}
