package mocks

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/guestbook/internal/store"
)

// Events recorded by FakePool.
const (
	EventAcquire  = "acquire"
	EventBegin    = "begin"
	EventExec     = "exec"
	EventQuery    = "query"
	EventQueryRow = "query_row"
	EventCommit   = "commit"
	EventRollback = "rollback"
	EventRelease  = "release"
)

// FakePool is an in-memory store.Pool with a fixed number of connections.
// Acquire blocks while all connections are checked out, like a real pool.
// Error fields, when set, are returned by the matching step.
type FakePool struct {
	AcquireErr  error
	BeginErr    error
	CommitErr   error
	RollbackErr error

	ExecFn     func(sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(sql string, args ...any) pgx.Row

	idle chan *FakeConn

	mu         sync.Mutex
	events     []string
	statements []string
	violations int
}

var _ store.Pool = (*FakePool)(nil)

// NewFakePool creates a pool holding size connections.
func NewFakePool(size int) *FakePool {
	p := &FakePool{idle: make(chan *FakeConn, size)}
	for i := 0; i < size; i++ {
		p.idle <- &FakeConn{ID: i, pool: p}
	}
	return p
}

// Acquire implements store.Pool.
func (p *FakePool) Acquire(ctx context.Context) (store.Conn, error) {
	p.record(EventAcquire)
	if p.AcquireErr != nil {
		return nil, p.AcquireErr
	}

	select {
	case c := <-p.idle:
		if c.holders.Add(1) != 1 {
			p.violation()
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Events returns a copy of every recorded event in order.
func (p *FakePool) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

// Count returns how many times event was recorded.
func (p *FakePool) Count(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == event {
			n++
		}
	}
	return n
}

// Statements returns the SQL text of every statement run, in order.
func (p *FakePool) Statements() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.statements...)
}

// Violations counts connections that were handed to two holders at once or
// released more often than acquired.
func (p *FakePool) Violations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.violations
}

// Idle returns the number of connections currently in the pool.
func (p *FakePool) Idle() int {
	return len(p.idle)
}

func (p *FakePool) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *FakePool) recordStatement(event, sql string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.statements = append(p.statements, sql)
}

func (p *FakePool) violation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.violations++
}

// FakeConn is a connection handed out by FakePool.
type FakeConn struct {
	ID      int
	pool    *FakePool
	holders atomic.Int32
}

// Begin implements store.Conn.
func (c *FakeConn) Begin(ctx context.Context) (store.Tx, error) {
	c.pool.record(EventBegin)
	if c.pool.BeginErr != nil {
		return nil, c.pool.BeginErr
	}
	return &FakeTx{conn: c}, nil
}

// Release implements store.Conn.
func (c *FakeConn) Release() {
	c.pool.record(EventRelease)
	if c.holders.Add(-1) != 0 {
		c.pool.violation()
		return
	}
	c.pool.idle <- c
}

// FakeTx is a transaction on a FakeConn. Once committed or rolled back,
// further Commit/Rollback calls return pgx.ErrTxClosed as pgx does.
type FakeTx struct {
	conn *FakeConn
	done bool
}

// Conn returns the connection the transaction was opened on.
func (t *FakeTx) Conn() *FakeConn {
	return t.conn
}

// Exec implements store.Tx.
func (t *FakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.conn.pool.recordStatement(EventExec, sql)
	if fn := t.conn.pool.ExecFn; fn != nil {
		return fn(sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// Query implements store.Tx.
func (t *FakeTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.conn.pool.recordStatement(EventQuery, sql)
	if fn := t.conn.pool.QueryFn; fn != nil {
		return fn(sql, args...)
	}
	return &FakeRows{}, nil
}

// QueryRow implements store.Tx.
func (t *FakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.conn.pool.recordStatement(EventQueryRow, sql)
	if fn := t.conn.pool.QueryRowFn; fn != nil {
		return fn(sql, args...)
	}
	return &FakeRow{Err: pgx.ErrNoRows}
}

// Commit implements store.Tx.
func (t *FakeTx) Commit(context.Context) error {
	t.conn.pool.record(EventCommit)
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return t.conn.pool.CommitErr
}

// Rollback implements store.Tx.
func (t *FakeTx) Rollback(context.Context) error {
	t.conn.pool.record(EventRollback)
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return t.conn.pool.RollbackErr
}

// FakeRow is a pgx.Row returning fixed values.
type FakeRow struct {
	Values []any
	Err    error
}

// Scan implements pgx.Row.
func (r *FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows is a pgx.Rows over fixed data.
type FakeRows struct {
	Data    [][]any
	ErrOnce error

	idx    int
	closed bool
}

var _ pgx.Rows = (*FakeRows)(nil)

// Close implements pgx.Rows.
func (r *FakeRows) Close() { r.closed = true }

// Closed reports whether Close was called.
func (r *FakeRows) Closed() bool { return r.closed }

// Err implements pgx.Rows.
func (r *FakeRows) Err() error { return r.ErrOnce }

// CommandTag implements pgx.Rows.
func (r *FakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.Data)))
}

// FieldDescriptions implements pgx.Rows.
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

// Next implements pgx.Rows.
func (r *FakeRows) Next() bool {
	if r.closed || r.idx >= len(r.Data) {
		r.closed = true
		return false
	}
	r.idx++
	return true
}

// Scan implements pgx.Rows.
func (r *FakeRows) Scan(dest ...any) error {
	return assign(r.Data[r.idx-1], dest)
}

// Values implements pgx.Rows.
func (r *FakeRows) Values() ([]any, error) {
	return r.Data[r.idx-1], nil
}

// RawValues implements pgx.Rows.
func (r *FakeRows) RawValues() [][]byte { return nil }

// Conn implements pgx.Rows.
func (r *FakeRows) Conn() *pgx.Conn { return nil }

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: have %d values, %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("scan: destination %d is not a non-nil pointer", i)
		}
		value := reflect.ValueOf(values[i])
		if !value.IsValid() {
			target.Elem().SetZero()
			continue
		}
		if !value.Type().AssignableTo(target.Elem().Type()) {
			return fmt.Errorf("scan: cannot assign %T to %T", values[i], d)
		}
		target.Elem().Set(value)
	}
	return nil
}
