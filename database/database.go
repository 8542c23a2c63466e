// Package database provides a PostgreSQL access facade with named
// parameter binding, explicit wire types, and shaped result
// materialization. A facade instance owns one lazily-established
// connection handle and at most one open cursor; every public
// operation closes its cursor before returning.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/gaborage/go-appkit/config"
	"github.com/gaborage/go-appkit/logger"
)

// DB is the public database facade. It is safe for concurrent use: a
// mutex serializes the connect/prepare/execute/read/close sequence so
// the single-active-cursor invariant holds across goroutines.
type DB struct {
	conn *Conn
	log  logger.Logger

	mu       sync.Mutex
	cur      *cursor
	affected int64
}

// New creates a database facade. The connection is established lazily
// on the first operation, never at construction.
func New(cfg *config.DatabaseConfig, log logger.Logger) *DB {
	return &DB{conn: NewConn(cfg, log), log: log}
}

// NewWithHandle wraps an already-open handle. Intended for tests and
// for callers that manage the handle lifecycle themselves; Disconnect
// still closes it.
func NewWithHandle(handle *sql.DB, log logger.Logger) *DB {
	return &DB{conn: &Conn{cfg: &config.DatabaseConfig{}, log: log, db: handle}, log: log}
}

// begin closes any cursor left from a previous operation and prepares
// a new one. Callers hold d.mu.
func (d *DB) begin(ctx context.Context, query string, bindings []Binding) (*cursor, error) {
	d.closeCursor()

	if err := d.conn.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	cur, err := prepareAndBind(ctx, d.conn.handle(), d.log, query, bindings)
	if err != nil {
		return nil, err
	}

	d.cur = cur
	return cur, nil
}

// closeCursor releases the active cursor, if any. Safe to call on
// every exit path; closing twice is a no-op.
func (d *DB) closeCursor() {
	if d.cur == nil {
		return
	}
	if err := d.cur.Close(); err != nil {
		d.log.Debug().Err(err).Msg("Cursor close reported an error")
	}
	d.cur = nil
}

// Create executes an INSERT statement. With wantInsertID the statement
// must carry a RETURNING clause naming the generated identifier, which
// is scanned and returned; otherwise the returned id is zero.
func (d *DB) Create(ctx context.Context, query string, bindings []Binding, wantInsertID bool) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.begin(ctx, query, bindings)
	if err != nil {
		d.affected = 0
		return 0, err
	}
	defer d.closeCursor()

	if !wantInsertID {
		n, err := cur.execResult(ctx)
		d.affected = n
		return 0, err
	}

	if err := cur.execQuery(ctx); err != nil {
		d.affected = 0
		return 0, err
	}

	id, err := cur.readColumn()
	d.affected = cur.count
	if err != nil {
		return 0, fmt.Errorf("insert id: %w", err)
	}

	return toInt64(id)
}

// ReadOne executes a query and materializes at most one row in the
// requested shape. Zero matching rows yield ErrNoRows.
func (d *DB) ReadOne(ctx context.Context, query string, bindings []Binding, shape FetchShape) (Row, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.begin(ctx, query, bindings)
	if err != nil {
		d.affected = 0
		return Row{}, err
	}
	defer d.closeCursor()

	if err := cur.execQuery(ctx); err != nil {
		d.affected = 0
		return Row{}, err
	}

	row, err := cur.readOne(shape)
	d.affected = cur.count
	return row, err
}

// ReadAll executes a query and materializes every matching row in the
// requested shape.
func (d *DB) ReadAll(ctx context.Context, query string, bindings []Binding, shape FetchShape) ([]Row, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.begin(ctx, query, bindings)
	if err != nil {
		d.affected = 0
		return nil, err
	}
	defer d.closeCursor()

	if err := cur.execQuery(ctx); err != nil {
		d.affected = 0
		return nil, err
	}

	rows, err := cur.readAll(shape)
	d.affected = cur.count
	return rows, err
}

// ReadColumn executes a query and returns the first column of the
// first row as a scalar. Zero matching rows yield ErrNoRows.
func (d *DB) ReadColumn(ctx context.Context, query string, bindings []Binding) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.begin(ctx, query, bindings)
	if err != nil {
		d.affected = 0
		return nil, err
	}
	defer d.closeCursor()

	if err := cur.execQuery(ctx); err != nil {
		d.affected = 0
		return nil, err
	}

	val, err := cur.readColumn()
	d.affected = cur.count
	return val, err
}

// Update executes an UPDATE statement.
func (d *DB) Update(ctx context.Context, query string, bindings []Binding) error {
	return d.write(ctx, query, bindings)
}

// Delete executes a DELETE statement.
func (d *DB) Delete(ctx context.Context, query string, bindings []Binding) error {
	return d.write(ctx, query, bindings)
}

func (d *DB) write(ctx context.Context, query string, bindings []Binding) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.begin(ctx, query, bindings)
	if err != nil {
		d.affected = 0
		return err
	}
	defer d.closeCursor()

	n, err := cur.execResult(ctx)
	d.affected = n
	return err
}

// AffectedRows returns the row count of the most recent operation. It
// is not cumulative.
func (d *DB) AffectedRows() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.affected
}

// IsConnected reports connection liveness without side effects.
func (d *DB) IsConnected() bool {
	return d.conn.IsConnected()
}

// Health actively pings the database, connecting first if needed.
func (d *DB) Health(ctx context.Context) error {
	return d.conn.Health(ctx)
}

// Disconnect closes the active cursor, then releases the connection
// handle. Idempotent; a later operation reconnects transparently.
func (d *DB) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closeCursor()
	return d.conn.Disconnect()
}

// Close is an alias for Disconnect to satisfy io.Closer-style callers.
func (d *DB) Close() error {
	return d.Disconnect()
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("insert id: unexpected type %T", v)
	}
}
