package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gaborage/go-appkit/database/internal/sqllex"
	"github.com/gaborage/go-appkit/logger"
)

// cursorState tracks the per-operation statement lifecycle:
// idle → bound → executed → (closed | open-for-read).
// Binding failures short-circuit back to idle without executing.
type cursorState uint8

const (
	stateIdle cursorState = iota
	stateBound
	stateExecuted
	stateOpenForRead
	stateClosed
)

// cursor owns one prepared statement for the duration of a single
// facade operation. At most one cursor is open per facade instance.
type cursor struct {
	log   logger.Logger
	state cursorState
	stmt  *sql.Stmt
	rows  *sql.Rows
	args  []any

	// rows affected or returned by the last execution
	count int64
}

// prepareAndBind validates bindings, rewrites named markers to
// positional placeholders, and prepares the statement. On any binding
// problem nothing is prepared and no partial state is left live.
func prepareAndBind(ctx context.Context, db *sql.DB, log logger.Logger, query string, bindings []Binding) (*cursor, error) {
	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			log.Warn().Str("marker", b.Marker).Err(err).Msg("Rejected malformed parameter binding")
			return nil, err
		}
	}

	rewritten, markers := sqllex.Rewrite(query)

	byMarker := make(map[string]Binding, len(bindings))
	for _, b := range bindings {
		if _, dup := byMarker[b.Marker]; dup {
			log.Warn().Str("marker", b.Marker).Msg("Rejected duplicate parameter binding")
			return nil, fmt.Errorf("%w: duplicate binding for %s", ErrMalformedBinding, b.Marker)
		}
		byMarker[b.Marker] = b
	}

	args := make([]any, 0, len(markers))
	for _, m := range markers {
		b, ok := byMarker[m]
		if !ok {
			log.Warn().Str("marker", m).Msg("Statement marker has no binding")
			return nil, fmt.Errorf("%w: %s", ErrMissingBinding, m)
		}
		args = append(args, b.arg())
		delete(byMarker, m)
	}

	for m := range byMarker {
		log.Warn().Str("marker", m).Msg("Binding does not match any statement marker")
		return nil, fmt.Errorf("%w: %s", ErrUnknownMarker, m)
	}

	stmt, err := db.PrepareContext(ctx, rewritten)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}

	return &cursor{log: log, state: stateBound, stmt: stmt, args: args}, nil
}

// execResult runs the bound statement for a non-read operation and
// records the affected row count, on failure as well as success.
func (cur *cursor) execResult(ctx context.Context) (int64, error) {
	res, err := cur.stmt.ExecContext(ctx, cur.args...)
	cur.state = stateExecuted
	if err != nil {
		cur.count = 0
		return 0, fmt.Errorf("execute: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		n = 0
	}
	cur.count = n
	return n, nil
}

// execQuery runs the bound statement and leaves the cursor open for a
// read operation to consume.
func (cur *cursor) execQuery(ctx context.Context) error {
	rows, err := cur.stmt.QueryContext(ctx, cur.args...)
	if err != nil {
		cur.state = stateExecuted
		cur.count = 0
		return fmt.Errorf("execute: %w", err)
	}

	cur.rows = rows
	cur.state = stateOpenForRead
	return nil
}

// Close releases the result set and the prepared statement. It is
// idempotent: closing an already-closed cursor is a no-op.
func (cur *cursor) Close() error {
	if cur == nil || cur.state == stateClosed {
		return nil
	}

	var errs []error
	if cur.rows != nil {
		if err := cur.rows.Close(); err != nil {
			errs = append(errs, err)
		}
		cur.rows = nil
	}
	if cur.stmt != nil {
		if err := cur.stmt.Close(); err != nil {
			errs = append(errs, err)
		}
		cur.stmt = nil
	}

	cur.state = stateClosed
	return errors.Join(errs...)
}
