// Package persistence connects the DML builder to a database/sql connection. It
// provides the escape primitive the builder borrows and runs materialized
// statements, emitting an event around each execution.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/asaidimu/go-dml/core/query"
	"go.uber.org/zap"
)

// EscapeFunc escapes raw for use inside a quoted string literal of one dialect.
type EscapeFunc func(raw string) string

// DB is a Connection backed by a *sql.DB. It is safe for concurrent use.
type DB struct {
	db      *sql.DB
	dialect query.Dialect
	escape  EscapeFunc
	logger  *zap.Logger
	closed  atomic.Bool
}

var _ Connection = (*DB)(nil)

// NewDB wraps db. A nil dialect selects query.ANSI and a nil logger discards logs.
func NewDB(db *sql.DB, dialect query.Dialect, escape EscapeFunc, logger *zap.Logger) *DB {
	if dialect == nil {
		dialect = query.ANSI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		db:      db,
		dialect: dialect,
		escape:  escape,
		logger:  logger,
	}
}

// SQL returns the underlying *sql.DB.
func (d *DB) SQL() *sql.DB {
	return d.db
}

// Dialect returns the dialect the connection speaks.
func (d *DB) Dialect() query.Dialect {
	return d.dialect
}

func (d *DB) available() bool {
	return d.db != nil && d.escape != nil && !d.closed.Load()
}

// EscapeString escapes raw with the dialect's rules. It fails with
// query.ErrConnectionUnavailable once the connection is closed.
func (d *DB) EscapeString(raw string) (string, error) {
	if !d.available() {
		return "", query.ErrConnectionUnavailable
	}
	return d.escape(raw), nil
}

// Query runs a statement and reads every returned row.
func (d *DB) Query(ctx context.Context, statement string) ([]Row, error) {
	if !d.available() {
		return nil, query.ErrConnectionUnavailable
	}
	d.logger.Debug("Executing SQL query", zap.String("sql", statement), zap.String("dialect", d.dialect.Name()))

	rows, err := d.db.QueryContext(ctx, statement)
	if err != nil {
		d.logger.Error("Failed to execute query", zap.Error(err), zap.String("sql", statement))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return readRows(rows)
}

// Exec runs a statement and returns the number of affected rows.
func (d *DB) Exec(ctx context.Context, statement string) (int64, error) {
	if !d.available() {
		return 0, query.ErrConnectionUnavailable
	}
	d.logger.Debug("Executing SQL statement", zap.String("sql", statement), zap.String("dialect", d.dialect.Name()))

	result, err := d.db.ExecContext(ctx, statement)
	if err != nil {
		d.logger.Error("Failed to execute statement", zap.Error(err), zap.String("sql", statement))
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the underlying *sql.DB. Closing twice is a no-op.
func (d *DB) Close() error {
	if d.closed.Swap(true) || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// readRows reads all rows into Row maps. Byte slices are returned as strings.
func readRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return results, nil
}
