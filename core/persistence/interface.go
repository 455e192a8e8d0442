package persistence

import (
	"context"
	"errors"

	"github.com/asaidimu/go-dml/core/query"
)

var (
	// ErrEmptyStatement is returned when a builder materializes an incomplete
	// statement. Nothing is sent to the database.
	ErrEmptyStatement = errors.New("[persistence] builder produced an empty statement")
	// ErrNilConnection is returned when an executor is created without a connection.
	ErrNilConnection = errors.New("[persistence] connection is nil")
)

// Row represents a single record retrieved from the database, keyed by column name.
type Row map[string]any

// Connection is what the executor needs from a database: the escape primitive the
// builder borrows, plus statement execution.
type Connection interface {
	query.Escaper

	// Query runs a statement that returns rows.
	Query(ctx context.Context, statement string) ([]Row, error)

	// Exec runs a statement that returns no rows and reports the affected row count.
	Exec(ctx context.Context, statement string) (int64, error)

	// Dialect returns the SQL dialect statements must be rendered in.
	Dialect() query.Dialect

	// Close releases the connection. EscapeString fails afterwards.
	Close() error
}

// ExecutionEventType defines the possible event types of statement execution.
type ExecutionEventType string

const (
	StatementSelectStart   ExecutionEventType = "statement:select:start"
	StatementSelectSuccess ExecutionEventType = "statement:select:success"
	StatementSelectFailed  ExecutionEventType = "statement:select:failed"
	StatementUpdateStart   ExecutionEventType = "statement:update:start"
	StatementUpdateSuccess ExecutionEventType = "statement:update:success"
	StatementUpdateFailed  ExecutionEventType = "statement:update:failed"
	StatementInsertStart   ExecutionEventType = "statement:insert:start"
	StatementInsertSuccess ExecutionEventType = "statement:insert:success"
	StatementInsertFailed  ExecutionEventType = "statement:insert:failed"
	StatementDeleteStart   ExecutionEventType = "statement:delete:start"
	StatementDeleteSuccess ExecutionEventType = "statement:delete:success"
	StatementDeleteFailed  ExecutionEventType = "statement:delete:failed"
)

// ExecutionEvent is emitted around every statement the executor runs.
type ExecutionEvent struct {
	Type        ExecutionEventType `json:"type"`               // The type of event (e.g., 'statement:select:start').
	ExecutionID string             `json:"executionId"`        // Shared by the start and end events of one execution.
	Timestamp   int64              `json:"timestamp"`          // Unix milliseconds.
	Operation   string             `json:"operation"`          // select, update, insert or delete.
	Statement   string             `json:"statement"`          // The SQL text sent to the database.
	Output      any                `json:"output,omitempty"`   // Rows or affected row count on success.
	Error       *string            `json:"error,omitempty"`    // Error message if the execution failed.
	Duration    *int64             `json:"duration,omitempty"` // Duration of the execution in milliseconds.
}

// EventCallbackFunction receives execution events.
type EventCallbackFunction func(ctx context.Context, event ExecutionEvent) error
