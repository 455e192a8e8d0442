package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/asaidimu/go-dml/core/query"
	"github.com/asaidimu/go-dml/utils"
	"github.com/asaidimu/go-events"
	"go.uber.org/zap"
)

// Executor runs statements materialized by a DMLQueryBuilder against a
// Connection and emits an ExecutionEvent around each one.
type Executor struct {
	conn   Connection
	bus    *events.TypedEventBus[ExecutionEvent]
	logger *zap.Logger
}

// NewExecutor creates an executor for conn. A nil logger discards logs.
func NewExecutor(conn Connection, logger *zap.Logger) (*Executor, error) {
	if conn == nil {
		return nil, ErrNilConnection
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bus, err := events.NewTypedEventBus[ExecutionEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	return &Executor{
		conn:   conn,
		bus:    bus,
		logger: logger,
	}, nil
}

// NewBuilder returns an empty builder that escapes through the executor's
// connection and renders its dialect.
func (e *Executor) NewBuilder() *query.DMLQueryBuilder {
	return query.NewDMLQueryBuilder(e.conn, e.conn.Dialect(), e.logger)
}

// Subscribe registers a callback for one event type. The returned function
// removes the subscription.
func (e *Executor) Subscribe(eventType ExecutionEventType, callback EventCallbackFunction) func() {
	return e.bus.Subscribe(string(eventType), callback)
}

// Select runs the SELECT statement b materializes and returns the rows read.
func (e *Executor) Select(ctx context.Context, b query.StatementBuilder) ([]Row, error) {
	statement := b.GetSelectQuery()
	if statement == "" {
		return nil, ErrEmptyStatement
	}
	return withEventEmission(e, selectEvents, statement, func() ([]Row, error) {
		return e.conn.Query(ctx, statement)
	})
}

// Update runs the UPDATE statement b materializes and returns the affected row count.
func (e *Executor) Update(ctx context.Context, b query.StatementBuilder) (int64, error) {
	return e.exec(ctx, updateEvents, b.GetUpdateQuery())
}

// Insert runs the INSERT statement b materializes and returns the affected row count.
func (e *Executor) Insert(ctx context.Context, b query.StatementBuilder) (int64, error) {
	return e.exec(ctx, insertEvents, b.GetInsertQuery())
}

// Delete runs the DELETE statement b materializes and returns the affected row count.
func (e *Executor) Delete(ctx context.Context, b query.StatementBuilder) (int64, error) {
	return e.exec(ctx, deleteEvents, b.GetDeleteQuery())
}

func (e *Executor) exec(ctx context.Context, set eventSet, statement string) (int64, error) {
	if statement == "" {
		return 0, ErrEmptyStatement
	}
	return withEventEmission(e, set, statement, func() (int64, error) {
		return e.conn.Exec(ctx, statement)
	})
}

// InsertRecord inserts one struct as a row of table. Columns are the struct's
// JSON field names in sorted order; every value is escaped through the
// connection.
func (e *Executor) InsertRecord(ctx context.Context, table string, record any) (int64, error) {
	fields, err := utils.StructToMap(record)
	if err != nil {
		return 0, fmt.Errorf("failed to convert record: %w", err)
	}
	if len(fields) == 0 {
		return 0, ErrEmptyStatement
	}

	b := e.NewBuilder()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]string, len(names))
	row := make([]string, len(names))
	for i, name := range names {
		columns[i] = b.Identifier(name)
		literal, err := renderValue(b, fields[name])
		if err != nil {
			return 0, fmt.Errorf("failed to render value for column '%s': %w", name, err)
		}
		row[i] = literal
	}

	b.Into(b.Identifier(table)).ColumnNames(columns).Values(row)
	return e.Insert(ctx, b)
}

// renderValue turns a StructToMap value into a SQL literal.
func renderValue(b *query.DMLQueryBuilder, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case json.Number:
		return val.String(), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case string:
		return b.Value(val, "", "")
	case json.RawMessage:
		return b.Value(string(val), "", "")
	default:
		return b.Value(fmt.Sprint(val), "", "")
	}
}

// ScanRows decodes rows into a slice of T, matching columns to JSON field names.
func ScanRows[T any](rows []Row) ([]T, error) {
	results := make([]T, 0, len(rows))
	for i, row := range rows {
		record, err := utils.MapToStruct[T](row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", i, err)
		}
		results = append(results, record)
	}
	return results, nil
}
