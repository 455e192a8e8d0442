// Package query defines the interfaces the builder consumes from database
// connections and from SQL dialects.
package query

import "errors"

// ErrConnectionUnavailable is returned by an Escaper that has no live connection
// to escape against. The builder never retries; it hands the error back.
var ErrConnectionUnavailable = errors.New("[query] connection unavailable")

// Escaper is the capability the builder borrows from a database connection.
type Escaper interface {
	// EscapeString neutralizes every character of raw that needs escaping inside
	// a quoted SQL string literal. It must not add the surrounding quotes.
	EscapeString(raw string) (string, error)
}

// Dialect describes the syntax that differs between database engines.
type Dialect interface {
	// Name returns the dialect name, e.g. "mysql".
	Name() string

	// QuoteIdentifier quotes a single identifier part (no dots).
	QuoteIdentifier(name string) string

	// HexLiteral wraps an escaped hex string into an expression producing the
	// decoded binary value.
	HexLiteral(escaped string) string

	// SelectMode normalizes a select modifier keyword and reports whether the
	// dialect supports it.
	SelectMode(mode string) (string, bool)

	// LockClause renders a lock mode, reporting false when it is unsupported.
	LockClause(mode LockMode) (string, bool)
}

// StatementBuilder is implemented by builders that can materialize DML statements.
// Executors consume it; an empty string means the statement is incomplete.
type StatementBuilder interface {
	GetSelectQuery() string
	GetUpdateQuery() string
	GetInsertQuery() string
	GetDeleteQuery() string
}
