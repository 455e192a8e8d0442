// Package sqlite renders DML statements for SQLite and opens SQLite connections
// the executor can run them on.
package sqlite

import (
	"strings"

	"github.com/asaidimu/go-dml/core/query"
	"go.uber.org/zap"
)

// Dialect is the SQLite rendering of the builder's dialect hooks.
type Dialect struct{}

var _ query.Dialect = Dialect{}

// Name returns "sqlite".
func (Dialect) Name() string { return "sqlite" }

// QuoteIdentifier properly quotes an identifier for SQLite.
func (Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// HexLiteral decodes an escaped hex string with unhex(), available since SQLite 3.41.
func (Dialect) HexLiteral(escaped string) string {
	return "unhex('" + escaped + "')"
}

// SelectMode accepts ALL and DISTINCT.
func (Dialect) SelectMode(mode string) (string, bool) {
	switch m := strings.ToUpper(strings.TrimSpace(mode)); m {
	case "ALL", "DISTINCT":
		return m, true
	default:
		return "", false
	}
}

// LockClause always fails: SQLite locks the whole database, not rows.
func (Dialect) LockClause(query.LockMode) (string, bool) {
	return "", false
}

// Escape doubles single quotes, the only escape SQLite string literals know.
func Escape(raw string) string {
	return strings.ReplaceAll(raw, "'", "''")
}

// NewQueryBuilder returns an empty builder rendering SQLite.
func NewQueryBuilder(esc query.Escaper, logger *zap.Logger) *query.DMLQueryBuilder {
	return query.NewDMLQueryBuilder(esc, Dialect{}, logger)
}
