// Package postgres renders DML statements for PostgreSQL and opens connections
// through lib/pq.
package postgres

import (
	"strings"

	"github.com/asaidimu/go-dml/core/query"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Dialect is the PostgreSQL rendering of the builder's dialect hooks.
type Dialect struct{}

var _ query.Dialect = Dialect{}

func (Dialect) Name() string { return "postgres" }

// QuoteIdentifier delegates to pq.QuoteIdentifier.
func (Dialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// HexLiteral decodes an escaped hex string into bytea.
func (Dialect) HexLiteral(escaped string) string {
	return "decode('" + escaped + "', 'hex')"
}

func (Dialect) SelectMode(mode string) (string, bool) {
	switch m := strings.ToUpper(strings.TrimSpace(mode)); m {
	case "ALL", "DISTINCT":
		return m, true
	default:
		return "", false
	}
}

func (Dialect) LockClause(mode query.LockMode) (string, bool) {
	switch mode {
	case query.LockShared:
		return "FOR SHARE", true
	case query.LockExclusive:
		return "FOR UPDATE", true
	default:
		return "", false
	}
}

// Escape doubles single quotes. Backslashes are literal with
// standard_conforming_strings, the default since PostgreSQL 9.1.
func Escape(raw string) string {
	return strings.ReplaceAll(raw, "'", "''")
}

// NewQueryBuilder returns an empty builder rendering PostgreSQL.
func NewQueryBuilder(esc query.Escaper, logger *zap.Logger) *query.DMLQueryBuilder {
	return query.NewDMLQueryBuilder(esc, Dialect{}, logger)
}
