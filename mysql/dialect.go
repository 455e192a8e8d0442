// Package mysql renders DML statements for MySQL and MariaDB and opens
// connections through go-sql-driver/mysql.
package mysql

import (
	"strings"

	"github.com/asaidimu/go-dml/core/query"
	"go.uber.org/zap"
)

// selectModes lists the SELECT modifiers MySQL accepts between SELECT and the
// column list.
var selectModes = map[string]struct{}{
	"ALL":                 {},
	"DISTINCT":            {},
	"DISTINCTROW":         {},
	"HIGH_PRIORITY":       {},
	"STRAIGHT_JOIN":       {},
	"SQL_SMALL_RESULT":    {},
	"SQL_BIG_RESULT":      {},
	"SQL_BUFFER_RESULT":   {},
	"SQL_CACHE":           {},
	"SQL_NO_CACHE":        {},
	"SQL_CALC_FOUND_ROWS": {},
}

// Dialect is the MySQL rendering of the builder's dialect hooks.
type Dialect struct{}

var _ query.Dialect = Dialect{}

func (Dialect) Name() string { return "mysql" }

// QuoteIdentifier quotes name with backticks, doubling embedded backticks.
func (Dialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (Dialect) HexLiteral(escaped string) string {
	return "UNHEX('" + escaped + "')"
}

func (Dialect) SelectMode(mode string) (string, bool) {
	m := strings.ToUpper(strings.TrimSpace(mode))
	if _, ok := selectModes[m]; !ok {
		return "", false
	}
	return m, true
}

func (Dialect) LockClause(mode query.LockMode) (string, bool) {
	switch mode {
	case query.LockShared:
		return "LOCK IN SHARE MODE", true
	case query.LockExclusive:
		return "FOR UPDATE", true
	default:
		return "", false
	}
}

// backslashEscaper mirrors mysql_real_escape_string.
var backslashEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"'", "\\'",
	"\"", "\\\"",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"\x1a", "\\Z",
)

// Escape escapes raw the way mysql_real_escape_string does for a server in the
// default SQL mode.
func Escape(raw string) string {
	return backslashEscaper.Replace(raw)
}

// EscapeNoBackslash escapes raw for a server running with NO_BACKSLASH_ESCAPES,
// where a backslash is an ordinary character and only quotes need doubling.
func EscapeNoBackslash(raw string) string {
	return strings.ReplaceAll(raw, "'", "''")
}

// NewQueryBuilder returns an empty builder rendering MySQL.
func NewQueryBuilder(esc query.Escaper, logger *zap.Logger) *query.DMLQueryBuilder {
	return query.NewDMLQueryBuilder(esc, Dialect{}, logger)
}
