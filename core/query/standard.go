package query

import (
	"regexp"
	"strings"
)

var keywordPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// keyword upper-cases and trims a modifier keyword, reporting whether it looks like
// a single SQL keyword.
func keyword(mode string) (string, bool) {
	k := strings.ToUpper(strings.TrimSpace(mode))
	return k, keywordPattern.MatchString(k)
}

// ANSI is the dialect used when a builder is created without one. It accepts any
// keyword-shaped select modifier, double-quotes identifiers and decodes hex
// strings with UNHEX.
var ANSI Dialect = ansiDialect{}

type ansiDialect struct{}

func (ansiDialect) Name() string { return "ansi" }

func (ansiDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (ansiDialect) HexLiteral(escaped string) string {
	return "UNHEX('" + escaped + "')"
}

func (ansiDialect) SelectMode(mode string) (string, bool) {
	return keyword(mode)
}

func (ansiDialect) LockClause(mode LockMode) (string, bool) {
	if mode == LockExclusive {
		return "FOR UPDATE", true
	}
	return "", false
}
