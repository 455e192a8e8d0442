package query

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// escape runs raw through the connection's escape primitive.
func (b *DMLQueryBuilder) escape(raw string) (string, error) {
	if b.escaper == nil {
		return "", ErrConnectionUnavailable
	}
	return b.escaper.EscapeString(raw)
}

// decorate prefixes a literal with its charset and suffixes it with a collation.
func (b *DMLQueryBuilder) decorate(literal, collation, charset string) string {
	if charset != "" {
		literal = charset + " " + literal
	}
	return b.Collate(literal, collation)
}

// Collate appends a COLLATE clause to value when collation is set.
func (b *DMLQueryBuilder) Collate(value, collation string) string {
	if collation == "" {
		return value
	}
	return value + " COLLATE " + collation
}

// Value escapes raw as a quoted string literal:
//
//	[charset ]'escaped'[ COLLATE collation]
func (b *DMLQueryBuilder) Value(raw, collation, charset string) (string, error) {
	escaped, err := b.escape(raw)
	if err != nil {
		return "", err
	}
	return b.decorate("'"+escaped+"'", collation, charset), nil
}

// HexValue escapes raw as a hex string decoded by the dialect, UNHEX('escaped') by
// default, with the same decoration as Value.
func (b *DMLQueryBuilder) HexValue(raw, collation, charset string) (string, error) {
	escaped, err := b.escape(raw)
	if err != nil {
		return "", err
	}
	return b.decorate(b.dialect.HexLiteral(escaped), collation, charset), nil
}

// LikeValue escapes raw as a LIKE pattern, wrapping it with % according to match.
func (b *DMLQueryBuilder) LikeValue(raw string, match MatchType, collation, charset string) (string, error) {
	escaped, err := b.escape(raw)
	if err != nil {
		return "", err
	}
	switch match {
	case MatchBoth:
		escaped = "%" + escaped + "%"
	case MatchForward:
		escaped = escaped + "%"
	case MatchBackward:
		escaped = "%" + escaped
	}
	return b.decorate("'"+escaped+"'", collation, charset), nil
}

// IntValue coerces value to an integer literal. Values that do not represent a
// number coerce to 0 and log a warning; IntValue never fails.
func (b *DMLQueryBuilder) IntValue(value any) int64 {
	i, ok := ToInt64(value)
	if !ok {
		b.logger.Warn("Illegal value coerced to integer", zap.String("type", fmt.Sprintf("%T", value)))
		return 0
	}
	return i
}

// ValueList escapes each raw value with Value and renders a parenthesized list.
func (b *DMLQueryBuilder) ValueList(raws []string) (string, error) {
	values := make([]string, len(raws))
	for i, raw := range raws {
		v, err := b.Value(raw, "", "")
		if err != nil {
			return "", err
		}
		values[i] = v
	}
	return "(" + strings.Join(values, ", ") + ")", nil
}

// Identifier quotes a possibly qualified name such as "table.column" part by part.
// A "*" part is left unquoted.
func (b *DMLQueryBuilder) Identifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "*" {
			parts[i] = p
			continue
		}
		parts[i] = b.dialect.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
