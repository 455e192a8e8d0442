// Package query provides a fluent API for building DML statements. A builder
// accumulates clause fragments in any order and materializes SELECT, UPDATE,
// INSERT and DELETE text from them on demand.
package query

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DMLQueryBuilder accumulates clause fragments and assembles them into statements.
// A builder is owned by a single caller; it is not safe for concurrent use.
type DMLQueryBuilder struct {
	state   ClauseState
	escaper Escaper
	dialect Dialect
	logger  *zap.Logger

	// joinOpen is set once the latest join received its first ON condition.
	joinOpen bool
}

var _ StatementBuilder = (*DMLQueryBuilder)(nil)

// NewDMLQueryBuilder creates an empty builder. A nil dialect selects ANSI and a nil
// logger discards diagnostics.
func NewDMLQueryBuilder(escaper Escaper, dialect Dialect, logger *zap.Logger) *DMLQueryBuilder {
	return NewDMLQueryBuilderWithState(escaper, dialect, logger, ClauseState{})
}

// NewDMLQueryBuilderWithState creates a builder starting from a copy of state.
func NewDMLQueryBuilderWithState(escaper Escaper, dialect Dialect, logger *zap.Logger, state ClauseState) *DMLQueryBuilder {
	if dialect == nil {
		dialect = ANSI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DMLQueryBuilder{
		state:   state.Clone(),
		escaper: escaper,
		dialect: dialect,
		logger:  logger,
	}
}

// Dialect returns the dialect the builder renders for.
func (b *DMLQueryBuilder) Dialect() Dialect {
	return b.dialect
}

// State returns a deep copy of the accumulated clause state.
func (b *DMLQueryBuilder) State() ClauseState {
	return b.state.Clone()
}

// Reset clears all clauses, returning the builder to its initial state.
func (b *DMLQueryBuilder) Reset() *DMLQueryBuilder {
	b.state = ClauseState{}
	b.joinOpen = false
	return b
}

// withKeyword prefixes text with kw unless its leading words already are kw.
// Text made of the keyword alone yields "".
func withKeyword(kw, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	kwWords := strings.Fields(kw)
	words := strings.Fields(text)
	if len(words) >= len(kwWords) && strings.EqualFold(strings.Join(words[:len(kwWords)], " "), kw) {
		if len(words) == len(kwWords) {
			return ""
		}
		return text
	}
	return kw + " " + text
}

// addCondition appends cond to a keyworded condition clause.
func addCondition(target *string, kw, connector, cond string) {
	if *target == "" {
		*target = kw + " " + cond
		return
	}
	*target += " " + connector + " " + cond
}

func comparison(left, right, operator string) string {
	if operator = strings.TrimSpace(operator); operator == "" {
		operator = "="
	}
	return left + " " + operator + " " + right
}

// Select appends column expressions to the select list.
func (b *DMLQueryBuilder) Select(columns string) *DMLQueryBuilder {
	columns = strings.TrimSpace(columns)
	if columns == "" {
		return b
	}
	if b.state.Select == "" {
		b.state.Select = columns
	} else {
		b.state.Select += "," + columns
	}
	return b
}

// SelectMode appends a select modifier such as DISTINCT. Repeated modifiers are
// kept once; modifiers the dialect does not know are dropped.
func (b *DMLQueryBuilder) SelectMode(mode string) *DMLQueryBuilder {
	m, ok := b.dialect.SelectMode(mode)
	if !ok {
		b.logger.Warn("Ignoring unsupported select mode", zap.String("mode", mode), zap.String("dialect", b.dialect.Name()))
		return b
	}
	b.state.SelectMode = appendMode(b.state.SelectMode, m)
	return b
}

// From sets the source table list.
func (b *DMLQueryBuilder) From(table string) *DMLQueryBuilder {
	b.state.From = withKeyword("FROM", table)
	return b
}

// Join appends a join of the given type (INNER when empty) against table.
func (b *DMLQueryBuilder) Join(table, joinType string) *DMLQueryBuilder {
	table = strings.TrimSpace(table)
	if table == "" {
		return b
	}
	jt := strings.ToUpper(strings.TrimSpace(joinType))
	if jt == "" {
		jt = "INNER"
	}
	frag := jt + " JOIN " + table
	if b.state.Join == "" {
		b.state.Join = frag
	} else {
		b.state.Join += " " + frag
	}
	b.joinOpen = false
	return b
}

// On adds a join condition to the most recent join.
func (b *DMLQueryBuilder) On(left, right, operator string) *DMLQueryBuilder {
	if b.state.Join == "" {
		b.logger.Warn("Ignoring ON condition without a join", zap.String("left", left))
		return b
	}
	cond := comparison(left, right, operator)
	if b.joinOpen {
		b.state.Join += " AND " + cond
	} else {
		b.state.Join += " ON " + cond
		b.joinOpen = true
	}
	return b
}

// Where adds a condition joined to previous ones with AND. An empty operator means "=".
// Conditions with a blank left operand are ignored.
func (b *DMLQueryBuilder) Where(left, right, operator string) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	addCondition(&b.state.Where, "WHERE", "AND", comparison(left, right, operator))
	return b
}

// OrWhere adds a condition joined to previous ones with OR.
func (b *DMLQueryBuilder) OrWhere(left, right, operator string) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	addCondition(&b.state.Where, "WHERE", "OR", comparison(left, right, operator))
	return b
}

// WhereIn adds "left IN list"; list is a parenthesized value list such as the
// output of ValueList.
func (b *DMLQueryBuilder) WhereIn(left, list string, negate bool) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	op := "IN"
	if negate {
		op = "NOT IN"
	}
	addCondition(&b.state.Where, "WHERE", "AND", left+" "+op+" "+list)
	return b
}

// WhereLike adds "left LIKE right"; right is usually the output of LikeValue.
func (b *DMLQueryBuilder) WhereLike(left, right string, negate bool) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	op := "LIKE"
	if negate {
		op = "NOT LIKE"
	}
	addCondition(&b.state.Where, "WHERE", "AND", left+" "+op+" "+right)
	return b
}

// WhereNull adds "left IS NULL" or "left IS NOT NULL".
func (b *DMLQueryBuilder) WhereNull(left string, negate bool) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	cond := left + " IS NULL"
	if negate {
		cond = left + " IS NOT NULL"
	}
	addCondition(&b.state.Where, "WHERE", "AND", cond)
	return b
}

// GroupBy sets the grouping expression list.
func (b *DMLQueryBuilder) GroupBy(expr string) *DMLQueryBuilder {
	b.state.GroupBy = withKeyword("GROUP BY", expr)
	return b
}

// Having adds a grouped-row condition joined to previous ones with AND.
func (b *DMLQueryBuilder) Having(left, right, operator string) *DMLQueryBuilder {
	if strings.TrimSpace(left) == "" {
		return b
	}
	addCondition(&b.state.Having, "HAVING", "AND", comparison(left, right, operator))
	return b
}

// OrderBy sets the ordering expression list, directions included.
func (b *DMLQueryBuilder) OrderBy(expr string) *DMLQueryBuilder {
	b.state.OrderBy = withKeyword("ORDER BY", expr)
	return b
}

// Limit sets the row limit. An offset of zero or less is omitted and a negative
// amount clears the clause.
func (b *DMLQueryBuilder) Limit(amount, offset int) *DMLQueryBuilder {
	if amount < 0 {
		b.state.Limit = ""
		return b
	}
	b.state.Limit = "LIMIT " + strconv.Itoa(amount)
	if offset > 0 {
		b.state.Limit += " OFFSET " + strconv.Itoa(offset)
	}
	return b
}

// LockMode requests row locking for SELECT statements.
func (b *DMLQueryBuilder) LockMode(mode LockMode) *DMLQueryBuilder {
	clause, ok := b.dialect.LockClause(mode)
	if !ok {
		b.logger.Warn("Ignoring unsupported lock mode", zap.String("mode", string(mode)), zap.String("dialect", b.dialect.Name()))
		return b
	}
	b.state.LockMode = clause
	return b
}

// Update sets the table list of an UPDATE statement.
func (b *DMLQueryBuilder) Update(table string) *DMLQueryBuilder {
	b.state.Update = strings.TrimSpace(table)
	return b
}

// UpdateMode appends an UPDATE modifier such as LOW_PRIORITY.
func (b *DMLQueryBuilder) UpdateMode(mode string) *DMLQueryBuilder {
	if m, ok := keyword(mode); ok {
		b.state.UpdateMode = appendMode(b.state.UpdateMode, m)
	}
	return b
}

// Set appends a "column = value" assignment; value must already be escaped.
func (b *DMLQueryBuilder) Set(column, value string) *DMLQueryBuilder {
	assignment := column + " = " + value
	if b.state.Set == "" {
		b.state.Set = "SET " + assignment
	} else {
		b.state.Set += ", " + assignment
	}
	return b
}

// Delete sets the tables rows are deleted from in a multi-table DELETE.
func (b *DMLQueryBuilder) Delete(tables string) *DMLQueryBuilder {
	b.state.Delete = strings.TrimSpace(tables)
	return b
}

// DeleteMode appends a DELETE modifier such as QUICK.
func (b *DMLQueryBuilder) DeleteMode(mode string) *DMLQueryBuilder {
	if m, ok := keyword(mode); ok {
		b.state.DeleteMode = appendMode(b.state.DeleteMode, m)
	}
	return b
}

// Into sets the target table of an INSERT statement.
func (b *DMLQueryBuilder) Into(table string) *DMLQueryBuilder {
	b.state.Into = withKeyword("INTO", table)
	return b
}

// InsertMode appends an INSERT modifier such as IGNORE.
func (b *DMLQueryBuilder) InsertMode(mode string) *DMLQueryBuilder {
	if m, ok := keyword(mode); ok {
		b.state.InsertMode = appendMode(b.state.InsertMode, m)
	}
	return b
}

// ColumnNames sets the column list of an INSERT statement.
func (b *DMLQueryBuilder) ColumnNames(columns []string) *DMLQueryBuilder {
	if len(columns) == 0 {
		b.state.ColumnNames = ""
		return b
	}
	b.state.ColumnNames = "(" + strings.Join(columns, ", ") + ")"
	return b
}

// Values appends one row of already escaped values to an INSERT statement.
func (b *DMLQueryBuilder) Values(row []string) *DMLQueryBuilder {
	if len(row) == 0 {
		return b
	}
	tuple := "(" + strings.Join(row, ", ") + ")"
	if b.state.Values == "" {
		b.state.Values = "VALUES " + tuple
	} else {
		b.state.Values += ", " + tuple
	}
	return b
}

// GetSelectQuery returns the SELECT statement, or "" when no source table is set.
func (b *DMLQueryBuilder) GetSelectQuery() string {
	if b.state.From == "" {
		return ""
	}
	return "SELECT " + b.implodeQuery(selectClauses)
}

// GetUpdateQuery returns the UPDATE statement, or "" without a table or assignments.
func (b *DMLQueryBuilder) GetUpdateQuery() string {
	if b.state.Update == "" || b.state.Set == "" {
		return ""
	}
	return "UPDATE " + b.implodeQuery(updateClauses)
}

// GetDeleteQuery returns the DELETE statement, or "" when no source table is set.
func (b *DMLQueryBuilder) GetDeleteQuery() string {
	if b.state.From == "" {
		return ""
	}
	return "DELETE " + b.implodeQuery(deleteClauses)
}

// GetInsertQuery returns the INSERT statement, or "" without a target or rows.
func (b *DMLQueryBuilder) GetInsertQuery() string {
	if b.state.Into == "" || b.state.Values == "" {
		return ""
	}
	return "INSERT " + b.implodeQuery(insertClauses)
}
