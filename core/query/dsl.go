package query

import "strings"

// Clause identifies one fragment slot of a statement. The set is closed: any value
// outside the declared constants is treated as unknown and renders nothing.
type Clause int

// Known clauses, in no particular statement order.
const (
	ClauseUnknown Clause = iota
	ClauseSelectMode
	ClauseSelect
	ClauseUpdateMode
	ClauseUpdate
	ClauseDeleteMode
	ClauseDelete
	ClauseInsertMode
	ClauseInto
	ClauseSet
	ClauseColumnNames
	ClauseValues
	ClauseFrom
	ClauseJoin
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseLimit
	ClauseLockMode
)

var clauseNames = map[Clause]string{
	ClauseSelectMode:  "select_mode",
	ClauseSelect:      "select",
	ClauseUpdateMode:  "update_mode",
	ClauseUpdate:      "update",
	ClauseDeleteMode:  "delete_mode",
	ClauseDelete:      "delete",
	ClauseInsertMode:  "insert_mode",
	ClauseInto:        "into",
	ClauseSet:         "set",
	ClauseColumnNames: "column_names",
	ClauseValues:      "values",
	ClauseFrom:        "from",
	ClauseJoin:        "join",
	ClauseWhere:       "where",
	ClauseGroupBy:     "group_by",
	ClauseHaving:      "having",
	ClauseOrderBy:     "order_by",
	ClauseLimit:       "limit",
	ClauseLockMode:    "lock_mode",
}

// String returns the snake_case name of the clause, or "unknown".
func (c Clause) String() string {
	if name, ok := clauseNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseClause maps a clause name such as "group_by" back to its Clause.
// Unrecognized names yield ClauseUnknown.
func ParseClause(name string) Clause {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range clauseNames {
		if n == name {
			return c
		}
	}
	return ClauseUnknown
}

// Statement clause orders. Clauses outside a statement kind are simply absent.
var (
	selectClauses = []Clause{ClauseSelectMode, ClauseSelect, ClauseFrom, ClauseJoin, ClauseWhere, ClauseGroupBy, ClauseHaving, ClauseOrderBy, ClauseLimit, ClauseLockMode}
	updateClauses = []Clause{ClauseUpdateMode, ClauseUpdate, ClauseJoin, ClauseSet, ClauseWhere, ClauseOrderBy, ClauseLimit}
	deleteClauses = []Clause{ClauseDeleteMode, ClauseDelete, ClauseFrom, ClauseJoin, ClauseWhere, ClauseOrderBy, ClauseLimit}
	insertClauses = []Clause{ClauseInsertMode, ClauseInto, ClauseColumnNames, ClauseValues}
)

// MatchType selects where LikeValue places the % wildcards.
type MatchType string

// Supported match types. Any other value leaves the escaped value unwrapped.
const (
	MatchBoth     MatchType = "both"
	MatchForward  MatchType = "forward"
	MatchBackward MatchType = "backward"
)

// LockMode is a row locking request appended to SELECT statements.
type LockMode string

// Supported lock modes.
const (
	LockShared    LockMode = "share"
	LockExclusive LockMode = "exclusive"
)
