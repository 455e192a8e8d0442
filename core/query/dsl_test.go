package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClause_String(t *testing.T) {
	assert.Equal(t, "select_mode", ClauseSelectMode.String())
	assert.Equal(t, "group_by", ClauseGroupBy.String())
	assert.Equal(t, "unknown", ClauseUnknown.String())
	assert.Equal(t, "unknown", Clause(-1).String())
}

func TestParseClause(t *testing.T) {
	for c, name := range clauseNames {
		assert.Equal(t, c, ParseClause(name))
	}
	assert.Equal(t, ClauseOrderBy, ParseClause(" ORDER_BY "))
	assert.Equal(t, ClauseUnknown, ParseClause("whatever"))
	assert.Equal(t, ClauseUnknown, ParseClause(""))
}

func TestStatementClauseOrders(t *testing.T) {
	for _, clauses := range [][]Clause{selectClauses, updateClauses, deleteClauses, insertClauses} {
		seen := map[Clause]bool{}
		for _, c := range clauses {
			assert.NotEqual(t, ClauseUnknown, c)
			assert.False(t, seen[c], "clause %s listed twice", c)
			seen[c] = true
		}
	}
}
