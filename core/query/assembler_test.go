package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImplodeQuery(t *testing.T) {
	tests := []struct {
		name     string
		state    ClauseState
		clauses  []Clause
		expected string
	}{
		{
			name:     "no components",
			clauses:  []Clause{},
			expected: "",
		},
		{
			name:     "non existing component",
			clauses:  []Clause{ParseClause("whatever")},
			expected: "",
		},
		{
			name:     "out of range component",
			clauses:  []Clause{Clause(99)},
			expected: "",
		},
		{
			name:     "existing but empty components",
			clauses:  []Clause{ClauseSelectMode, ClauseSelect, ClauseFrom},
			expected: "",
		},
		{
			name:     "empty select component",
			state:    ClauseState{From: "FROM table"},
			clauses:  []Clause{ClauseSelect, ClauseFrom},
			expected: "* FROM table",
		},
		{
			name: "duplicate select modes",
			state: ClauseState{
				From:       "FROM table",
				SelectMode: []string{"DISTINCT", "DISTINCT", "SQL_CACHE"},
			},
			clauses:  []Clause{ClauseSelectMode, ClauseSelect, ClauseFrom},
			expected: "DISTINCT SQL_CACHE * FROM table",
		},
		{
			name: "unknown clauses are skipped between known ones",
			state: ClauseState{
				Select: "a",
				From:   "FROM t",
				Limit:  "LIMIT 1",
			},
			clauses:  []Clause{ClauseSelect, ClauseUnknown, ClauseFrom, ClauseGroupBy, ClauseLimit},
			expected: "a FROM t LIMIT 1",
		},
		{
			name:     "select without from stays empty",
			state:    ClauseState{OrderBy: "ORDER BY a"},
			clauses:  []Clause{ClauseSelect, ClauseOrderBy},
			expected: "ORDER BY a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewDMLQueryBuilderWithState(&stubEscaper{}, nil, nil, tt.state)
			assert.Equal(t, tt.expected, b.implodeQuery(tt.clauses))
		})
	}
}

func TestImplodeQuery_EveryClauseResolves(t *testing.T) {
	state := ClauseState{
		SelectMode:  []string{"S"},
		Select:      "select",
		UpdateMode:  []string{"U"},
		Update:      "update",
		Set:         "SET set",
		DeleteMode:  []string{"D"},
		Delete:      "delete",
		InsertMode:  []string{"I"},
		Into:        "INTO into",
		ColumnNames: "(c)",
		Values:      "VALUES (v)",
		From:        "FROM from",
		Join:        "INNER JOIN join",
		Where:       "WHERE where",
		GroupBy:     "GROUP BY group",
		Having:      "HAVING having",
		OrderBy:     "ORDER BY order",
		Limit:       "LIMIT 1",
		LockMode:    "FOR UPDATE",
	}
	b := NewDMLQueryBuilderWithState(&stubEscaper{}, nil, nil, state)

	for c := range clauseNames {
		assert.NotEmpty(t, b.state.fragment(c), "clause %s should resolve", c)
	}
}
