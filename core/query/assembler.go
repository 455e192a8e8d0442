package query

import "strings"

// fragment resolves the current text of a clause. Unknown clauses resolve to "".
func (s *ClauseState) fragment(c Clause) string {
	switch c {
	case ClauseSelectMode:
		return strings.Join(uniqueModes(s.SelectMode), " ")
	case ClauseSelect:
		if s.Select == "" && s.From != "" {
			return "*"
		}
		return s.Select
	case ClauseUpdateMode:
		return strings.Join(uniqueModes(s.UpdateMode), " ")
	case ClauseUpdate:
		return s.Update
	case ClauseSet:
		return s.Set
	case ClauseDeleteMode:
		return strings.Join(uniqueModes(s.DeleteMode), " ")
	case ClauseDelete:
		return s.Delete
	case ClauseInsertMode:
		return strings.Join(uniqueModes(s.InsertMode), " ")
	case ClauseInto:
		return s.Into
	case ClauseColumnNames:
		return s.ColumnNames
	case ClauseValues:
		return s.Values
	case ClauseFrom:
		return s.From
	case ClauseJoin:
		return s.Join
	case ClauseWhere:
		return s.Where
	case ClauseGroupBy:
		return s.GroupBy
	case ClauseHaving:
		return s.Having
	case ClauseOrderBy:
		return s.OrderBy
	case ClauseLimit:
		return s.Limit
	case ClauseLockMode:
		return s.LockMode
	default:
		return ""
	}
}

// implodeQuery joins the non-empty fragments of the given clauses with single
// spaces, in the order given.
func (b *DMLQueryBuilder) implodeQuery(clauses []Clause) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if f := b.state.fragment(c); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
