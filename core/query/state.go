package query

import "slices"

// ClauseState is the accumulated fragment text of a builder. Every string field is
// either empty (absent) or a complete keyword-prefixed fragment, except Select,
// Update and Delete which hold bare lists and ColumnNames which holds a
// parenthesized one. Mode slices keep keywords in order of first insertion.
type ClauseState struct {
	SelectMode []string
	Select     string

	UpdateMode []string
	Update     string
	Set        string

	DeleteMode []string
	Delete     string

	InsertMode  []string
	Into        string
	ColumnNames string
	Values      string

	From     string
	Join     string
	Where    string
	GroupBy  string
	Having   string
	OrderBy  string
	Limit    string
	LockMode string
}

// Clone returns a deep copy of the state.
func (s ClauseState) Clone() ClauseState {
	c := s
	c.SelectMode = slices.Clone(s.SelectMode)
	c.UpdateMode = slices.Clone(s.UpdateMode)
	c.DeleteMode = slices.Clone(s.DeleteMode)
	c.InsertMode = slices.Clone(s.InsertMode)
	return c
}

// appendMode adds mode to modes unless it is already present.
func appendMode(modes []string, mode string) []string {
	if mode == "" || slices.Contains(modes, mode) {
		return modes
	}
	return append(modes, mode)
}

// uniqueModes drops repeated keywords, keeping the first occurrence of each.
func uniqueModes(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		out = appendMode(out, m)
	}
	return out
}
