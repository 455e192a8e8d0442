package query

// stubEscaper is a test double for the connection's escape primitive.
type stubEscaper struct {
	result string
	err    error
	calls  []string
}

func (s *stubEscaper) EscapeString(raw string) (string, error) {
	s.calls = append(s.calls, raw)
	if s.err != nil {
		return "", s.err
	}
	if s.result != "" {
		return s.result, nil
	}
	return raw, nil
}
