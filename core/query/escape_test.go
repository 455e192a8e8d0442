package query

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDMLQueryBuilder_Value(t *testing.T) {
	tests := []struct {
		name      string
		collation string
		charset   string
		expected  string
	}{
		{"value only", "", "", "'value'"},
		{"with collation", "utf8_general_ci", "", "'value' COLLATE utf8_general_ci"},
		{"with charset", "", "ascii", "ascii 'value'"},
		{"with collation and charset", "utf8_general_ci", "ascii", "ascii 'value' COLLATE utf8_general_ci"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esc := &stubEscaper{result: "value"}
			b := NewDMLQueryBuilder(esc, nil, nil)

			got, err := b.Value("raw", tt.collation, tt.charset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, []string{"raw"}, esc.calls)
		})
	}
}

func TestDMLQueryBuilder_HexValue(t *testing.T) {
	tests := []struct {
		name      string
		collation string
		charset   string
		expected  string
	}{
		{"value only", "", "", "UNHEX('value')"},
		{"with collation", "utf8_general_ci", "", "UNHEX('value') COLLATE utf8_general_ci"},
		{"with charset", "", "ascii", "ascii UNHEX('value')"},
		{"with collation and charset", "utf8_general_ci", "ascii", "ascii UNHEX('value') COLLATE utf8_general_ci"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esc := &stubEscaper{result: "value"}
			b := NewDMLQueryBuilder(esc, nil, nil)

			got, err := b.HexValue("raw", tt.collation, tt.charset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Len(t, esc.calls, 1)
		})
	}
}

func TestDMLQueryBuilder_LikeValue(t *testing.T) {
	tests := []struct {
		name      string
		match     MatchType
		collation string
		charset   string
		expected  string
	}{
		{"both", MatchBoth, "", "", "'%value%'"},
		{"both with collation", MatchBoth, "utf8_general_ci", "", "'%value%' COLLATE utf8_general_ci"},
		{"both with charset", MatchBoth, "", "ascii", "ascii '%value%'"},
		{"both with collation and charset", MatchBoth, "utf8_general_ci", "ascii", "ascii '%value%' COLLATE utf8_general_ci"},
		{"forward", MatchForward, "", "", "'value%'"},
		{"backward", MatchBackward, "", "", "'%value'"},
		{"unknown match type", MatchType("sideways"), "", "", "'value'"},
		{"empty match type", "", "", "", "'value'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esc := &stubEscaper{result: "value"}
			b := NewDMLQueryBuilder(esc, nil, nil)

			got, err := b.LikeValue("raw", tt.match, tt.collation, tt.charset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Len(t, esc.calls, 1)
		})
	}
}

func TestDMLQueryBuilder_EscapeErrors(t *testing.T) {
	escapeErr := errors.New("server has gone away")

	b := NewDMLQueryBuilder(&stubEscaper{err: escapeErr}, nil, nil)

	_, err := b.Value("x", "", "")
	assert.ErrorIs(t, err, escapeErr)
	_, err = b.HexValue("x", "", "")
	assert.ErrorIs(t, err, escapeErr)
	_, err = b.LikeValue("x", MatchBoth, "", "")
	assert.ErrorIs(t, err, escapeErr)
	_, err = b.ValueList([]string{"x"})
	assert.ErrorIs(t, err, escapeErr)

	noConn := NewDMLQueryBuilder(nil, nil, nil)
	_, err = noConn.Value("x", "", "")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
}

func TestDMLQueryBuilder_IntValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int64
	}{
		{"int", 42, 42},
		{"negative int", -7, -7},
		{"int64", int64(1 << 40), 1 << 40},
		{"uint8", uint8(200), 200},
		{"float truncates", 12.9, 12},
		{"negative float truncates", -12.9, -12},
		{"numeric string", "123", 123},
		{"padded numeric string", " 17 ", 17},
		{"float string", "3.75", 3},
		{"json number", json.Number("99"), 99},
		{"true", true, 1},
		{"false", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			b := NewDMLQueryBuilder(&stubEscaper{}, nil, zap.New(core))

			assert.Equal(t, tt.expected, b.IntValue(tt.input))
			assert.Equal(t, 0, logs.Len())
		})
	}
}

func TestDMLQueryBuilder_IntValueIllegal(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"object", struct{ A int }{A: 1}},
		{"builder", NewDMLQueryBuilder(nil, nil, nil)},
		{"nil", nil},
		{"word", "value"},
		{"mixed string", "12abc"},
		{"hex float string", "0x1p4"},
		{"signed hex float string", "0X1P+3"},
		{"infinity string", "+Inf"},
		{"slice", []int{1}},
		{"map", map[string]int{"a": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			b := NewDMLQueryBuilder(&stubEscaper{}, nil, zap.New(core))

			assert.Equal(t, int64(0), b.IntValue(tt.input))
			assert.Equal(t, 1, logs.FilterMessage("Illegal value coerced to integer").Len())
		})
	}
}

func TestDMLQueryBuilder_Collate(t *testing.T) {
	b := newTestBuilder()
	assert.Equal(t, "value", b.Collate("value", ""))
	assert.Equal(t, "value COLLATE utf8_general_ci", b.Collate("value", "utf8_general_ci"))
}

func TestDMLQueryBuilder_ValueList(t *testing.T) {
	b := newTestBuilder()

	got, err := b.ValueList([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "('a', 'b')", got)

	got, err = b.ValueList(nil)
	require.NoError(t, err)
	assert.Equal(t, "()", got)
}

func TestDMLQueryBuilder_Identifier(t *testing.T) {
	b := newTestBuilder()

	assert.Equal(t, `"col"`, b.Identifier("col"))
	assert.Equal(t, `"table"."col"`, b.Identifier("table.col"))
	assert.Equal(t, `"table".*`, b.Identifier("table.*"))
	assert.Equal(t, `"we""ird"`, b.Identifier(`we"ird`))
}
