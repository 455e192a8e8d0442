// Package query provides a set of utility functions to support the builder. These
// helpers handle value coercion for integer literals.
package query

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ToInt64 converts a value of various numeric types, or a numeric string, to an
// int64. Floats are truncated toward zero. It returns false when the value does
// not represent a number that fits in an int64.
func ToInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return fromUint(val)
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case json.Number:
		return fromString(string(val))
	case string:
		return fromString(val)
	default:
		return 0, false
	}
}

func fromUint(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func fromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// decimalPattern matches plain decimal numbers. Hex floats, Inf and NaN are
// rejected even though strconv.ParseFloat accepts them.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func fromString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return fromFloat(f)
}
