// Package utils converts between Go structs and the column maps statements are
// built from and rows are read into.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// StructToMap flattens a struct into a column map keyed by the struct's JSON
// names. `json` tags, including omitempty and "-", are honored.
//
// Scalar values come back as string, bool, nil or json.Number, so integers keep
// their exact text. Nested objects and arrays are kept as json.RawMessage to be
// stored in a single text column.
//
// Example:
//
//	type User struct {
//		ID   int            `json:"id"`
//		Tags []string       `json:"tags"`
//	}
//	m, _ := StructToMap(User{ID: 7, Tags: []string{"a"}})
//	// m == map[string]any{"id": json.Number("7"), "tags": json.RawMessage(`["a"]`)}
func StructToMap[T any](record T) (map[string]any, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("StructToMap: failed to marshal record: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("StructToMap: failed to split record into fields: %w", err)
	}

	result := make(map[string]any, len(fields))
	for key, raw := range fields {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			result[key] = raw
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var scalar any
		if err := dec.Decode(&scalar); err != nil {
			return nil, fmt.Errorf("StructToMap: failed to decode field '%s': %w", key, err)
		}
		result[key] = scalar
	}
	return result, nil
}

// MapToStruct decodes a column map, such as a row read from the database, into a
// new T. T must be a struct or a pointer to a struct. Integer values bound for
// bool fields become false when zero and true otherwise, so 0/1 columns read
// back into the bools they were written from.
func MapToStruct[T any](input map[string]any) (T, error) {
	var zero T

	if input == nil {
		return zero, fmt.Errorf("MapToStruct: input map cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type (or pointer to struct)")
	}

	encoded, err := json.Marshal(coerceBools(typ, input))
	if err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to marshal input map: %w", err)
	}

	var result T
	if err := json.Unmarshal(encoded, &result); err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to unmarshal into target struct: %w", err)
	}
	return result, nil
}

// coerceBools returns input with numeric values of bool (or *bool) fields of typ
// replaced by booleans. input itself is not modified.
func coerceBools(typ reflect.Type, input map[string]any) map[string]any {
	var out map[string]any
	for key, val := range input {
		if !isBoolField(typ, key) {
			continue
		}
		b, ok := numericBool(val)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(input))
			for k, v := range input {
				out[k] = v
			}
		}
		out[key] = b
	}
	if out == nil {
		return input
	}
	return out
}

// isBoolField reports whether key names a bool field of typ, matching JSON names
// case-insensitively as encoding/json does.
func isBoolField(typ reflect.Type, key string) bool {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if !strings.EqualFold(name, key) {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		return ft.Kind() == reflect.Bool
	}
	return false
}

func numericBool(v any) (bool, bool) {
	switch n := v.(type) {
	case int64:
		return n != 0, true
	case int:
		return n != 0, true
	case int32:
		return n != 0, true
	case uint64:
		return n != 0, true
	case float64:
		return n != 0, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		// Text protocols such as MySQL's return integers as strings.
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return false, false
		}
		return i != 0, true
	default:
		return false, false
	}
}
