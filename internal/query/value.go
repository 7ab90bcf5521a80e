package query

import (
	"fmt"
	"strconv"
)

// Value is a single scalar cell value. The concrete type is one of
// string, int64, float64, or nil (null).
type Value interface{}

// Row represents one record being tested, keyed by column name.
// A row is never mutated during evaluation.
type Row map[string]Value

// formatValue renders a scalar the way the AST printer and repr output
// expect it: numbers in their shortest form, strings verbatim.
func formatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// valueTypeName returns the name used for leaf tokens in the AST dump.
func valueTypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case int64:
		return "int64"
	case float64:
		return "float64"
	default:
		return fmt.Sprintf("%T", v)
	}
}
