package fakeserver

import (
	"strings"

	"github.com/cuemby/vecta-go/pkg/filter"
)

// matchFilters evaluates an RPCFilters tree against one object's stored
// properties. Only the operators spec.md §4.5's filter idempotence
// property actually exercises (equal/not_equal/comparisons/like on plain
// property paths) are implemented; reference-traversal and geo filters
// are out of scope for this fake and are treated as non-matching rather
// than erroring, since no test scenario composes them.
func matchFilters(f *filter.RPCFilters, props map[string]any) bool {
	if f == nil {
		return true
	}
	switch f.Operator {
	case "and":
		for _, operand := range f.Operands {
			if !matchFilters(&operand, props) {
				return false
			}
		}
		return true
	case "or":
		for _, operand := range f.Operands {
			if matchFilters(&operand, props) {
				return true
			}
		}
		return false
	default:
		return matchLeaf(f, props)
	}
}

func matchLeaf(f *filter.RPCFilters, props map[string]any) bool {
	if f.On == "" {
		return false
	}
	v, ok := props[f.On]
	if !ok {
		return string(filter.OpIsNull) == f.Operator
	}
	switch filter.Operator(f.Operator) {
	case filter.OpIsNull:
		return false
	case filter.OpEqual:
		return equalsValue(f, v)
	case filter.OpNotEqual:
		return !equalsValue(f, v)
	case filter.OpGreaterThan:
		return compareNumber(f, v) > 0
	case filter.OpGreaterThanEqual:
		return compareNumber(f, v) >= 0
	case filter.OpLessThan:
		return compareNumber(f, v) < 0
	case filter.OpLessThanEqual:
		return compareNumber(f, v) <= 0
	case filter.OpLike:
		if f.ValueText == nil {
			return false
		}
		s, ok := v.(string)
		if !ok {
			return false
		}
		pattern := strings.ReplaceAll(*f.ValueText, "*", "")
		return strings.Contains(s, pattern)
	default:
		return false
	}
}

func equalsValue(f *filter.RPCFilters, v any) bool {
	switch t := v.(type) {
	case string:
		return f.ValueText != nil && *f.ValueText == t
	case float64:
		if f.ValueNumber != nil {
			return *f.ValueNumber == t
		}
		if f.ValueInt != nil {
			return float64(*f.ValueInt) == t
		}
		return false
	case bool:
		return f.ValueBoolean != nil && *f.ValueBoolean == t
	default:
		return false
	}
}

func compareNumber(f *filter.RPCFilters, v any) int {
	n, ok := v.(float64)
	if !ok {
		return 0
	}
	var want float64
	switch {
	case f.ValueNumber != nil:
		want = *f.ValueNumber
	case f.ValueInt != nil:
		want = float64(*f.ValueInt)
	default:
		return 0
	}
	switch {
	case n < want:
		return -1
	case n > want:
		return 1
	default:
		return 0
	}
}
