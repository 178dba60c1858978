package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bisegni/qprint/pkg/parser"
)

// Wildcard selects every element of an array or every value of an object.
const Wildcard = "*"

// Path is a dot separated field reference such as "address.city",
// "tags.0" or "items.*.sku".
type Path struct {
	raw   string
	parts []string
}

// NewPath parses a dotted path. An empty path or "." selects the whole record.
func NewPath(path string) *Path {
	p := &Path{raw: path}
	for _, part := range strings.Split(strings.TrimPrefix(path, "."), ".") {
		if part != "" {
			p.parts = append(p.parts, part)
		}
	}
	return p
}

func (p *Path) String() string {
	return p.raw
}

// Extract resolves the path against a record. A wildcard step collects the
// matching values into a slice; elements the rest of the path does not
// reach are skipped.
func (p *Path) Extract(record parser.Record) (interface{}, error) {
	if len(p.parts) == 0 {
		return record, nil
	}
	return extractValue(map[string]interface{}(record), p.parts)
}

func extractValue(data interface{}, parts []string) (interface{}, error) {
	if len(parts) == 0 {
		return data, nil
	}
	part, remaining := parts[0], parts[1:]

	switch v := data.(type) {
	case parser.Record:
		return extractValue(map[string]interface{}(v), parts)
	case map[string]interface{}:
		if part == Wildcard {
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			items := make([]interface{}, 0, len(keys))
			for _, k := range keys {
				items = append(items, v[k])
			}
			return collect(items, remaining), nil
		}
		val, ok := v[part]
		if !ok {
			return nil, fmt.Errorf("key '%s' not found", part)
		}
		return extractValue(val, remaining)
	case []interface{}:
		if part == Wildcard {
			return collect(v, remaining), nil
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid array index '%s'", part)
		}
		if idx < 0 || idx >= len(v) {
			return nil, fmt.Errorf("array index %d out of bounds", idx)
		}
		return extractValue(v[idx], remaining)
	default:
		return nil, fmt.Errorf("cannot access '%s' on type %T", part, data)
	}
}

func collect(items []interface{}, remaining []string) []interface{} {
	results := make([]interface{}, 0, len(items))
	for _, item := range items {
		val, err := extractValue(item, remaining)
		if err == nil {
			results = append(results, val)
		}
	}
	return results
}

// Filter compares the value at a path with a constant.
type Filter struct {
	Field    string
	Operator string
	Value    interface{}
}

// NewFilter creates a new filter
func NewFilter(field, operator string, value interface{}) *Filter {
	return &Filter{
		Field:    field,
		Operator: operator,
		Value:    value,
	}
}

// Match reports whether the record satisfies the filter. A missing field
// never matches.
func (f *Filter) Match(record parser.Record) bool {
	value, err := NewPath(f.Field).Extract(record)
	if err != nil {
		return false
	}
	return f.matchValue(value)
}

func (f *Filter) matchValue(value interface{}) bool {
	// Collections match when any element does
	switch v := value.(type) {
	case map[string]interface{}:
		for _, val := range v {
			if f.matchValue(val) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, val := range v {
			if f.matchValue(val) {
				return true
			}
		}
		return false
	}

	switch strings.ToUpper(f.Operator) {
	case "=", "==":
		return compareEqual(value, f.Value)
	case "!=":
		return !compareEqual(value, f.Value)
	case ">":
		c, ok := compareNumbers(value, f.Value)
		return ok && c > 0
	case ">=":
		c, ok := compareNumbers(value, f.Value)
		return ok && c >= 0
	case "<":
		c, ok := compareNumbers(value, f.Value)
		return ok && c < 0
	case "<=":
		c, ok := compareNumbers(value, f.Value)
		return ok && c <= 0
	case "CONTAINS", "~=":
		return strings.Contains(fmt.Sprintf("%v", value), fmt.Sprintf("%v", f.Value))
	default:
		return false
	}
}

func compareEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// compareNumbers returns -1, 0 or 1 when both sides are numeric.
func compareNumbers(a, b interface{}) (int, bool) {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
