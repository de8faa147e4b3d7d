package pipeline

import (
	"strings"

	"github.com/pivolan/go_utils"
)

// FilterConfig is one declarative predicate. Value2 is meaningful only for
// the between operator; isEmpty/isNotEmpty ignore Value entirely.
type FilterConfig struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Value2   string `json:"value2,omitempty"`
}

var filterOperators = []string{
	"equals", "contains", "startsWith", "endsWith",
	"gt", "lt", "gte", "lte", "between",
	"isEmpty", "isNotEmpty",
}

// KnownFilterOperator reports whether the operator is one the engine
// evaluates. The engine itself stays fail-open for unknown operators;
// construction-time validation uses this to reject them up front.
func KnownFilterOperator(op string) bool {
	return go_utils.InArray(op, filterOperators)
}

// Filter keeps the rows satisfying every config, preserving relative order.
// Configs compose by sequential narrowing, a logical AND.
func Filter(rows []Row, configs []FilterConfig) []Row {
	out := rows
	for _, c := range configs {
		kept := make([]Row, 0, len(out))
		for _, row := range out {
			if matchFilter(row, c) {
				kept = append(kept, row)
			}
		}
		out = kept
	}
	if len(configs) == 0 {
		out = append([]Row(nil), rows...)
	}
	return out
}

func matchFilter(row Row, c FilterConfig) bool {
	v := row[c.Column]
	switch c.Operator {
	case "equals":
		return strings.EqualFold(StringForm(v), c.Value)
	case "contains":
		return strings.Contains(strings.ToLower(StringForm(v)), strings.ToLower(c.Value))
	case "startsWith":
		return strings.HasPrefix(strings.ToLower(StringForm(v)), strings.ToLower(c.Value))
	case "endsWith":
		return strings.HasSuffix(strings.ToLower(StringForm(v)), strings.ToLower(c.Value))
	case "gt", "lt", "gte", "lte":
		n, ok := NumericValue(v)
		bound, ok2 := NumericValue(c.Value)
		if !ok || !ok2 {
			return false
		}
		switch c.Operator {
		case "gt":
			return n > bound
		case "lt":
			return n < bound
		case "gte":
			return n >= bound
		default:
			return n <= bound
		}
	case "between":
		n, ok := NumericValue(v)
		lo, ok2 := NumericValue(c.Value)
		hi, ok3 := NumericValue(c.Value2)
		return ok && ok2 && ok3 && n >= lo && n <= hi
	case "isEmpty":
		return IsFalsy(v)
	case "isNotEmpty":
		return !IsFalsy(v)
	}
	// Unknown operators pass every row (fail-open); construction-time
	// validation is expected to keep them out of a live pipeline.
	return true
}
