package pipeline

import (
	"sort"

	"github.com/pivolan/go_utils"
)

// AggregationConfig groups rows by its own column's values and reduces each
// group to one summary row. The grouping key and the reduced column are the
// same column; this is a deliberate simplification, not a general
// group-by-X-summarize-Y.
type AggregationConfig struct {
	Column    string `json:"column"`
	Operation string `json:"operation"`
}

var aggregationOperations = []string{"sum", "mean", "median", "count", "min", "max"}

// KnownAggregationOperation reports whether the engine can reduce with op.
func KnownAggregationOperation(op string) bool {
	return go_utils.InArray(op, aggregationOperations)
}

// Aggregate collapses rows into one summary row per distinct value of the
// config column, in first-appearance order. Each output row carries the group
// key, the group size as _count, and the reduction as _value. count counts
// rows in the group even when some values fail to parse; the other operations
// reduce only the values that parse as numbers.
func Aggregate(rows []Row, config *AggregationConfig) []Row {
	if config == nil || config.Column == "" {
		return rows
	}

	order := []string{}
	groups := map[string][]Row{}
	for _, row := range rows {
		key := StringForm(row[config.Column])
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	out := make([]Row, 0, len(order))
	for _, key := range order {
		group := groups[key]
		values := make([]float64, 0, len(group))
		for _, row := range group {
			if n, ok := NumericValue(row[config.Column]); ok {
				values = append(values, n)
			}
		}
		out = append(out, Row{
			config.Column: key,
			"_count":      float64(len(group)),
			"_value":      reduceGroup(values, config.Operation, len(group)),
		})
	}
	return out
}

func reduceGroup(values []float64, operation string, groupSize int) float64 {
	switch operation {
	case "count":
		return float64(groupSize)
	case "sum":
		return sum(values)
	case "mean":
		if len(values) == 0 {
			return 0
		}
		return sum(values) / float64(len(values))
	case "median":
		if len(values) == 0 {
			return 0
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		// Lower median: the element at n/2 of the ascending sort, not the
		// average of the middle two for even n.
		return sorted[len(sorted)/2]
	case "min":
		if len(values) == 0 {
			return 0
		}
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case "max":
		if len(values) == 0 {
			return 0
		}
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	}
	return 0
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
