package pipeline

import (
	"strings"

	"github.com/pivolan/go_utils"
)

// PivotKeySeparator joins row-label values into a composite group key.
// Values literally containing the separator can collide; this is a documented
// limitation of the composite key.
const PivotKeySeparator = "::"

// PivotConfig groups rows by a composite key over Rows and appends one
// reduced field per Values entry. Columns is accepted in configuration but
// never consulted by the reduction; a true two-axis pivot is an extension
// point, not current behavior.
type PivotConfig struct {
	Rows        []string `json:"rows"`
	Columns     []string `json:"columns"`
	Values      []string `json:"values"`
	Aggregation string   `json:"aggregation"`
}

var pivotAggregations = []string{"sum", "count", "avg", "min", "max"}

// KnownPivotAggregation reports whether the engine can reduce with agg.
func KnownPivotAggregation(agg string) bool {
	return go_utils.InArray(agg, pivotAggregations)
}

// Active reports whether the pivot participates in the pipeline; both a row
// axis and a value list are required, otherwise the stage is a passthrough.
func (c *PivotConfig) Active() bool {
	return c != nil && len(c.Rows) > 0 && len(c.Values) > 0
}

// ValueField names the output field for one value column.
func (c *PivotConfig) ValueField(value string) string {
	return value + "_" + c.Aggregation
}

// Pivot emits one row per distinct composite key, in first-appearance order.
// Row-label columns are populated from the split key; each value column gets
// a <value>_<aggregation> field reduced over the group's parsed numeric
// values. Unlike Aggregate, count here counts parsed numeric values, not
// rows in the group.
func Pivot(rows []Row, config *PivotConfig) []Row {
	if !config.Active() {
		return rows
	}

	order := []string{}
	groups := map[string][]Row{}
	for _, row := range rows {
		parts := make([]string, len(config.Rows))
		for i, c := range config.Rows {
			parts[i] = StringForm(row[c])
		}
		key := strings.Join(parts, PivotKeySeparator)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	out := make([]Row, 0, len(order))
	for _, key := range order {
		group := groups[key]
		result := Row{}
		parts := strings.Split(key, PivotKeySeparator)
		for i, c := range config.Rows {
			if i < len(parts) {
				result[c] = parts[i]
			}
		}
		for _, value := range config.Values {
			values := make([]float64, 0, len(group))
			for _, row := range group {
				if n, ok := NumericValue(row[value]); ok {
					values = append(values, n)
				}
			}
			result[config.ValueField(value)] = reducePivot(values, config.Aggregation)
		}
		out = append(out, result)
	}
	return out
}

func reducePivot(values []float64, aggregation string) float64 {
	switch aggregation {
	case "count":
		return float64(len(values))
	case "avg":
		if len(values) == 0 {
			return 0
		}
		return sum(values) / float64(len(values))
	default:
		// sum, min, max share the aggregation engine's reductions.
		return reduceGroup(values, aggregation, len(values))
	}
}
