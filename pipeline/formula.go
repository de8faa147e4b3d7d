package pipeline

import (
	"fmt"
	"strings"
)

// FormulaConfig appends one computed column. Name must be non-empty and
// unique among the pipeline's formulas; Formula is expression text in the
// grammar documented in expr.go.
type FormulaConfig struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// ValidateFormula performs the construction-time checks: empty names, empty
// expressions and duplicate names are rejected before a formula enters the
// pipeline. Syntax errors are rejected here too so the user sees them when
// adding the formula rather than as a column of nulls.
func ValidateFormula(config FormulaConfig, existing []FormulaConfig) error {
	name := strings.TrimSpace(config.Name)
	if name == "" {
		return fmt.Errorf("formula name is empty")
	}
	if strings.TrimSpace(config.Formula) == "" {
		return fmt.Errorf("formula expression is empty")
	}
	for _, f := range existing {
		if f.Name == name {
			return fmt.Errorf("duplicate formula name %q", name)
		}
	}
	if _, err := ParseFormula(config.Formula); err != nil {
		return fmt.Errorf("invalid formula %q: %v", name, err)
	}
	return nil
}

// ApplyFormula evaluates one formula against every row and returns fresh rows
// with the computed field appended. Evaluation failures are row-local: the
// failing row gets nil, every other row is unaffected, nothing is raised.
func ApplyFormula(rows []Row, config FormulaConfig, columns []string) []Row {
	node, parseErr := ParseFormula(config.Formula)

	declared := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		declared[c] = struct{}{}
	}

	out := make([]Row, len(rows))
	for idx, row := range rows {
		result := row.Clone()
		if parseErr != nil {
			result[config.Name] = nil
		} else {
			env := &evalEnv{rows: rows, row: row, idx: idx, columns: declared}
			value, err := node.eval(env)
			if err != nil {
				result[config.Name] = nil
			} else {
				result[config.Name] = normalizeValue(value)
			}
		}
		out[idx] = result
	}
	return out
}

// normalizeValue keeps computed cells in the row scalar set.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bool, string, float64, nil:
		return t
	default:
		return StringForm(v)
	}
}
