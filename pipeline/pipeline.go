package pipeline

import "fmt"

// Pipeline owns the declarative configuration and re-derives the transformed
// row sequence from the original rows whenever anything changes. The stage
// order is structural, not configurable: filter, sort, aggregate, pivot,
// formulas. Sorting acts on filtered data, aggregation and pivot collapse row
// identity, and formulas can reference the columns those stages produce.
//
// A recompute is a pure synchronous function of (rows, configs); it always
// runs to completion and replaces the previous result wholesale. Pipeline is
// not safe for concurrent use; callers serialize access.
type Pipeline struct {
	rows    []Row
	columns []string

	filters     []FilterConfig
	sortKeys    []SortConfig
	aggregation *AggregationConfig
	pivot       *PivotConfig
	formulas    []FormulaConfig

	profiles    []ColumnProfile
	transformed []Row
	resultCols  []string
}

// New builds a pipeline over the loaded rows and ordered column list, and
// profiles every column once. Profiles describe the source data; they are not
// recomputed on configuration edits.
func New(rows []Row, columns []string) *Pipeline {
	p := &Pipeline{rows: rows, columns: columns}
	p.profiles = make([]ColumnProfile, 0, len(columns))
	for _, c := range columns {
		p.profiles = append(p.profiles, Profile(rows, c))
	}
	p.recompute()
	return p
}

// Rows returns the untransformed source rows.
func (p *Pipeline) Rows() []Row { return p.rows }

// Columns returns the source column list.
func (p *Pipeline) Columns() []string { return p.columns }

// Profiles returns the per-column profiles of the source data.
func (p *Pipeline) Profiles() []ColumnProfile { return p.profiles }

// TransformedRows returns the current result of the pipeline.
func (p *Pipeline) TransformedRows() []Row { return p.transformed }

// ResultColumns returns the ordered column list of the transformed rows;
// aggregation and pivot collapse it, formulas extend it.
func (p *Pipeline) ResultColumns() []string { return p.resultCols }

// SetFilters replaces the filter list. Unknown operators and empty column
// names are configuration errors and leave the pipeline unchanged.
func (p *Pipeline) SetFilters(configs []FilterConfig) error {
	for _, c := range configs {
		if c.Column == "" {
			return fmt.Errorf("filter column is empty")
		}
		if !KnownFilterOperator(c.Operator) {
			return fmt.Errorf("unknown filter operator %q", c.Operator)
		}
	}
	p.filters = configs
	p.recompute()
	return nil
}

// SetSortKeys replaces the ordering keys. An empty direction defaults to
// ascending.
func (p *Pipeline) SetSortKeys(keys []SortConfig) error {
	for i, k := range keys {
		if k.Column == "" {
			return fmt.Errorf("sort column is empty")
		}
		switch k.Direction {
		case "asc", "desc":
		case "":
			keys[i].Direction = "asc"
		default:
			return fmt.Errorf("unknown sort direction %q", k.Direction)
		}
	}
	p.sortKeys = keys
	p.recompute()
	return nil
}

// SetAggregation replaces (or, with nil, clears) the group-aggregate stage.
func (p *Pipeline) SetAggregation(config *AggregationConfig) error {
	if config != nil {
		if config.Column == "" {
			return fmt.Errorf("aggregation column is empty")
		}
		if !KnownAggregationOperation(config.Operation) {
			return fmt.Errorf("unknown aggregation operation %q", config.Operation)
		}
	}
	p.aggregation = config
	p.recompute()
	return nil
}

// SetPivot replaces (or, with nil, clears) the pivot stage.
func (p *Pipeline) SetPivot(config *PivotConfig) error {
	if config != nil && !KnownPivotAggregation(config.Aggregation) {
		return fmt.Errorf("unknown pivot aggregation %q", config.Aggregation)
	}
	p.pivot = config
	p.recompute()
	return nil
}

// AddFormula appends one computed column after validation; on error the
// pipeline state is unchanged.
func (p *Pipeline) AddFormula(config FormulaConfig) error {
	if err := ValidateFormula(config, p.formulas); err != nil {
		return err
	}
	p.formulas = append(p.formulas, config)
	p.recompute()
	return nil
}

// SetFormulas replaces the whole formula list, validating each entry against
// the ones before it.
func (p *Pipeline) SetFormulas(configs []FormulaConfig) error {
	for i, c := range configs {
		if err := ValidateFormula(c, configs[:i]); err != nil {
			return err
		}
	}
	p.formulas = configs
	p.recompute()
	return nil
}

// RemoveFormula deletes a formula by name; unknown names are a no-op.
func (p *Pipeline) RemoveFormula(name string) {
	kept := p.formulas[:0]
	for _, f := range p.formulas {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	p.formulas = kept
	p.recompute()
}

// ReplaceRows swaps the source data (a fresh load) and re-derives both the
// profiles and the transformed rows under the existing configuration.
func (p *Pipeline) ReplaceRows(rows []Row, columns []string) {
	p.rows = rows
	p.columns = columns
	p.profiles = p.profiles[:0]
	for _, c := range columns {
		p.profiles = append(p.profiles, Profile(rows, c))
	}
	p.recompute()
}

func (p *Pipeline) recompute() {
	rows := Filter(p.rows, p.filters)
	rows = Sort(rows, p.sortKeys)
	rows = Aggregate(rows, p.aggregation)
	rows = Pivot(rows, p.pivot)

	cols := append([]string(nil), p.columns...)
	if p.aggregation != nil && p.aggregation.Column != "" {
		cols = []string{p.aggregation.Column, "_count", "_value"}
	}
	if p.pivot.Active() {
		cols = append([]string(nil), p.pivot.Rows...)
		for _, v := range p.pivot.Values {
			cols = append(cols, p.pivot.ValueField(v))
		}
	}
	for _, f := range p.formulas {
		rows = ApplyFormula(rows, f, cols)
		cols = append(cols, f.Name)
	}

	p.transformed = rows
	p.resultCols = cols
}
