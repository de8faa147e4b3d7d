package pipeline

import "strings"

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeEmpty   ColumnType = "empty"
)

// profileSampleSize caps how many non-empty values the classifier inspects.
const profileSampleSize = 100

// ColumnProfile holds the inferred type and summary statistics for one column.
// Min and Max are float64 for number columns and lexicographic string extrema
// otherwise; both are nil for empty columns.
type ColumnProfile struct {
	Column       string      `json:"column"`
	Type         ColumnType  `json:"type"`
	MissingCount int         `json:"missingCount"`
	UniqueCount  int         `json:"uniqueCount"`
	Min          interface{} `json:"min"`
	Max          interface{} `json:"max"`
}

// Profile infers the type and statistics of one column across all rows.
// Classification is fixed-priority over a sample: number, then boolean, then
// date, then string. Unparseable values inside an otherwise numeric column
// are excluded from the extrema, never reported as errors.
func Profile(rows []Row, column string) ColumnProfile {
	p := ColumnProfile{Column: column, Type: TypeEmpty}

	nonEmpty := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		v := row[column]
		if IsMissing(v) {
			p.MissingCount++
			continue
		}
		nonEmpty = append(nonEmpty, v)
	}
	if len(nonEmpty) == 0 {
		return p
	}

	sample := nonEmpty
	if len(sample) > profileSampleSize {
		sample = sample[:profileSampleSize]
	}
	p.Type = classify(sample)

	distinct := map[string]struct{}{}
	for _, v := range nonEmpty {
		distinct[StringForm(v)] = struct{}{}
	}
	p.UniqueCount = len(distinct)

	if p.Type == TypeNumber {
		p.Min, p.Max = numericExtrema(nonEmpty)
	} else {
		p.Min, p.Max = stringExtrema(nonEmpty)
	}
	return p
}

func classify(sample []interface{}) ColumnType {
	numbers := true
	for _, v := range sample {
		if _, ok := NumericValue(v); !ok {
			numbers = false
			break
		}
	}
	if numbers {
		return TypeNumber
	}

	booleans := true
	for _, v := range sample {
		if !isBooleanValue(v) {
			booleans = false
			break
		}
	}
	if booleans {
		return TypeBoolean
	}

	dates := true
	for _, v := range sample {
		if _, ok := ParseDate(StringForm(v)); !ok {
			dates = false
			break
		}
	}
	if dates {
		return TypeDate
	}
	return TypeString
}

func isBooleanValue(v interface{}) bool {
	_, ok := BooleanValue(v)
	return ok
}

// BooleanValue coerces a cell to a boolean, accepting the same tokens the
// classifier does. Cells that map to no token report false.
func BooleanValue(v interface{}) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	switch strings.ToLower(strings.TrimSpace(StringForm(v))) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

func numericExtrema(values []interface{}) (interface{}, interface{}) {
	first := true
	var min, max float64
	for _, v := range values {
		n, ok := NumericValue(v)
		if !ok {
			continue
		}
		if first || n < min {
			min = n
		}
		if first || n > max {
			max = n
		}
		first = false
	}
	if first {
		return nil, nil
	}
	return min, max
}

func stringExtrema(values []interface{}) (interface{}, interface{}) {
	min, max := StringForm(values[0]), StringForm(values[0])
	for _, v := range values[1:] {
		s := StringForm(v)
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}
