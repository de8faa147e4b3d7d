// Package pipeline implements the transformation core: type profiling over
// loaded rows and the five composable stages (filter, sort, aggregate, pivot,
// formula) orchestrated by Pipeline.
package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one record of a dataset, a column-name to scalar-value mapping.
// Values are strings, float64, bool or nil; a missing key reads as missing,
// never as an error. Stages treat rows as immutable snapshots and always
// allocate fresh output slices.
type Row map[string]interface{}

// Clone returns a shallow copy of the row. Scalars make a shallow copy
// equivalent to a deep one.
func (r Row) Clone() Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StringForm converts any cell value to its canonical string representation.
// nil converts to an empty string.
func StringForm(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// NumericValue reports the finite numeric interpretation of a cell value.
// Strings are parsed, untyped garbage is rejected, bools are not numbers.
func NumericValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsMissing reports whether a cell counts as missing for profiling:
// nil or empty string.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// IsFalsy reports the isEmpty filter semantics: nil, empty string,
// false and numeric zero are all empty.
func IsFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}

var dateLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
}

// ParseDate tries the supported calendar layouts in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
