package pipeline

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortConfig is one ordering key; Direction is "asc" or "desc".
type SortConfig struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// Sort orders a copy of rows by the keys, left to right, stable across ties.
// A key compares numerically when both values parse as numbers, otherwise by
// collation on the string forms. No keys means no reordering.
func Sort(rows []Row, keys []SortConfig) []Row {
	out := append([]Row(nil), rows...)
	if len(keys) == 0 {
		return out
	}
	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		return compareRows(col, out[i], out[j], keys) < 0
	})
	return out
}

func compareRows(col *collate.Collator, a, b Row, keys []SortConfig) int {
	for _, k := range keys {
		av, bv := a[k.Column], b[k.Column]
		cmp := 0
		an, aok := NumericValue(av)
		bn, bok := NumericValue(bv)
		if aok && bok {
			switch {
			case an < bn:
				cmp = -1
			case an > bn:
				cmp = 1
			}
		} else {
			cmp = col.CompareString(StringForm(av), StringForm(bv))
		}
		if k.Direction == "desc" {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp
		}
	}
	return 0
}
