package pipeline

import (
	"reflect"
	"testing"
)

func TestSortNumeric(t *testing.T) {
	rows := []Row{{"a": "10"}, {"a": "2"}, {"a": "33"}}
	got := Sort(rows, []SortConfig{{Column: "a", Direction: "asc"}})
	want := []Row{{"a": "2"}, {"a": "10"}, {"a": "33"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("numeric sort = %v, want %v", got, want)
	}
}

func TestSortDescending(t *testing.T) {
	rows := []Row{{"a": "1"}, {"a": "3"}, {"a": "2"}}
	got := Sort(rows, []SortConfig{{Column: "a", Direction: "desc"}})
	want := []Row{{"a": "3"}, {"a": "2"}, {"a": "1"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("desc sort = %v, want %v", got, want)
	}
}

func TestSortStrings(t *testing.T) {
	rows := []Row{{"a": "pear"}, {"a": "apple"}, {"a": "plum"}}
	got := Sort(rows, []SortConfig{{Column: "a", Direction: "asc"}})
	want := []Row{{"a": "apple"}, {"a": "pear"}, {"a": "plum"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("string sort = %v, want %v", got, want)
	}
}

func TestSortMultiKeyAndStability(t *testing.T) {
	rows := []Row{
		{"g": "b", "v": "1", "id": "r1"},
		{"g": "a", "v": "2", "id": "r2"},
		{"g": "a", "v": "2", "id": "r3"},
		{"g": "a", "v": "1", "id": "r4"},
	}
	got := Sort(rows, []SortConfig{
		{Column: "g", Direction: "asc"},
		{Column: "v", Direction: "asc"},
	})
	ids := []string{}
	for _, row := range got {
		ids = append(ids, StringForm(row["id"]))
	}
	// r2 and r3 tie on both keys; their input order must survive.
	want := []string{"r4", "r2", "r3", "r1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("multi-key order = %v, want %v", ids, want)
	}
}

func TestSortTotalOrder(t *testing.T) {
	rows := []Row{{"a": "5"}, {"a": "1"}, {"a": "x"}, {"a": "3"}, {"a": "2"}}
	keys := []SortConfig{{Column: "a", Direction: "asc"}}
	got := Sort(rows, keys)
	for i := 1; i < len(got); i++ {
		if compareRowsForTest(got[i-1], got[i], keys) > 0 {
			t.Errorf("adjacent pair %d out of order: %v > %v", i, got[i-1], got[i])
		}
	}
}

func compareRowsForTest(a, b Row, keys []SortConfig) int {
	out := Sort([]Row{a, b}, keys)
	if reflect.DeepEqual(out[0], a) {
		return -1
	}
	return 1
}

func TestSortNoKeysCopiesInput(t *testing.T) {
	rows := []Row{{"a": "2"}, {"a": "1"}}
	got := Sort(rows, nil)
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("no-key sort reordered rows: %v", got)
	}
	got[0] = Row{"a": "changed"}
	if StringForm(rows[0]["a"]) != "2" {
		t.Error("Sort returned the caller's slice instead of a working copy")
	}
}
