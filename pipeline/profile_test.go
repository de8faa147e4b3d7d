package pipeline

import (
	"strconv"
	"testing"
)

func columnRows(column string, values ...interface{}) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{column: v}
	}
	return rows
}

func TestProfileTypeInference(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   ColumnType
	}{
		{"Integers", []interface{}{"1", "2", "3"}, TypeNumber},
		{"Floats", []interface{}{"1.5", "-2", "0.001"}, TypeNumber},
		{"Zero one resolves to number before boolean", []interface{}{"0", "1", "0"}, TypeNumber},
		{"Boolean tokens", []interface{}{"yes", "No", "TRUE", "false"}, TypeBoolean},
		{"Native booleans", []interface{}{true, false}, TypeBoolean},
		{"Dates", []interface{}{"2024-01-01", "2024-01-02"}, TypeDate},
		{"Datetimes", []interface{}{"2022-10-26 06:03:18", "2022-10-27 10:00:00"}, TypeDate},
		{"Strings", []interface{}{"alpha", "beta"}, TypeString},
		{"Mixed numbers and text", []interface{}{"1", "x"}, TypeString},
		{"All empty", []interface{}{"", nil, ""}, TypeEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profile(columnRows("c", tt.values...), "c")
			if got.Type != tt.want {
				t.Errorf("Profile type = %v, want %v", got.Type, tt.want)
			}
		})
	}
}

func TestProfileCounts(t *testing.T) {
	rows := columnRows("c", "a", "", nil, "b", "a")
	got := Profile(rows, "c")

	if got.MissingCount != 2 {
		t.Errorf("MissingCount = %d, want 2", got.MissingCount)
	}
	if got.UniqueCount != 2 {
		t.Errorf("UniqueCount = %d, want 2", got.UniqueCount)
	}
	// missingCount + non-empty count must equal the total row count
	if got.MissingCount+3 != len(rows) {
		t.Errorf("missing/non-empty split does not cover all rows")
	}
}

func TestProfileMissingColumn(t *testing.T) {
	got := Profile(columnRows("other", "x", "y"), "c")
	if got.Type != TypeEmpty || got.MissingCount != 2 {
		t.Errorf("Profile of absent column = %+v, want empty with 2 missing", got)
	}
}

func TestProfileNumericExtrema(t *testing.T) {
	got := Profile(columnRows("c", "5", "1", "9"), "c")
	if got.Min != 1.0 || got.Max != 9.0 {
		t.Errorf("extrema = %v..%v, want 1..9", got.Min, got.Max)
	}
}

func TestProfileStringExtrema(t *testing.T) {
	got := Profile(columnRows("c", "pear", "apple", "plum"), "c")
	if got.Min != "apple" || got.Max != "plum" {
		t.Errorf("extrema = %v..%v, want apple..plum", got.Min, got.Max)
	}
}

func TestProfileSampleCap(t *testing.T) {
	// First 100 non-empty values are numeric; the junk after the sample
	// window must not flip the inferred type.
	values := make([]interface{}, 0, 120)
	for i := 0; i < 100; i++ {
		values = append(values, strconv.Itoa(i))
	}
	for i := 0; i < 20; i++ {
		values = append(values, "junk")
	}
	got := Profile(columnRows("c", values...), "c")
	if got.Type != TypeNumber {
		t.Errorf("type = %v, want number (classifier samples first 100)", got.Type)
	}
}
