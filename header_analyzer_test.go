package main

import (
	"reflect"
	"testing"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantHeaders []string
		wantIsData  bool
	}{
		{
			name:        "Valid headers",
			input:       []string{"Name", "Age", "Email", "Phone"},
			wantHeaders: []string{"name", "age", "email", "phone"},
		},
		{
			name:        "Numeric data",
			input:       []string{"123", "456", "789", "101"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Date data",
			input:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Headers with special characters",
			input:       []string{"User Name!", "Age#", "Email@", "Phone$"},
			wantHeaders: []string{"user_name", "age", "email", "phone"},
		},
		{
			name:        "Cyrillic headers transliterate",
			input:       []string{"Имя", "Возраст"},
			wantHeaders: []string{"imia", "vozrast"},
		},
		{
			name:        "Duplicate headers",
			input:       []string{"Name", "Name", "Name", "Age"},
			wantHeaders: []string{"name", "name_1", "name_2", "age"},
		},
		{
			name:        "Empty fields",
			input:       []string{"", "", "", ""},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
		{
			name:        "Mostly data",
			input:       []string{"John", "30", "123", "123-456-7890"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeHeaders(tt.input)
			if got == nil {
				t.Fatal("AnalyzeHeaders returned nil")
			}
			if !reflect.DeepEqual(got.Headers, tt.wantHeaders) {
				t.Errorf("Headers = %v, want %v", got.Headers, tt.wantHeaders)
			}
			if got.FirstRowIsData != tt.wantIsData {
				t.Errorf("FirstRowIsData = %v, want %v", got.FirstRowIsData, tt.wantIsData)
			}
			if !reflect.DeepEqual(got.FirstDataRow, tt.input) {
				t.Errorf("FirstDataRow = %v, want %v", got.FirstDataRow, tt.input)
			}
		})
	}
}

func TestAnalyzeHeadersEmptyInput(t *testing.T) {
	if got := AnalyzeHeaders(nil); got != nil {
		t.Errorf("AnalyzeHeaders(nil) = %v, want nil", got)
	}
}

func TestIsLikelyHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Empty string", "", false},
		{"Simple header", "Name", true},
		{"Header with space", "User Name", true},
		{"Number", "123", false},
		{"Date", "2024-01-01", false},
		{"Special characters", "User#Name!", true},
		{"Only special chars", "###", false},
		{"Mixed content", "User123", true},
		{"Cyrillic", "колонка1", true},
		{"Email", "test@email.com", true},
		{"Phone", "+1-234-567-8900", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLikelyHeader(tt.input); got != tt.want {
				t.Errorf("isLikelyHeader(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected []string
	}{
		{"No duplicates", []string{"name", "age", "email"}, []string{"name", "age", "email"}},
		{"With duplicates", []string{"name", "name", "name"}, []string{"name", "name_1", "name_2"}},
		{"Mixed duplicates", []string{"name", "age", "name", "email", "age"}, []string{"name", "age", "name_1", "email", "age_1"}},
		{"Empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateHeaders(tt.headers)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ValidateHeaders() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestReplaceSpecialSymbols(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Total Revenue", "Total_Revenue"},
		{"__price__", "price"},
		{"a  b!!c", "a_b_c"},
		{"Straße", "Strasse"},
	}
	for _, tt := range tests {
		if got := replaceSpecialSymbols(tt.input); got != tt.want {
			t.Errorf("replaceSpecialSymbols(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
