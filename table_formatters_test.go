package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

func formatterSampleRows() ([]pipeline.Row, []string) {
	rows := []pipeline.Row{
		{"city": "Paris", "_count": float64(2), "_value": float64(250)},
		{"city": "London", "_count": float64(1), "_value": float64(90)},
	}
	return rows, []string{"city", "_count", "_value"}
}

func TestGenerateTableMarkdown(t *testing.T) {
	rows, columns := formatterSampleRows()

	got := GenerateTableMarkdown(rows, columns)

	expected := "| city | _count | _value |\n" +
		"| --- | --- | --- |\n" +
		"| Paris | 2 | 250 |\n" +
		"| London | 1 | 90 |\n"
	assert.Equal(t, expected, got)
}

func TestGenerateTableAscii(t *testing.T) {
	rows, columns := formatterSampleRows()

	got := GenerateTableAscii(rows, columns)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "city           "))
	assert.True(t, strings.HasPrefix(lines[1], "Paris          "))
	assert.Contains(t, lines[2], "London")
	assert.Contains(t, lines[2], "90")
}

func TestGenerateTable(t *testing.T) {
	rows, columns := formatterSampleRows()

	got := GenerateTable(rows, columns)

	// go-pretty upper-cases header cells in the default style
	assert.Contains(t, got, "CITY")
	assert.Contains(t, got, "Paris")
	assert.Contains(t, got, "250")
	assert.Contains(t, got, "London")
}

func TestGenerateTableNilCellRendersEmpty(t *testing.T) {
	rows := []pipeline.Row{{"a": "x", "b": nil}}

	got := GenerateTableMarkdown(rows, []string{"a", "b"})

	assert.Contains(t, got, "| x |  |")
}

func TestGenerateProfilesTable(t *testing.T) {
	profiles := []pipeline.ColumnProfile{
		{Column: "amount", Type: pipeline.TypeNumber, MissingCount: 1, UniqueCount: 3, Min: float64(5), Max: float64(90.5)},
	}

	got := GenerateProfilesTable(profiles)

	assert.Contains(t, got, "amount")
	assert.Contains(t, got, "number")
	assert.Contains(t, got, "90.5")
}
