// table_formatters.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// GenerateTable renders the transformed rows as a bordered text table in the
// given column order.
func GenerateTable(rows []pipeline.Row, columns []string) string {
	t := table.NewWriter()

	header := table.Row{}
	for _, c := range columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for _, row := range rows {
		cells := table.Row{}
		for _, c := range columns {
			cells = append(cells, formatCell(row[c]))
		}
		t.AppendRow(cells)
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTableMarkdown renders the transformed rows as a markdown table.
func GenerateTableMarkdown(rows []pipeline.Row, columns []string) string {
	buf := &strings.Builder{}
	buf.WriteString("|")
	for _, c := range columns {
		buf.WriteString(" " + c + " |")
	}
	buf.WriteString("\n|")
	for range columns {
		buf.WriteString(" --- |")
	}
	buf.WriteString("\n")
	for _, row := range rows {
		buf.WriteString("|")
		for _, c := range columns {
			buf.WriteString(" " + formatCell(row[c]) + " |")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// GenerateTableAscii renders a plain fixed-width table, fifteen characters
// per column.
func GenerateTableAscii(rows []pipeline.Row, columns []string) string {
	buf := &strings.Builder{}
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(fmt.Sprintf("%-15s", c))
	}
	buf.WriteString("\n")
	for _, row := range rows {
		for i, c := range columns {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(fmt.Sprintf("%-15s", formatCell(row[c])))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// GenerateProfilesTable renders the per-column profiles.
func GenerateProfilesTable(profiles []pipeline.ColumnProfile) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"column", "type", "missing", "unique", "min", "max"})
	for _, p := range profiles {
		t.AppendRow(table.Row{
			p.Column, string(p.Type), p.MissingCount, p.UniqueCount,
			formatCell(p.Min), formatCell(p.Max),
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return pipeline.StringForm(v)
	}
}
