// export.go
package main

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

const insertBatchSize = 500

// exportCSV serializes the transformed rows as delimited text, header first.
func exportCSV(rows []pipeline.Row, columns []string) (string, error) {
	buf := &strings.Builder{}
	w := csv.NewWriter(buf)

	if err := w.Write(columns); err != nil {
		return "", err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = pipeline.StringForm(row[c])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// exportSQL generates CREATE TABLE plus batched INSERT statements for the
// transformed rows. Column types come from profiling the transformed rows,
// so formula and pivot columns get sensible types too.
func exportSQL(tableName string, rows []pipeline.Row, columns []string) string {
	buf := &strings.Builder{}

	fields := make([]string, len(columns))
	types := make([]pipeline.ColumnType, len(columns))
	for i, c := range columns {
		profile := pipeline.Profile(rows, c)
		types[i] = profile.Type
		fields[i] = fmt.Sprintf("  %s %s", quoteIdentifier(c), sqlTypeFor(profile.Type))
	}
	fmt.Fprintf(buf, "CREATE TABLE %s (\n%s\n);\n", quoteIdentifier(tableName), strings.Join(fields, ",\n"))

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdentifier(c)
	}
	columnList := strings.Join(quoted, ", ")

	values := []string{}
	flush := func() {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(buf, "INSERT INTO %s (%s) VALUES\n%s;\n",
			quoteIdentifier(tableName), columnList, strings.Join(values, ",\n"))
		values = values[:0]
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = sqlLiteral(row[c], types[i])
		}
		values = append(values, "  ("+strings.Join(cells, ", ")+")")
		if len(values) >= insertBatchSize {
			flush()
		}
	}
	flush()
	return buf.String()
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "") + "`"
}

func sqlTypeFor(t pipeline.ColumnType) string {
	switch t {
	case pipeline.TypeNumber:
		return "DOUBLE"
	case pipeline.TypeBoolean:
		return "BOOLEAN"
	case pipeline.TypeDate:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func sqlLiteral(v interface{}, t pipeline.ColumnType) string {
	if v == nil {
		return "NULL"
	}
	switch t {
	case pipeline.TypeNumber:
		if n, ok := pipeline.NumericValue(v); ok {
			return pipeline.StringForm(n)
		}
		return "NULL"
	case pipeline.TypeBoolean:
		if b, ok := pipeline.BooleanValue(v); ok {
			if b {
				return "TRUE"
			}
			return "FALSE"
		}
	}
	return quoteSQLString(pipeline.StringForm(v))
}

func quoteSQLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

// exportPandasScript generates a runnable Python snippet that reconstructs
// the transformed frame for further numerical analysis.
func exportPandasScript(rows []pipeline.Row, columns []string) string {
	buf := &strings.Builder{}
	buf.WriteString("import pandas as pd\n\n")
	buf.WriteString("df = pd.DataFrame({\n")
	for _, c := range columns {
		profile := pipeline.Profile(rows, c)
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = pythonLiteral(row[c], profile.Type)
		}
		fmt.Fprintf(buf, "    %s: [%s],\n", pythonString(c), strings.Join(cells, ", "))
	}
	buf.WriteString("})\n\n")
	buf.WriteString("print(df.describe(include='all'))\n")
	return buf.String()
}

func pythonLiteral(v interface{}, t pipeline.ColumnType) string {
	if v == nil {
		return "None"
	}
	switch t {
	case pipeline.TypeNumber:
		if n, ok := pipeline.NumericValue(v); ok {
			return pipeline.StringForm(n)
		}
		return "None"
	case pipeline.TypeBoolean:
		if b, ok := pipeline.BooleanValue(v); ok {
			if b {
				return "True"
			}
			return "False"
		}
	}
	return pythonString(pipeline.StringForm(v))
}

func pythonString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}
