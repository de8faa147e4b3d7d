// dataset_import.go
package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// importDataset turns an uploaded file into an ordered row sequence plus an
// ordered column list. Cell values stay raw strings; typing is the
// profiler's job. Irregular records yield rows with fewer fields, never an
// error.
func importDataset(filePath string) ([]pipeline.Row, []string, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return importJSONDataset(filePath)
	}
	return importCSVDataset(filePath)
}

func importCSVDataset(filePath string) ([]pipeline.Row, []string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	separator, err := detectSeparator(f)
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}

	r := csv.NewReader(f)
	r.Comma = separator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read first line: %v", err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, nil, fmt.Errorf("empty first line")
	}

	rows := []pipeline.Row{}
	if analysis.FirstRowIsData {
		rows = append(rows, rowFromRecord(analysis.Headers, analysis.FirstDataRow))
	}
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		rows = append(rows, rowFromRecord(analysis.Headers, record))
	}
	return rows, analysis.Headers, nil
}

// detectSeparator picks the most frequent candidate delimiter on the first
// line; comma wins ties.
func detectSeparator(f *os.File) (rune, error) {
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	separator := ','
	best := strings.Count(line, ",")
	for _, candidate := range []rune{';', '\t'} {
		if n := strings.Count(line, string(candidate)); n > best {
			best = n
			separator = candidate
		}
	}
	return separator, nil
}

// rowFromRecord maps record fields onto the headers; a short record simply
// leaves the trailing columns missing, extra fields are dropped.
func rowFromRecord(headers []string, record []string) pipeline.Row {
	row := make(pipeline.Row, len(headers))
	for i, header := range headers {
		if i >= len(record) {
			break
		}
		row[header] = record[i]
	}
	return row
}

// importJSONDataset reads an array-of-objects document. Columns are ordered
// by first appearance, with each record's keys visited alphabetically since
// object order does not survive decoding.
func importJSONDataset(filePath string) ([]pipeline.Row, []string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var records []map[string]interface{}
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("cannot decode json records: %v", err)
	}

	columns := []string{}
	seen := map[string]bool{}
	rows := make([]pipeline.Row, 0, len(records))
	for _, record := range records {
		keys := make([]string, 0, len(record))
		for k := range record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		row := make(pipeline.Row, len(record))
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
			row[k] = scalarValue(record[k])
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// scalarValue keeps decoded values inside the row scalar set; nested
// structures collapse to their JSON text.
func scalarValue(v interface{}) interface{} {
	switch v.(type) {
	case nil, string, float64, bool:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
