// api_handler.go
package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kennedy-blip/Data-transformation/config"
	"github.com/kennedy-blip/Data-transformation/domain/models"
	"github.com/kennedy-blip/Data-transformation/pipeline"
	"github.com/kennedy-blip/Data-transformation/plot"
)

// handleAPI dispatches /api/{dataset}/{action}. Configuration posts replace
// the stage's config wholesale and return the recomputed view; constructing
// an invalid config returns 400 and leaves the pipeline untouched.
func handleAPI(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		writeError(w, http.StatusNotFound, "expected /api/{dataset}/{action}")
		return
	}
	ds, ok := lookupDataset(parts[1])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown dataset")
		return
	}

	ds.Lock()
	defer ds.Unlock()

	switch parts[2] {
	case "rows":
		writeJSON(w, http.StatusOK, models.ViewResponse{
			Columns: ds.Pipeline.ResultColumns(),
			Rows:    ds.Pipeline.TransformedRows(),
		})
	case "columns":
		writeJSON(w, http.StatusOK, ds.Pipeline.ResultColumns())
	case "profiles":
		writeJSON(w, http.StatusOK, ds.Pipeline.Profiles())
	case "filters":
		var configs []pipeline.FilterConfig
		applyConfig(w, r, &configs, func() error { return ds.Pipeline.SetFilters(configs) }, ds)
	case "sort":
		var keys []pipeline.SortConfig
		applyConfig(w, r, &keys, func() error { return ds.Pipeline.SetSortKeys(keys) }, ds)
	case "aggregation":
		var cfg *pipeline.AggregationConfig
		applyConfig(w, r, &cfg, func() error { return ds.Pipeline.SetAggregation(cfg) }, ds)
	case "pivot":
		var cfg *pipeline.PivotConfig
		applyConfig(w, r, &cfg, func() error { return ds.Pipeline.SetPivot(cfg) }, ds)
	case "formulas":
		var configs []pipeline.FormulaConfig
		applyConfig(w, r, &configs, func() error { return ds.Pipeline.SetFormulas(configs) }, ds)
	case "table":
		writeText(w, GenerateTable(ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns()))
	case "table.md":
		writeText(w, GenerateTableMarkdown(ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns()))
	case "profiles.table":
		writeText(w, GenerateProfilesTable(ds.Pipeline.Profiles()))
	case "stats":
		handleColumnStats(w, r, ds)
	case "chart":
		handleChart(w, r, ds)
	case "histogram":
		handleHistogram(w, r, ds)
	case "export.csv":
		handleExportCSV(w, ds)
	case "export.sql":
		writeText(w, exportSQL(exportTableName(ds), ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns()))
	case "export.py":
		writeText(w, exportPandasScript(ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns()))
	case "export.db":
		handleExportDatabase(w, ds)
	default:
		writeError(w, http.StatusNotFound, "unknown action "+parts[2])
	}
}

// applyConfig decodes a stage configuration from the request body, applies
// it through set, and responds with the recomputed view.
func applyConfig(w http.ResponseWriter, r *http.Request, into interface{}, set func() error, ds *Dataset) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST expected")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, "bad config payload: "+err.Error())
		return
	}
	if err := set(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.ViewResponse{
		Columns: ds.Pipeline.ResultColumns(),
		Rows:    ds.Pipeline.TransformedRows(),
	})
}

func handleChart(w http.ResponseWriter, r *http.Request, ds *Dataset) {
	columns := ds.Pipeline.ResultColumns()
	if len(columns) < 2 {
		writeError(w, http.StatusBadRequest, "need at least two columns to chart")
		return
	}
	label := r.URL.Query().Get("label")
	value := r.URL.Query().Get("value")
	if label == "" {
		label = columns[0]
	}
	if value == "" {
		value = columns[len(columns)-1]
	}

	var html []byte
	var err error
	if r.URL.Query().Get("kind") == "line" {
		html, err = generateLineChart(ds.Pipeline.TransformedRows(), label, value, ds.Name)
	} else {
		html, err = generateBarChart(ds.Pipeline.TransformedRows(), label, value, ds.Name)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func handleColumnStats(w http.ResponseWriter, r *http.Request, ds *Dataset) {
	column := r.URL.Query().Get("column")
	if column == "" {
		writeError(w, http.StatusBadRequest, "column parameter required")
		return
	}
	stats := AnalyzeColumn(ds.Pipeline.TransformedRows(), column)
	if stats == nil {
		writeError(w, http.StatusBadRequest, "no numeric values in column "+column)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		writeText(w, FormatColumnStats(stats))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func handleHistogram(w http.ResponseWriter, r *http.Request, ds *Dataset) {
	column := r.URL.Query().Get("column")
	if column == "" {
		writeError(w, http.StatusBadRequest, "column parameter required")
		return
	}

	values := []float64{}
	for _, row := range ds.Pipeline.TransformedRows() {
		if n, ok := pipeline.NumericValue(row[column]); ok {
			values = append(values, n)
		}
	}
	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "no numeric values in column "+column)
		return
	}

	starts, ends, counts := plot.HistogramBins(values, 20)
	png, err := plot.DrawHistogram(starts, ends, counts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func handleExportCSV(w http.ResponseWriter, ds *Dataset) {
	out, err := exportCSV(ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"transformed.csv\"")
	w.Write([]byte(out))
}

func handleExportDatabase(w http.ResponseWriter, ds *Dataset) {
	dsn := config.GetConfig().DbDsn
	if dsn == "" {
		writeError(w, http.StatusBadRequest, "DB_DSN is not configured")
		return
	}
	db, err := connectDatabase(dsn)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot connect to database: "+err.Error())
		return
	}
	table := exportTableName(ds)
	if err := exportToDatabase(db, table, ds.Pipeline.TransformedRows(), ds.Pipeline.ResultColumns()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.ExportResult{Table: table})
}

func exportTableName(ds *Dataset) string {
	name := replaceSpecialSymbols(strings.TrimSuffix(ds.Name, ".csv"))
	if name == "" {
		name = "dataset"
	}
	return strings.ToLower(name) + "_" + strings.ReplaceAll(ds.ID, "-", "")[:6]
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}
