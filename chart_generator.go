// chart_generator.go
package main

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// generateBarChart renders the transformed rows as a self-contained HTML bar
// chart: labelColumn on the x axis, valueColumn's numeric values as the
// series. Cells that do not parse chart as zero.
func generateBarChart(rows []pipeline.Row, labelColumn, valueColumn, title string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to chart")
	}

	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, pipeline.StringForm(row[labelColumn]))
		value, _ := pipeline.NumericValue(row[valueColumn])
		data = append(data, opts.BarData{Value: value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	)
	bar.SetXAxis(labels).AddSeries(valueColumn, data)

	buf := bytes.NewBuffer(nil)
	if err := bar.Render(buf); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buf.Bytes(), nil
}

// generateLineChart is the time-series flavored variant of the bar chart.
func generateLineChart(rows []pipeline.Row, labelColumn, valueColumn, title string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to chart")
	}

	labels := make([]string, 0, len(rows))
	data := make([]opts.LineData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, pipeline.StringForm(row[labelColumn]))
		value, _ := pipeline.NumericValue(row[valueColumn])
		data = append(data, opts.LineData{Value: value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	)
	line.SetXAxis(labels).AddSeries(valueColumn, data)

	buf := bytes.NewBuffer(nil)
	if err := line.Render(buf); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buf.Bytes(), nil
}
