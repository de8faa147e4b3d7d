// column_stats.go
package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// ColumnStats is the extended numeric summary of one column: central
// tendency, tail quantiles and the outliers past the 1.5*IQR fences.
type ColumnStats struct {
	Column    string              `json:"column"`
	Count     int                 `json:"count"`
	Average   float64             `json:"average"`
	Median    float64             `json:"median"`
	Min       float64             `json:"min"`
	Max       float64             `json:"max"`
	Quantiles map[float64]float64 `json:"quantiles"`
	IQR       float64             `json:"iqr"`
	Outliers  []float64           `json:"outliers"`
}

var statsQuantileLevels = []float64{0.01, 0.025, 0.1, 0.25, 0.75, 0.9, 0.975, 0.99}

// AnalyzeColumn computes a ColumnStats over the parseable numeric cells of
// one column. Unparseable and missing cells are skipped; a column without a
// single numeric cell yields nil.
func AnalyzeColumn(rows []pipeline.Row, column string) *ColumnStats {
	numbers := make([]float64, 0, len(rows))
	for _, row := range rows {
		if n, ok := pipeline.NumericValue(row[column]); ok {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, n := range numbers {
		sum += n
	}

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[float64]float64, len(statsQuantileLevels))
	for _, p := range statsQuantileLevels {
		quantiles[p] = roundToTwo(quantile(sorted, p))
	}
	iqr := quantiles[0.75] - quantiles[0.25]

	return &ColumnStats{
		Column:    column,
		Count:     len(numbers),
		Average:   roundToTwo(sum / float64(len(numbers))),
		Median:    roundToTwo(median),
		Min:       roundToTwo(sorted[0]),
		Max:       roundToTwo(sorted[len(sorted)-1]),
		Quantiles: quantiles,
		IQR:       roundToTwo(iqr),
		Outliers:  outliers(numbers, quantiles[0.25], quantiles[0.75], iqr),
	}
}

// quantile interpolates linearly between the two nearest order statistics.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}
	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

// outliers collects the values outside the Tukey fences.
func outliers(numbers []float64, q1, q3, iqr float64) []float64 {
	result := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr
	for _, n := range numbers {
		if n < lowerBound || n > upperBound {
			result = append(result, n)
		}
	}
	return result
}

// FormatColumnStats renders a ColumnStats as readable text.
func FormatColumnStats(stats *ColumnStats) string {
	if stats == nil {
		return "no numeric values in column"
	}

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "Column: %s\n\n", stats.Column)
	fmt.Fprintf(buf, "Count: %d\n", stats.Count)
	fmt.Fprintf(buf, "Average: %.2f\n", stats.Average)
	fmt.Fprintf(buf, "Median: %.2f\n", stats.Median)
	fmt.Fprintf(buf, "Min: %.2f\n", stats.Min)
	fmt.Fprintf(buf, "Max: %.2f\n\n", stats.Max)
	fmt.Fprintf(buf, "Quantiles:\n")
	for _, p := range statsQuantileLevels {
		fmt.Fprintf(buf, "  %g%%: %.2f\n", p*100, stats.Quantiles[p])
	}
	fmt.Fprintf(buf, "\nIQR: %.2f\n", stats.IQR)
	if len(stats.Outliers) > 0 {
		fmt.Fprintf(buf, "Outliers: %.2f\n", stats.Outliers)
	}
	return buf.String()
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
