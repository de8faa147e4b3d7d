package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HistogramBins splits values into binCount equal-width bins and counts the
// members of each. A degenerate single-value input collapses to one bin.
func HistogramBins(values []float64, binCount int) (starts, ends, counts []float64) {
	if len(values) == 0 || binCount <= 0 {
		return nil, nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []float64{min}, []float64{max}, []float64{float64(len(values))}
	}

	width := (max - min) / float64(binCount)
	starts = make([]float64, binCount)
	ends = make([]float64, binCount)
	counts = make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		starts[i] = min + float64(i)*width
		ends[i] = starts[i] + width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			idx = binCount - 1 // max lands in the last bin
		}
		counts[idx]++
	}
	return starts, ends, counts
}

// DrawHistogram renders bin counts as a PNG bar chart.
func DrawHistogram(starts, ends, counts []float64) ([]byte, error) {
	if len(starts) == 0 || len(starts) != len(ends) || len(starts) != len(counts) {
		return nil, fmt.Errorf("empty or mismatched histogram data")
	}

	var bars []chart.Value
	for i := range starts {
		bars = append(bars, chart.Value{
			Value: counts[i],
			Label: fmt.Sprintf("%.f-%.f", starts[i], ends[i]),
		})
	}

	graph := chart.BarChart{
		Title: "Distribution Histogram",
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorFromHex("efefef"),
			StrokeWidth: 1,
		},
		Height:   1024,
		Width:    2028,
		BarWidth: 30,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Frequency",
		},
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawDensity renders a normalized density curve of the histogram, the area
// under the curve summing to one.
func DrawDensity(xValues []float64, yValues []float64) ([]byte, error) {
	if len(xValues) < 2 || len(xValues) != len(yValues) {
		return nil, fmt.Errorf("need at least two points")
	}

	binWidth := xValues[1] - xValues[0]
	totalArea := 0.0
	for _, y := range yValues {
		totalArea += y * binWidth
	}
	if totalArea == 0 || math.IsNaN(totalArea) {
		return nil, fmt.Errorf("degenerate density input")
	}

	normalizedY := make([]float64, len(yValues))
	for i, y := range yValues {
		normalizedY[i] = y / totalArea
	}

	series := &chart.ContinuousSeries{
		XValues: xValues,
		YValues: normalizedY,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			StrokeWidth: 2,
		},
	}
	fillSeries := &chart.ContinuousSeries{
		XValues: xValues,
		YValues: normalizedY,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			FillColor:   drawing.ColorRed.WithAlpha(100),
			StrokeWidth: 0,
		},
	}

	graph := chart.Chart{
		Title: "Density Distribution",
		Background: chart.Style{
			Padding:     chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 120},
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorFromHex("efefef"),
			StrokeWidth: 1,
		},
		Width:  2048,
		Height: 1024,
		XAxis: chart.XAxis{
			Name:  "Values",
			Style: chart.Style{TextRotationDegrees: 88},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.1f", vf)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Density",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.6f", vf)
				}
				return ""
			},
		},
		Series: []chart.Series{fillSeries, series},
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}
