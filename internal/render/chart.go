package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tailwatch/pkg/model"
)

// ChartRenderer draws z-score time series as PNG images.
type ChartRenderer struct {
	Width  int
	Height int
}

// NewChartRenderer returns a renderer with the default plot dimensions.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{Width: 1400, Height: 700}
}

// referenceLine builds a dashed horizontal line at level y across the series range.
func referenceLine(name string, y float64, start, end time.Time, color drawing.Color) chart.TimeSeries {
	return chart.TimeSeries{
		Name:    name,
		XValues: []time.Time{start, end},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1.0,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// RenderZScores writes a z-score plot for ticker to path, with the mean and
// dashed ±1σ/±2σ/±3σ reference lines.
func (r *ChartRenderer) RenderZScores(series model.ZScoreSeries, ticker string, path string) error {
	if len(series) < 2 {
		return fmt.Errorf("rendering %s: need at least 2 points, got %d", ticker, len(series))
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date
		ys[i] = p.Z
	}
	start, end := xs[0], xs[len(xs)-1]

	main := chart.TimeSeries{
		Name:    "Z-Score",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 1.0,
		},
	}

	mean := chart.TimeSeries{
		Name:    "Mean",
		XValues: []time.Time{start, end},
		YValues: []float64{0, 0},
		Style: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1.0,
		},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Z-Scores of Daily Log Returns - %s", ticker),
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Z-Score (Standard Deviations)",
		},
		Series: []chart.Series{
			main,
			mean,
			referenceLine("+1σ (68%)", 1, start, end, chart.ColorGreen),
			referenceLine("-1σ", -1, start, end, chart.ColorGreen),
			referenceLine("+2σ (95%)", 2, start, end, chart.ColorOrange),
			referenceLine("-2σ", -2, start, end, chart.ColorOrange),
			referenceLine("+3σ (99.7%)", 3, start, end, chart.ColorRed),
			referenceLine("-3σ", -3, start, end, chart.ColorRed),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	return nil
}
