package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tailwatch/pkg/model"
)

func testZSeries(n int) model.ZScoreSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	values := []float64{0.5, -1.2, 2.1, -0.3, 0.9, -2.5, 1.7, 0.1}
	series := make(model.ZScoreSeries, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, model.ZScorePoint{
			Date: base.AddDate(0, 0, i),
			Z:    values[i%len(values)],
		})
	}
	return series
}

func TestRenderZScoresWritesPNG(t *testing.T) {
	r := NewChartRenderer()
	path := filepath.Join(t.TempDir(), "SP500", "2024-06-01_z_scores.png")

	if err := r.RenderZScores(testZSeries(50), "SP500", path); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading plot: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("Expected PNG magic bytes")
	}
}

func TestRenderZScoresCreatesParentDir(t *testing.T) {
	r := NewChartRenderer()
	path := filepath.Join(t.TempDir(), "deep", "nested", "plot.png")

	if err := r.RenderZScores(testZSeries(10), "DJIA", path); err != nil {
		t.Fatalf("Render should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected plot file: %v", err)
	}
}

func TestRenderZScoresRejectsShortSeries(t *testing.T) {
	r := NewChartRenderer()
	path := filepath.Join(t.TempDir(), "plot.png")

	for _, n := range []int{0, 1} {
		if err := r.RenderZScores(testZSeries(n), "SP500", path); err == nil {
			t.Errorf("Expected error for %d points", n)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No file should be written for an invalid series")
	}
}
