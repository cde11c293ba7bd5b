package analyze

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tailwatch/internal/config"
	"tailwatch/pkg/model"
)

// stubProvider returns a fixed series and counts calls.
type stubProvider struct {
	series model.PriceSeries
	calls  int
}

func (s *stubProvider) Name() string      { return "stub" }
func (s *stubProvider) IsAvailable() bool { return true }
func (s *stubProvider) RateLimit() int    { return 60 }

func (s *stubProvider) GetDailyHistory(ctx context.Context, symbol string, period string) (model.PriceSeries, error) {
	s.calls++
	return s.series, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	return cfg
}

func testPrices(n int) model.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 105, 100, 95, 100, 103, 99, 102, 104, 98}
	series := make(model.PriceSeries, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, model.PricePoint{
			Date:  base.AddDate(0, 0, i),
			Close: closes[i%len(closes)],
		})
	}
	return series
}

func TestRunProducesResultAndArtifacts(t *testing.T) {
	cfg := testConfig(t)
	analyzer := New(cfg, &stubProvider{series: testPrices(10)}, nil)

	asOf := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	result, err := analyzer.Run(context.Background(), "SP500", asOf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Ticker != "SP500" || result.Symbol != "^GSPC" {
		t.Errorf("Unexpected identity: %s / %s", result.Ticker, result.Symbol)
	}
	if result.Summary.DataPoints != 9 {
		t.Errorf("Expected 9 z-scores from 10 prices, got %d", result.Summary.DataPoints)
	}
	if len(result.Report.Rows) != 10 {
		t.Errorf("Expected 10 threshold rows, got %d", len(result.Report.Rows))
	}

	wantPlot := filepath.Join(cfg.OutputDir, "SP500", "2024-06-01_z_scores.png")
	if result.PlotPath != wantPlot {
		t.Errorf("Expected plot path %s, got %s", wantPlot, result.PlotPath)
	}
	if _, err := os.Stat(result.PlotPath); err != nil {
		t.Errorf("Expected plot artifact on disk: %v", err)
	}
	if _, err := os.Stat(result.CSVPath); err != nil {
		t.Errorf("Expected csv artifact on disk: %v", err)
	}
}

func TestRunAnalysisCSVLayout(t *testing.T) {
	cfg := testConfig(t)
	analyzer := New(cfg, &stubProvider{series: testPrices(5)}, nil)

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	result, err := analyzer.Run(context.Background(), "DJIA", asOf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f, err := os.Open(result.CSVPath)
	if err != nil {
		t.Fatalf("Opening csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Parsing csv: %v", err)
	}
	if len(records) != 5 { // header + 4 z-scores
		t.Fatalf("Expected 5 records, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][1] != "Delta" || records[0][2] != "Z-Score" {
		t.Errorf("Unexpected header %v", records[0])
	}
	// First row is the second trading day: no return on the first date
	if records[1][0] != "2024-01-03" {
		t.Errorf("Expected first row on 2024-01-03, got %s", records[1][0])
	}
}

func TestRunReusesSameDayArtifacts(t *testing.T) {
	cfg := testConfig(t)
	analyzer := New(cfg, &stubProvider{series: testPrices(10)}, nil)

	asOf := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	first, err := analyzer.Run(context.Background(), "SP500", asOf)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	stat, err := os.Stat(first.PlotPath)
	if err != nil {
		t.Fatalf("Stat plot: %v", err)
	}
	firstMod := stat.ModTime()

	// Second run on the same calendar day must not re-render
	later := asOf.Add(4 * time.Hour)
	second, err := analyzer.Run(context.Background(), "SP500", later)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second.PlotPath != first.PlotPath {
		t.Errorf("Expected same plot path, got %s vs %s", first.PlotPath, second.PlotPath)
	}

	stat, err = os.Stat(second.PlotPath)
	if err != nil {
		t.Fatalf("Stat plot: %v", err)
	}
	if !stat.ModTime().Equal(firstMod) {
		t.Error("Plot should not be re-rendered on the same day")
	}

	// A new calendar day produces a new artifact
	nextDay := asOf.AddDate(0, 0, 1)
	third, err := analyzer.Run(context.Background(), "SP500", nextDay)
	if err != nil {
		t.Fatalf("Third run failed: %v", err)
	}
	if third.PlotPath == first.PlotPath {
		t.Error("Expected a fresh plot path on a new day")
	}
}

func TestRunUnknownTicker(t *testing.T) {
	cfg := testConfig(t)
	analyzer := New(cfg, &stubProvider{series: testPrices(10)}, nil)

	_, err := analyzer.Run(context.Background(), "DOGE", time.Now())
	var unknown *UnknownTickerError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownTickerError, got %v", err)
	}
	if unknown.Ticker != "DOGE" {
		t.Errorf("Expected ticker DOGE in error, got %s", unknown.Ticker)
	}
}

func TestRunPropagatesStatErrors(t *testing.T) {
	cfg := testConfig(t)

	constant := make(model.PriceSeries, 5)
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range constant {
		constant[i] = model.PricePoint{Date: base.AddDate(0, 0, i), Close: 100}
	}
	analyzer := New(cfg, &stubProvider{series: constant}, nil)

	if _, err := analyzer.Run(context.Background(), "SP500", time.Now()); err == nil {
		t.Fatal("Expected error for a constant price series")
	}
}
