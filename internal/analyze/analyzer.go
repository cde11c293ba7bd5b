package analyze

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tailwatch/internal/config"
	"tailwatch/internal/provider"
	"tailwatch/internal/recorder"
	"tailwatch/internal/render"
	"tailwatch/internal/stats"
	"tailwatch/pkg/model"
)

// UnknownTickerError reports a ticker name with no configured symbol.
type UnknownTickerError struct {
	Ticker string
}

func (e *UnknownTickerError) Error() string {
	return fmt.Sprintf("unknown ticker %q", e.Ticker)
}

// Analyzer runs the fetch → transform → render pipeline for one ticker at a
// time. Runs are synchronous; there is no shared mutable state beyond the
// on-disk cache and output files.
type Analyzer struct {
	cfg      *config.Config
	provider provider.Provider
	renderer *render.ChartRenderer
	recorder recorder.Recorder
}

// New creates an analyzer. rec may be nil, in which case runs are not recorded.
func New(cfg *config.Config, p provider.Provider, rec recorder.Recorder) *Analyzer {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Analyzer{
		cfg:      cfg,
		provider: p,
		renderer: render.NewChartRenderer(),
		recorder: rec,
	}
}

// PlotPath returns the plot artifact path for a ticker on a given day.
func (a *Analyzer) PlotPath(ticker string, asOf time.Time) string {
	return filepath.Join(a.cfg.OutputDir, ticker, asOf.Format("2006-01-02")+"_z_scores.png")
}

// CSVPath returns the analysis CSV artifact path for a ticker on a given day.
func (a *Analyzer) CSVPath(ticker string, asOf time.Time) string {
	return filepath.Join(a.cfg.OutputDir, ticker, asOf.Format("2006-01-02")+"_analysis.csv")
}

// Run analyzes one configured ticker as of the given date. Artifacts are
// written once per (ticker, day); if both already exist the computation
// still runs (prices come from the cache) but nothing is re-rendered.
func (a *Analyzer) Run(ctx context.Context, ticker string, asOf time.Time) (*model.AnalysisResult, error) {
	symbol, ok := a.cfg.Symbol(ticker)
	if !ok {
		return nil, &UnknownTickerError{Ticker: ticker}
	}

	prices, err := a.provider.GetDailyHistory(ctx, symbol, a.cfg.Period)
	if err != nil {
		return nil, fmt.Errorf("fetching %s (%s): %w", ticker, symbol, err)
	}

	zscores, err := stats.ZScores(prices)
	if err != nil {
		return nil, fmt.Errorf("computing z-scores for %s: %w", ticker, err)
	}

	report, err := stats.CompareToNormal(zscores, a.cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("comparing %s to normal: %w", ticker, err)
	}

	mean, sd, err := stats.ReturnStats(zscores)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		Ticker: ticker,
		Symbol: symbol,
		Summary: model.Summary{
			DataPoints:   len(zscores),
			Start:        zscores[0].Date,
			End:          zscores[len(zscores)-1].Date,
			MeanReturn:   mean,
			StdDevReturn: sd,
		},
		ZScores:  zscores,
		Report:   report,
		PlotPath: a.PlotPath(ticker, asOf),
		CSVPath:  a.CSVPath(ticker, asOf),
	}

	if a.artifactsExist(result) {
		log.Printf("reusing artifacts for %s (%s)", ticker, asOf.Format("2006-01-02"))
		return result, nil
	}

	if err := a.writeAnalysisCSV(result); err != nil {
		return nil, err
	}
	if err := a.renderer.RenderZScores(zscores, ticker, result.PlotPath); err != nil {
		return nil, err
	}
	log.Printf("plot saved: %s", result.PlotPath)

	if err := a.recorder.RecordRun(&recorder.RunRecord{
		Ticker:       ticker,
		Symbol:       symbol,
		AsOf:         asOf,
		DataPoints:   len(zscores),
		MeanReturn:   mean,
		StdDevReturn: sd,
		PlotPath:     result.PlotPath,
		CSVPath:      result.CSVPath,
	}); err != nil {
		// History is best-effort; a failed insert must not fail the run.
		log.Printf("recording run for %s: %v", ticker, err)
	}

	return result, nil
}

func (a *Analyzer) artifactsExist(result *model.AnalysisResult) bool {
	for _, p := range []string{result.PlotPath, result.CSVPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// writeAnalysisCSV writes the per-day z-score series artifact.
func (a *Analyzer) writeAnalysisCSV(result *model.AnalysisResult) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Delta", "Z-Score"}); err != nil {
		return err
	}
	for _, p := range result.ZScores {
		rec := []string{
			p.Date.Format("2006-01-02"),
			strconv.FormatFloat(p.Return, 'f', -1, 64),
			strconv.FormatFloat(p.Z, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(result.CSVPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(result.CSVPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing analysis csv: %w", err)
	}
	return nil
}
