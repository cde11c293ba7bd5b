package model

import "time"

// PricePoint is a single daily closing observation.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily closes, strictly increasing by date.
type PriceSeries []PricePoint

// Closes returns the closing prices in order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Start returns the first date in the series.
func (s PriceSeries) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// End returns the last date in the series.
func (s PriceSeries) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// ZScorePoint holds the log return and its z-score for one trading day.
type ZScorePoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
	Z      float64   `json:"z"`
}

// ZScoreSeries is a date-aligned z-score sequence. It has one fewer entry
// than the price series it was derived from (no return for the first date).
type ZScoreSeries []ZScorePoint

// Values returns the z-scores in order.
func (s ZScoreSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Z
	}
	return out
}

// ThresholdRow compares observed and expected tail frequency at one
// standard-deviation multiple.
type ThresholdRow struct {
	Threshold     float64 `json:"threshold"`
	ObservedCount int     `json:"observed_count"`
	ObservedPct   float64 `json:"observed_pct"`
	ExpectedCount float64 `json:"expected_count"`
	ExpectedPct   float64 `json:"expected_pct"`
	DiffCount     float64 `json:"diff_count"`
	DiffPct       float64 `json:"diff_pct"`
}

// DistributionReport is the tail comparison against the standard normal law.
type DistributionReport struct {
	TotalDays int            `json:"total_days"`
	Rows      []ThresholdRow `json:"rows"`
}

// Summary holds basic statistics for one analysis run.
type Summary struct {
	DataPoints   int       `json:"data_points"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	MeanReturn   float64   `json:"mean_return"`
	StdDevReturn float64   `json:"stddev_return"`
}

// DateRange formats the covered period for display.
func (s Summary) DateRange() string {
	return s.Start.Format("2006-01-02") + " to " + s.End.Format("2006-01-02")
}

// AnalysisResult is the complete output of one pipeline run.
type AnalysisResult struct {
	Ticker   string              `json:"ticker"`
	Symbol   string              `json:"symbol"`
	Summary  Summary             `json:"summary"`
	ZScores  ZScoreSeries        `json:"-"`
	Report   *DistributionReport `json:"report"`
	PlotPath string              `json:"plot_path"`
	CSVPath  string              `json:"csv_path"`
}
