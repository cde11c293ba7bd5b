package recorder

import "time"

// RunRecord holds the metadata of one completed analysis run. The
// distribution report itself is rebuilt on every run and never persisted.
type RunRecord struct {
	Ticker       string
	Symbol       string
	AsOf         time.Time
	DataPoints   int
	MeanReturn   float64
	StdDevReturn float64
	PlotPath     string
	CSVPath      string
}

// Recorder persists analysis run history.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
