package stats

import "fmt"

// InvalidInputError reports a precondition violation in the input series,
// such as a non-positive price or too few points to form a return.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// DegenerateDistributionError reports a return series with zero variance,
// for which z-scores are undefined.
type DegenerateDistributionError struct {
	N int
}

func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("degenerate distribution: zero variance across %d returns", e.N)
}

// EmptySeriesError reports an empty z-score series handed to the comparator.
type EmptySeriesError struct{}

func (e *EmptySeriesError) Error() string {
	return "empty series: nothing to summarize"
}
