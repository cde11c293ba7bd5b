package stats

import (
	"fmt"
	"math"

	"tailwatch/pkg/model"
)

// DefaultThresholds are the standard-deviation multiples the tail comparison
// is evaluated at.
var DefaultThresholds = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// CompareToNormal counts how often |z| exceeds each threshold and compares
// the observed frequency with the two-tailed probability 2*(1-Phi(t)) under
// a standard normal law. The comparison is always against mean 0, variance 1,
// matching the z-score's own normalization.
func CompareToNormal(z model.ZScoreSeries, thresholds []float64) (*model.DistributionReport, error) {
	if len(z) == 0 {
		return nil, &EmptySeriesError{}
	}
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}

	prev := 0.0
	for _, t := range thresholds {
		if t <= 0 {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("threshold %g is not positive", t)}
		}
		if t <= prev {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("thresholds must be strictly increasing, got %g after %g", t, prev)}
		}
		prev = t
	}

	n := len(z)
	report := &model.DistributionReport{
		TotalDays: n,
		Rows:      make([]model.ThresholdRow, 0, len(thresholds)),
	}

	for _, t := range thresholds {
		observed := 0
		for _, p := range z {
			if math.Abs(p.Z) > t {
				observed++
			}
		}

		prob := TwoTailedExceedance(t)
		observedPct := float64(observed) / float64(n) * 100
		expectedCount := prob * float64(n)
		expectedPct := prob * 100

		report.Rows = append(report.Rows, model.ThresholdRow{
			Threshold:     t,
			ObservedCount: observed,
			ObservedPct:   observedPct,
			ExpectedCount: expectedCount,
			ExpectedPct:   expectedPct,
			DiffCount:     float64(observed) - expectedCount,
			DiffPct:       observedPct - expectedPct,
		})
	}

	return report, nil
}
