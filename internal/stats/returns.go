package stats

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"tailwatch/pkg/model"
)

// ZScores converts a daily closing-price series into z-scores of its log
// returns. The return for day i is ln(close[i]) - ln(close[i-1]); the first
// date has no return and is dropped. Normalization uses the arithmetic mean
// and the sample standard deviation (n-1) of the whole return series.
func ZScores(prices model.PriceSeries) (model.ZScoreSeries, error) {
	if len(prices) < 2 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("need at least 2 prices, got %d", len(prices))}
	}

	returns := make([]float64, 0, len(prices)-1)
	series := make(model.ZScoreSeries, 0, len(prices)-1)
	for i, p := range prices {
		if p.Close <= 0 {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("non-positive close %g on %s", p.Close, p.Date.Format("2006-01-02")),
			}
		}
		if i == 0 {
			continue
		}
		r := math.Log(p.Close) - math.Log(prices[i-1].Close)
		returns = append(returns, r)
		series = append(series, model.ZScorePoint{Date: p.Date, Return: r})
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	// A single return has no sample deviation; both cases leave the
	// z-score undefined.
	if sd == 0 || math.IsNaN(sd) {
		return nil, &DegenerateDistributionError{N: len(returns)}
	}

	for i := range series {
		series[i].Z = (series[i].Return - mean) / sd
	}
	return series, nil
}

// ReturnStats returns the mean and sample standard deviation of the log
// returns carried by a z-score series.
func ReturnStats(z model.ZScoreSeries) (mean, sd float64, err error) {
	if len(z) == 0 {
		return 0, 0, &EmptySeriesError{}
	}
	returns := make([]float64, len(z))
	for i, p := range z {
		returns[i] = p.Return
	}
	mean, err = stats.Mean(returns)
	if err != nil {
		return 0, 0, err
	}
	sd, err = stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, 0, err
	}
	return mean, sd, nil
}
