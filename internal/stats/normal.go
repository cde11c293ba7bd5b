package stats

import "math"

// NormalCDF evaluates the cumulative distribution function of the standard
// normal law at x.
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// TwoTailedExceedance returns P(|Z| > t) for a standard normal Z.
func TwoTailedExceedance(t float64) float64 {
	return 2 * (1 - NormalCDF(t))
}
