package dataprocessing

import "math"

// Quantile returns the p-quantile of sorted values by linear interpolation
// between the order statistics around rank p*(n-1). sorted must be ascending.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	frac := rank - float64(lower)
	if frac == 0 {
		return sorted[lower]
	}

	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
