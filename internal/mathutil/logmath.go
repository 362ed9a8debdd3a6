package mathutil

import "math"

// Perplexity returns 10^(-logProb/n) for a total base-10 log probability
// over n scored words. It returns +Inf for n <= 0.
func Perplexity(logProb float64, n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return math.Pow(10, -logProb/float64(n))
}

// Log10ToLn converts a base-10 log probability to natural log.
func Log10ToLn(lp float64) float64 {
	return lp * math.Ln10
}
