package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal is the two-sided critical value for a confidence level given in
// percent, e.g. 95 gives about 1.96.
func ZVal(confidenceInterval float64) float64 {
	return distuv.UnitNormal.Quantile(0.5 + confidenceInterval/200)
}

// Significant reports whether a score rate p over n games differs from an
// even match at the given confidence.
func Significant(p float64, n int, confidenceInterval float64) bool {
	if n == 0 {
		return false
	}
	z := (p - 0.5) / math.Sqrt(0.25/float64(n))
	return math.Abs(z) > ZVal(confidenceInterval)
}
