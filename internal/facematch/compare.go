package facematch

import "math"

// Compare computes a match confidence (0-100) between two descriptors using
// the Pearson correlation of their intensity sequences.
//
// This is an intentionally crude similarity proxy, not a biometric distance
// metric: it is brittle to pose, lighting and scale variation. Nil
// descriptors, mismatched lengths, zero-variance input and NaN correlations
// all score 0.
func Compare(a, b Descriptor) float64 {
	if a == nil || b == nil {
		return 0
	}
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	r := pearson(a, b)
	if math.IsNaN(r) {
		return 0
	}

	return math.Max(0, r*100)
}

// pearson computes the Pearson correlation coefficient of two equal-length
// sequences. Returns NaN when either sequence has zero variance.
func pearson(a, b []float64) float64 {
	n := float64(len(a))

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / n
	meanB := sumB / n

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	denom := math.Sqrt(varA * varB)
	if denom == 0 {
		return math.NaN()
	}
	return cov / denom
}
