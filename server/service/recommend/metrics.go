package recommend

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidInput is returned when a metric is called with empty vectors or
// vectors of different lengths. Callers that pre-filter candidates (the
// Rank path) never see it; it guards direct programmatic use.
var ErrInvalidInput = errors.New("vectors must be non-empty and of equal length")

// Pearson computes the sample Pearson correlation coefficient of two vectors.
//
// When either vector has zero variance the correlation is mathematically
// undefined; it is reported as 0.0 ("no linear relationship detectable")
// rather than NaN. The result is in [-1, 1] up to floating-point tolerance.
func Pearson(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, errors.WithStack(ErrInvalidInput)
	}

	n := float64(len(a))
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

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
		return 0, nil
	}
	return cov / denom, nil
}

// Cosine computes the cosine similarity of two vectors.
//
// Unlike Pearson's zero-variance case, a zero-norm vector makes the
// similarity undefined in a way that cannot be mapped to a neutral value:
// the error tells ranking callers to exclude the candidate.
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, errors.WithStack(ErrInvalidInput)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, errors.New("cosine similarity undefined for zero-norm vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
