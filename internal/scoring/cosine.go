// Package scoring blends semantic similarity and skill coverage into a match score.
package scoring

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// epsilon keeps the cosine denominator away from zero so zero vectors score 0
const epsilon = 1e-9

// Cosine returns dot(a, b) / max(|a|*|b|, epsilon).
// Empty vectors yield 0. Vectors of different length yield a *ShapeMismatchError.
func Cosine(a, b types.Vector) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0.0, nil
	}
	if len(a) != len(b) {
		return 0.0, &ShapeMismatchError{Left: len(a), Right: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom < epsilon {
		denom = epsilon
	}
	return dot / denom, nil
}
