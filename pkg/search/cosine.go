package search

import (
	"github.com/viterin/vek/vek32"
)

// CosineSimilarity returns the cosine of the angle between a and b. It is 0
// when the lengths differ or either vector is empty or all zero, and is
// clamped to [-1, 1].
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := float64(vek32.Norm(a))
	normB := float64(vek32.Norm(b))
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := float64(vek32.Dot(a, b)) / (normA * normB)
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	case sim != sim: // NaN
		return 0
	}
	return sim
}
