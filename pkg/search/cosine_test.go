package search

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func randomVector(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = gofakeit.Float32Range(-1, 1)
	}
	return v
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	gofakeit.Seed(42)
	for i := 0; i < 100; i++ {
		a, b := randomVector(37), randomVector(37)
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	gofakeit.Seed(7)
	for i := 0; i < 100; i++ {
		a := randomVector(64)
		assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-5)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	gofakeit.Seed(3)
	for i := 0; i < 100; i++ {
		sim := CosineSimilarity(randomVector(8), randomVector(8))
		assert.GreaterOrEqual(t, sim, -1.0)
		assert.LessOrEqual(t, sim, 1.0)
	}

	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 2}, []float32{-1, -2}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
}

func TestCosineSimilarityDegenerate(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"zero vector", []float32{0, 0, 0}, []float32{1, 2, 3}},
		{"both zero", []float32{0, 0}, []float32{0, 0}},
		{"length mismatch", []float32{1, 2, 3}, []float32{1, 2}},
		{"empty", []float32{}, []float32{}},
		{"nil", nil, []float32{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, CosineSimilarity(tt.a, tt.b))
			assert.Equal(t, 0.0, CosineSimilarity(tt.b, tt.a))
		})
	}
}
