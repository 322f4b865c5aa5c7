package llms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/pkg/models"
)

func TestLocalEmbedder(t *testing.T) {
	e := NewLocalEmbedder(64)
	ctx := context.Background()

	v1, err := e.Embed(ctx, "Rice grows well in clay soil")
	require.NoError(t, err)
	v2, err := e.Embed(ctx, "wheat")
	require.NoError(t, err)

	assert.Len(t, v1, 64)
	assert.Len(t, v2, 64)

	var sum float32
	for _, x := range v1 {
		sum += x
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	// case-insensitive and deterministic
	v3, _ := e.Embed(ctx, "RICE grows WELL in CLAY soil")
	assert.Equal(t, v1, v3)
}

func TestLocalEmbedderEmptyText(t *testing.T) {
	v, err := NewLocalEmbedder(0).Embed(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, v, DefaultLocalDimensions)
	for _, x := range v {
		assert.Zero(t, x)
	}
}

func TestLocalEmbedderTermFrequency(t *testing.T) {
	e := NewLocalEmbedder(DefaultLocalDimensions)
	v, _ := e.Embed(context.Background(), "paddy paddy paddy wheat")

	assert.InDelta(t, 0.75, v[bucket("paddy", DefaultLocalDimensions)], 1e-6)
}

func TestNewEmbedderFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{Embeddings: config.EmbeddingsConfig{Service: "openai", Dimensions: 128}}
	e, err := NewEmbedder(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "local", e.Name())
	assert.Equal(t, 128, e.Dimensions())

	_, err = NewEmbedder(context.Background(), &config.Config{Embeddings: config.EmbeddingsConfig{Service: "word2vec"}})
	assert.Error(t, err)
}

type failingCreator struct{ err error }

func (f failingCreator) CreateEmbedding(_ context.Context, _ []string) ([][]float32, error) {
	return nil, f.err
}

type shortCreator struct{}

func (shortCreator) CreateEmbedding(_ context.Context, _ []string) ([][]float32, error) {
	return [][]float32{}, nil
}

func TestRemoteEmbedderErrors(t *testing.T) {
	cause := errors.New("quota exceeded")
	_, err := NewRemoteEmbedder("openai", failingCreator{cause}, 0).Embed(context.Background(), "x")
	assert.ErrorIs(t, err, models.ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = NewRemoteEmbedder("ollama", shortCreator{}, 0).Embed(context.Background(), "x")
	assert.ErrorIs(t, err, models.ErrEmbeddingUnavailable)

	out, err := NewRemoteEmbedder("ollama", shortCreator{}, 0).EmbedTexts(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, out)
}
