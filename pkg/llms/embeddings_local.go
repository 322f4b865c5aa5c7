package llms

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/cropwise/cropwise/pkg/models"
)

const DefaultLocalDimensions = 512

var _ models.Embedder = &LocalEmbedder{}

// LocalEmbedder builds normalized term-frequency vectors without a model.
// Terms are hashed into a fixed number of buckets so that every vector has the
// same length and can be compared with any other.
type LocalEmbedder struct {
	dims int
}

func NewLocalEmbedder(dims int) *LocalEmbedder {
	if dims <= 0 {
		dims = DefaultLocalDimensions
	}
	return &LocalEmbedder{dims: dims}
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

func (e *LocalEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *LocalEmbedder) Dimensions() int {
	return e.dims
}

func (e *LocalEmbedder) Name() string {
	return "local"
}

func (e *LocalEmbedder) vector(text string) []float32 {
	v := make([]float32, e.dims)

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return v
	}

	for _, token := range tokens {
		v[bucket(token, e.dims)]++
	}

	total := float32(len(tokens))
	for i := range v {
		v[i] /= total
	}

	return v
}

func bucket(token string, dims int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % uint32(dims))
}
