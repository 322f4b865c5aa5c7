package knowledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/pkg/llms"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/search"
	"github.com/cropwise/cropwise/pkg/testutils"
	"github.com/cropwise/cropwise/pkg/vectorstore"
)

func newTestService(embedder models.Embedder) (*Service, *vectorstore.Store, *vectorstore.MemoryStore) {
	objects := vectorstore.NewMemoryStore()
	store := vectorstore.NewStore(objects)
	s := NewService(store, embedder)
	s.now = func() time.Time { return time.Date(2024, time.June, 1, 8, 30, 0, 0, time.UTC) }
	return s, store, objects
}

func TestAddDocument(t *testing.T) {
	ctx := context.Background()
	s, store, objects := newTestService(llms.NewLocalEmbedder(64))

	doc, err := s.AddDocument(ctx, "Rice needs clay soil.", map[string]any{"crop": "Rice"})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Len(t, doc.Embedding, 64)
	assert.Equal(t, "Rice", doc.Metadata["crop"])
	assert.Equal(t, "2024-06-01T08:30:00Z", doc.Metadata["timestamp"])
	assert.Equal(t, 1, store.Len())

	reloaded := vectorstore.NewStore(objects)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, 1, reloaded.Len())
	assert.Equal(t, doc.ID, reloaded.All()[0].ID)
}

func TestAddDocumentIDsAreOrdered(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(llms.NewLocalEmbedder(16))

	first, err := s.AddDocument(ctx, "first", nil)
	require.NoError(t, err)
	second, err := s.AddDocument(ctx, "second", nil)
	require.NoError(t, err)

	assert.Less(t, first.ID, second.ID)
}

func TestAddDocumentErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		s, _, _ := newTestService(llms.NewLocalEmbedder(16))
		_, err := s.AddDocument(ctx, "  ", nil)
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("embedding unavailable", func(t *testing.T) {
		embedder := testutils.NewFakeEmbedder("rice")
		embedder.Err = models.NewEmbeddingUnavailableError("embed", errors.New("503"))
		s, store, _ := newTestService(embedder)

		_, err := s.AddDocument(ctx, "Rice", nil)
		assert.ErrorIs(t, err, models.ErrEmbeddingUnavailable)
		assert.Zero(t, store.Len())
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		s, _, _ := newTestService(llms.NewLocalEmbedder(16))
		_, err := s.AddDocument(ctx, "Rice", nil)
		require.NoError(t, err)

		s.embedder = llms.NewLocalEmbedder(32)
		_, err = s.AddDocument(ctx, "Wheat", nil)
		assert.ErrorIs(t, err, models.ErrDimensionMismatch)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newTestService(llms.NewLocalEmbedder(llms.DefaultLocalDimensions))

	added, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, added)
	assert.Equal(t, 8, store.Len())

	crops := make([]string, 0, 8)
	for _, d := range store.All() {
		crops = append(crops, d.Metadata["crop"].(string))
	}
	assert.Equal(t, []string{
		"Rice", "Wheat", "Cotton", "Sugarcane", "Pulses", "Oilseeds", "Vegetables", "Fruits",
	}, crops)

	cfg := testutils.NewTestConfig()
	searcher := search.NewSearcher(store, s.embedder, cfg)
	threshold := 0.0
	results, err := searcher.Search(ctx, "Cotton black soil Kharif crops", models.SearchOptions{
		Limit:     3,
		Threshold: &threshold,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Cotton", results[0].Document.Metadata["crop"])
}

func TestSeedCorpus(t *testing.T) {
	entries, err := SeedCorpus()
	require.NoError(t, err)
	require.Len(t, entries, 8)

	for _, e := range entries {
		assert.NotEmpty(t, e.Crop)
		assert.NotEmpty(t, e.Season, e.Crop)
		assert.Contains(t, e.Content, e.Crop[:4], e.Crop)
	}
}
