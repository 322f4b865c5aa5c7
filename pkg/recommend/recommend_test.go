package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/pkg/cache"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/search"
	"github.com/cropwise/cropwise/pkg/testutils"
	"github.com/cropwise/cropwise/pkg/vectorstore"
)

type stubSearcher struct {
	results []models.SearchResult
	err     error
	queries []string
}

func (s *stubSearcher) Search(
	_ context.Context,
	query string,
	_ models.SearchOptions,
) ([]models.SearchResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func newTestRecommender(llm models.LLM, searcher models.Searcher) *Recommender {
	cfg := testutils.NewTestConfig()
	r := NewRecommender(llm, searcher, cache.NewMemoryCache(time.Hour, time.Minute), cfg)
	r.now = func() time.Time { return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestRecommendCachesIdenticalRequests(t *testing.T) {
	gofakeit.Seed(42)
	llm := &testutils.FakeLLM{Response: testutils.ValidRecommendationJSON}
	r := newTestRecommender(llm, &stubSearcher{})
	req := testutils.NewTestRecommendationRequest()

	first, err := r.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := r.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, llm.Calls())
	assert.Equal(t, first, second)
	assert.False(t, first.Degraded)
	assert.Equal(t, "Cotton", first.Recommendations[0].CropName)
}

func TestRecommendCacheKeyIgnoresSnapshots(t *testing.T) {
	llm := &testutils.FakeLLM{Response: testutils.ValidRecommendationJSON}
	r := newTestRecommender(llm, &stubSearcher{})
	req := testutils.NewTestRecommendationRequest()

	_, err := r.Recommend(context.Background(), req)
	require.NoError(t, err)

	req.WeatherData = map[string]any{"rainfall": 120}
	_, err = r.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.Calls())

	req.Language = "Hindi"
	_, err = r.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, llm.Calls())
}

func TestRecommendInvalidJSONIsDegraded(t *testing.T) {
	llm := &testutils.FakeLLM{Response: "I would suggest paddy for your farm."}
	r := newTestRecommender(llm, &stubSearcher{})

	result, err := r.Recommend(context.Background(), testutils.NewTestRecommendationRequest())
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	assert.True(t, result.Degraded)
	assert.Equal(t, "I would suggest paddy for your farm.", result.Recommendations[0].Reasoning)
}

func TestRecommendModelFailure(t *testing.T) {
	llm := &testutils.FakeLLM{Err: errors.New("connection refused")}
	r := newTestRecommender(llm, &stubSearcher{})

	result, err := r.Recommend(context.Background(), testutils.NewTestRecommendationRequest())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrRecommendationGenerationFailed)
	assert.ErrorContains(t, err, "connection refused")
	assert.Zero(t, r.cache.Len(context.Background()))
}

func TestRecommendSearchFailure(t *testing.T) {
	llm := &testutils.FakeLLM{Response: testutils.ValidRecommendationJSON}
	embedErr := models.NewEmbeddingUnavailableError("embed query", errors.New("timeout"))
	r := newTestRecommender(llm, &stubSearcher{err: embedErr})

	_, err := r.Recommend(context.Background(), testutils.NewTestRecommendationRequest())
	assert.ErrorIs(t, err, models.ErrRecommendationGenerationFailed)
	assert.ErrorIs(t, err, models.ErrEmbeddingUnavailable)
	assert.Zero(t, llm.Calls())
}

func TestRecommendRequiresContextAndFarmer(t *testing.T) {
	r := newTestRecommender(nil, &stubSearcher{})

	_, err := r.Recommend(context.Background(), &models.RecommendationRequest{})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestRecommendPrompt(t *testing.T) {
	llm := &testutils.FakeLLM{Response: testutils.ValidRecommendationJSON}
	searcher := &stubSearcher{results: []models.SearchResult{
		{Document: models.Document{Content: "Cotton grows well in black soil."}, Similarity: 0.9},
		{Document: models.Document{Content: "Soybean is a Kharif crop."}, Similarity: 0.8},
	}}
	r := newTestRecommender(llm, searcher)

	req := &models.RecommendationRequest{
		Context: &models.RecommendationContext{Budget: "50000 INR"},
		FarmerData: &models.FarmerProfile{
			Location:    models.Location{State: "Maharashtra", District: "Nagpur"},
			FarmDetails: models.FarmDetails{SoilType: "Black", TotalLandArea: 5, IrrigatedArea: 2.5},
		},
		MarketData: map[string]any{"cotton": 6500},
		Language:   "Marathi",
	}
	_, err := r.Recommend(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, searcher.queries, 1)
	assert.Equal(t, "Black Kharif Maharashtra crops", searcher.queries[0])

	prompt := llm.LastSystemPrompt()
	assert.Contains(t, prompt, "Location: Maharashtra, Nagpur")
	assert.Contains(t, prompt, "Land Area: 5 acres")
	assert.Contains(t, prompt, "Irrigated Area: 2.5 acres")
	assert.Contains(t, prompt, "Budget: 50000 INR")
	assert.Contains(t, prompt, "Season: Kharif")
	assert.Contains(t, prompt, "Weather: Not available")
	assert.Contains(t, prompt, `Market Trends: {"cotton":6500}`)
	assert.Contains(t, prompt, "Cotton grows well in black soil.\n\nSoybean is a Kharif crop.")
	assert.Contains(t, prompt, "Write all text values in Marathi.")
}

func TestRecommendTruncatesKnowledge(t *testing.T) {
	llm := &testutils.FakeLLM{Response: testutils.ValidRecommendationJSON}
	searcher := &stubSearcher{results: []models.SearchResult{
		{Document: models.Document{Content: "abcdefghij"}, Similarity: 0.9},
	}}
	r := newTestRecommender(llm, searcher)
	r.cfg.RAG.MaxContextLength = 4

	_, err := r.Recommend(context.Background(), testutils.NewTestRecommendationRequest())
	require.NoError(t, err)
	assert.Contains(t, llm.LastSystemPrompt(), "CROP KNOWLEDGE BASE:\nabcd\n")
	assert.NotContains(t, llm.LastSystemPrompt(), "abcde")
}

func TestRecommendDemoMode(t *testing.T) {
	ctx := context.Background()
	embedder := testutils.NewFakeEmbedder("black", "cotton", "soybean")
	store := vectorstore.NewStore(vectorstore.NewMemoryStore())
	for crop, content := range map[string]string{
		"Cotton":  "Cotton thrives in black soil.",
		"Soybean": "Soybean suits black soil too.",
	} {
		v, err := embedder.Embed(ctx, content)
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, models.Document{
			ID: crop, Content: content, Embedding: v,
			Metadata: map[string]any{"crop": crop},
		}))
	}

	cfg := testutils.NewTestConfig()
	cfg.RAG.SimilarityThreshold = 0.1
	r := newTestRecommender(nil, search.NewSearcher(store, embedder, cfg))

	req := testutils.NewTestRecommendationRequest()
	req.Context.SoilType = "Black"
	result, err := r.Recommend(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	require.Len(t, result.Recommendations, 2)

	crops := []string{result.Recommendations[0].CropName, result.Recommendations[1].CropName}
	assert.ElementsMatch(t, []string{"Cotton", "Soybean"}, crops)
}

func TestRecommendDemoModeEmptyKnowledgeBase(t *testing.T) {
	r := newTestRecommender(nil, &stubSearcher{})

	result, err := r.Recommend(context.Background(), testutils.NewTestRecommendationRequest())
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, FallbackCropName, result.Recommendations[0].CropName)
}

func TestFingerprintIsDeterministic(t *testing.T) {
	req := testutils.NewTestRecommendationRequest()
	a, err := Fingerprint(req)
	require.NoError(t, err)

	clone := *req
	ctxCopy := *req.Context
	clone.Context = &ctxCopy
	b, err := Fingerprint(&clone)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	clone.Language = ""
	c, err := Fingerprint(&clone)
	require.NoError(t, err)
	assert.Equal(t, a, c)

	ctxCopy.Season = "different"
	d, err := Fingerprint(&clone)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}
