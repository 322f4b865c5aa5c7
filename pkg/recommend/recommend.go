// Package recommend generates crop recommendations grounded in the
// knowledge base.
package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/llms"
	"github.com/cropwise/cropwise/pkg/models"
)

const (
	DefaultMaxContextLength = 4000
	DefaultCacheTTL         = time.Hour
)

var log = internal.GetLogger()

var tracer = otel.Tracer("github.com/cropwise/cropwise/pkg/recommend")

var _ models.Recommender = &Recommender{}

// Recommender answers recommendation requests. With a nil LLM it runs in
// demo mode and builds degraded results from the knowledge base alone.
type Recommender struct {
	llm      models.LLM
	searcher models.Searcher
	cache    models.RecommendationCache
	cfg      *config.Config
	now      func() time.Time
}

func NewRecommender(
	llm models.LLM,
	searcher models.Searcher,
	cache models.RecommendationCache,
	cfg *config.Config,
) *Recommender {
	return &Recommender{
		llm:      llm,
		searcher: searcher,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (r *Recommender) Recommend(
	ctx context.Context,
	req *models.RecommendationRequest,
) (*models.RecommendationResult, error) {
	if req == nil || req.Context == nil || req.FarmerData == nil {
		return nil, models.NewBadRequestError("context and farmer data are required")
	}

	key, err := Fingerprint(req)
	if err != nil {
		return nil, models.NewBadRequestError(err.Error())
	}

	cached, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warnf("recommendation cache lookup failed: %s", err)
	case ok:
		log.Debugf("recommendation cache hit for %s", key)
		return cached, nil
	}

	season := req.Context.Season
	if season == "" {
		season = CurrentSeason(r.now())
	}

	docs, err := r.searcher.Search(ctx, RetrievalQuery(req, season), models.SearchOptions{})
	if err != nil {
		return nil, models.NewRecommendationGenerationFailedError("retrieve knowledge", err)
	}

	var outcome models.Outcome
	if r.llm == nil {
		outcome = demoOutcome(docs)
	} else {
		outcome, err = r.generate(ctx, req, season, docs)
		if err != nil {
			return nil, err
		}
	}

	result := outcome.Result()
	if d, ok := outcome.(models.Degraded); ok {
		log.Warnf("returning degraded recommendation, model reply was %d bytes", len(d.RawText))
	}

	ttl := r.cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := r.cache.Set(ctx, key, result, ttl); err != nil {
		log.Warnf("failed to cache recommendation: %s", err)
	}

	return result, nil
}

func (r *Recommender) generate(
	ctx context.Context,
	req *models.RecommendationRequest,
	season string,
	docs []models.SearchResult,
) (models.Outcome, error) {
	ctx, span := tracer.Start(ctx, "recommend.generate", trace.WithAttributes(
		attribute.String("llm.service", r.llm.Name()),
		attribute.Int("rag.documents", len(docs)),
	))
	defer span.End()

	prompt, err := r.buildPrompt(req, season, docs)
	if err != nil {
		return nil, models.NewRecommendationGenerationFailedError("render prompt", err)
	}

	if n, err := r.llm.GetTokenCount(prompt); err == nil {
		log.Debugf("recommendation prompt is %d tokens", n)
	}

	raw, err := r.llm.Call(ctx, prompt, recommendationUserPrompt, llms.CallOptions(r.cfg)...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		return nil, models.NewRecommendationGenerationFailedError("call "+r.llm.Name(), err)
	}

	outcome := ParseRecommendation(raw)
	_, degraded := outcome.(models.Degraded)
	span.SetAttributes(attribute.Bool("recommendation.degraded", degraded))

	return outcome, nil
}

func (r *Recommender) buildPrompt(
	req *models.RecommendationRequest,
	season string,
	docs []models.SearchResult,
) (string, error) {
	maxContext := r.cfg.RAG.MaxContextLength
	if maxContext <= 0 {
		maxContext = DefaultMaxContextLength
	}

	farm := req.FarmerData.FarmDetails
	data := recommendationPromptData{
		State:         req.FarmerData.Location.State,
		District:      req.FarmerData.Location.District,
		SoilType:      farm.SoilType,
		LandArea:      formatAcres(float64(farm.TotalLandArea)),
		IrrigatedArea: formatAcres(float64(farm.IrrigatedArea)),
		Budget:        string(req.Context.Budget),
		Season:        season,
		Weather:       compactJSON(req.WeatherData),
		Market:        compactJSON(req.MarketData),
		Knowledge:     internal.TruncateRunes(joinContents(docs), maxContext),
		Language:      language(req.Language),
	}

	return internal.ParsePrompt(recommendationSystemPromptTemplate, data)
}

// Fingerprint is the cache key of a request. It covers the context, the
// farmer profile and the language; snapshots of weather and market data are
// not part of it.
func Fingerprint(req *models.RecommendationRequest) (string, error) {
	b, err := json.Marshal(struct {
		Context    *models.RecommendationContext `json:"context"`
		FarmerData *models.FarmerProfile         `json:"farmerData"`
		Language   string                        `json:"language"`
	}{req.Context, req.FarmerData, language(req.Language)})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint request: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// RetrievalQuery is the knowledge-base query for a request,
// "<soil> <season> <region> crops".
func RetrievalQuery(req *models.RecommendationRequest, season string) string {
	soil := req.Context.SoilType
	if soil == "" {
		soil = req.FarmerData.FarmDetails.SoilType
	}
	region := req.Context.Region
	if region == "" {
		region = req.FarmerData.Location.State
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{soil, season, region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, "crops"), " ")
}

// demoOutcome names the crops of the retrieved documents, or the
// placeholder crop when nothing was retrieved.
func demoOutcome(docs []models.SearchResult) models.Outcome {
	const reasoning = "Suggested from the crop knowledge base. No language model is configured."

	var suggestions []models.CropSuggestion
	seen := map[string]bool{}
	for _, d := range docs {
		crop, _ := d.Document.Metadata["crop"].(string)
		if crop == "" || seen[crop] {
			continue
		}
		seen[crop] = true
		s := fallbackSuggestion(crop, reasoning)
		s.Confidence = clamp(d.Similarity, 0, 1)
		suggestions = append(suggestions, s)
	}

	result := FallbackRecommendation(reasoning)
	if len(suggestions) > 0 {
		result.Recommendations = suggestions
	}
	return models.Degraded{Recommendation: result}
}

func joinContents(docs []models.SearchResult) string {
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Document.Content
	}
	return strings.Join(contents, "\n\n")
}

func compactJSON(v map[string]any) string {
	if len(v) == 0 {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func formatAcres(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func language(l string) string {
	if l == "" {
		return models.DefaultLanguage
	}
	return l
}
