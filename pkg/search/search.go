// Package search ranks knowledge-base documents against a query.
package search

import (
	"context"
	"sort"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

const (
	DefaultLimit     = 5
	DefaultThreshold = 0.7
	DefaultMMRLambda = 0.5
)

var log = internal.GetLogger()

var _ models.Searcher = &Searcher{}

// Searcher scores every stored document against the query embedding.
type Searcher struct {
	store     models.DocumentStore
	embedder  models.Embedder
	limit     int
	threshold float64
}

func NewSearcher(store models.DocumentStore, embedder models.Embedder, cfg *config.Config) *Searcher {
	limit := cfg.RAG.SearchLimit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Searcher{
		store:     store,
		embedder:  embedder,
		limit:     limit,
		threshold: cfg.RAG.SimilarityThreshold,
	}
}

// Search returns at most opts.Limit documents whose similarity to query is
// at least the threshold, most similar first. Equal scores keep insertion
// order. An empty store yields an empty result without embedding the query.
func (s *Searcher) Search(
	ctx context.Context,
	query string,
	opts models.SearchOptions,
) ([]models.SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.limit
	}
	threshold := s.threshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}

	docs := s.store.All()
	if len(docs) == 0 {
		return []models.SearchResult{}, nil
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(docs))
	for _, doc := range docs {
		sim := CosineSimilarity(queryEmbedding, doc.Embedding)
		if sim < threshold {
			continue
		}
		results = append(results, models.SearchResult{Document: doc, Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if opts.SearchType == models.SearchTypeMMR {
		return s.rerankMMR(queryEmbedding, results, opts.MMRLambda, limit), nil
	}

	if len(results) > limit {
		results = results[:limit]
	}
	log.Debugf("search matched %d of %d documents at threshold %.2f", len(results), len(docs), threshold)

	return results, nil
}

func (s *Searcher) rerankMMR(
	queryEmbedding []float32,
	candidates []models.SearchResult,
	lambda float64,
	limit int,
) []models.SearchResult {
	if lambda <= 0 {
		lambda = DefaultMMRLambda
	}

	embeddings := make([][]float32, len(candidates))
	for i, c := range candidates {
		embeddings[i] = c.Document.Embedding
	}

	idxs, err := MaximalMarginalRelevance(queryEmbedding, embeddings, lambda, limit)
	if err != nil {
		// only reachable with a threshold <= 0 and mismatched dimensions
		log.Warnf("mmr rerank failed, using similarity order: %s", err)
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		return candidates
	}

	out := make([]models.SearchResult, len(idxs))
	for i, idx := range idxs {
		out[i] = candidates[idx]
	}
	return out
}
