package models

import (
	"context"

	"github.com/cropwise/cropwise/config"
)

// Searcher finds knowledge-base documents similar to a query.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

type Recommender interface {
	Recommend(ctx context.Context, req *RecommendationRequest) (*RecommendationResult, error)
}

type ChatResponder interface {
	Respond(ctx context.Context, message string, sessionContext map[string]any, language string) (string, error)
}

type KnowledgeBase interface {
	AddDocument(ctx context.Context, content string, metadata map[string]any) (*Document, error)
}

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LLM           LLM
	Embedder      Embedder
	DocumentStore DocumentStore
	Cache         RecommendationCache
	Searcher      Searcher
	Recommender   Recommender
	ChatResponder ChatResponder
	KnowledgeBase KnowledgeBase
	TaskRouter    TaskRouter
	TaskPublisher TaskPublisher
	Config        *config.Config
}
