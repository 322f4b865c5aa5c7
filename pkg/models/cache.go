package models

import (
	"context"
	"time"
)

type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int   `json:"keys"`
}

// RecommendationCache is an expiring key-value store for recommendation
// results. Implementations are safe for concurrent use.
type RecommendationCache interface {
	Get(ctx context.Context, key string) (*RecommendationResult, bool, error)
	Set(ctx context.Context, key string, value *RecommendationResult, ttl time.Duration) error
	Len(ctx context.Context) int
	Stats(ctx context.Context) CacheStats
	Close() error
}
