// Package cache stores recommendation results for a bounded time.
package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

var log = internal.GetLogger()

// NewCache returns the backend selected by cache.type.
func NewCache(ctx context.Context, cfg *config.Config) (models.RecommendationCache, error) {
	switch cfg.Cache.Type {
	case "", "memory":
		return NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CheckPeriod), nil
	case "redis":
		return NewRedisCacheFromURL(ctx, cfg.Cache.RedisURL)
	default:
		return nil, fmt.Errorf("invalid cache type: %s", cfg.Cache.Type)
	}
}

type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *counters) record(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}

func (c *counters) stats(keys int) models.CacheStats {
	return models.CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Keys:   keys,
	}
}
