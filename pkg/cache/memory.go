package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cropwise/cropwise/pkg/models"
)

var _ models.RecommendationCache = &MemoryCache{}

// MemoryCache is an in-process cache. Expired entries are swept every
// checkPeriod.
type MemoryCache struct {
	c *gocache.Cache
	counters
}

func NewMemoryCache(ttl, checkPeriod time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if checkPeriod <= 0 {
		checkPeriod = 10 * time.Minute
	}
	return &MemoryCache{c: gocache.New(ttl, checkPeriod)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*models.RecommendationResult, bool, error) {
	var result *models.RecommendationResult
	if v, found := m.c.Get(key); found {
		result, _ = v.(*models.RecommendationResult)
	}
	m.record(result != nil)
	if result == nil {
		return nil, false, nil
	}
	return result, true, nil
}

// Set stores value under key. A ttl of 0 uses the cache default.
func (m *MemoryCache) Set(_ context.Context, key string, value *models.RecommendationResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Len(_ context.Context) int {
	return m.c.ItemCount()
}

func (m *MemoryCache) Stats(ctx context.Context) models.CacheStats {
	return m.stats(m.Len(ctx))
}

func (m *MemoryCache) Close() error {
	m.c.Flush()
	return nil
}
