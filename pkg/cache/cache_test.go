package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/testutils"
)

func testResult() *models.RecommendationResult {
	return &models.RecommendationResult{
		Recommendations: []models.CropSuggestion{
			{CropName: "Cotton", Confidence: 0.85, EstimatedYield: 1800},
		},
		Summary: "Cotton suits black soil in Kharif.",
	}
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheBackends(t *testing.T) {
	ctx := context.Background()
	redisCache, _ := newRedisCache(t)

	backends := map[string]models.RecommendationCache{
		"memory": NewMemoryCache(time.Hour, time.Minute),
		"redis":  redisCache,
	}

	for name, c := range backends {
		t.Run(name, func(t *testing.T) {
			got, ok, err := c.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got)

			require.NoError(t, c.Set(ctx, "k1", testResult(), time.Hour))
			got, ok, err = c.Get(ctx, "k1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Cotton", got.Recommendations[0].CropName)
			assert.Equal(t, "Cotton suits black soil in Kharif.", got.Summary)

			assert.Equal(t, 1, c.Len(ctx))
			stats := c.Stats(ctx)
			assert.Equal(t, int64(1), stats.Hits)
			assert.Equal(t, int64(1), stats.Misses)
			assert.Equal(t, 1, stats.Keys)
		})
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour, time.Minute)

	require.NoError(t, c.Set(ctx, "short", testResult(), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheForeignValueIsMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	c.c.Set("wrong-type", "not a recommendation", time.Hour)

	got, ok, err := c.Get(ctx, "wrong-type")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	stats := c.Stats(ctx)
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, c.Set(ctx, "short", testResult(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheLenIgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, mr.Set("other:key", "value"))
	require.NoError(t, c.Set(ctx, "a", testResult(), time.Hour))
	require.NoError(t, c.Set(ctx, "b", testResult(), time.Hour))

	assert.Equal(t, 2, c.Len(ctx))
	assert.True(t, mr.Exists(keyPrefix+"a"))
}

func TestRedisCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, mr.Set(keyPrefix+"bad", "not json"))
	_, ok, err := c.Get(ctx, "bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	cfg := testutils.NewTestConfig()
	c, err := NewCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	mr := miniredis.RunT(t)
	cfg.Cache.Type = "redis"
	cfg.Cache.RedisURL = "redis://" + mr.Addr() + "/0"
	c, err = NewCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)
	require.NoError(t, c.Close())

	cfg.Cache.Type = "memcached"
	_, err = NewCache(ctx, cfg)
	assert.ErrorContains(t, err, "invalid cache type: memcached")
}
