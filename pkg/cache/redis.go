package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cropwise/cropwise/pkg/models"
)

const keyPrefix = "cropwise:recommendation:"

var _ models.RecommendationCache = &RedisCache{}

// RedisCache shares cached recommendations between service instances.
// Values are stored as JSON with a redis TTL.
type RedisCache struct {
	client *redis.Client
	counters
}

func NewRedisCacheFromURL(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache.redis_url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infof("using redis recommendation cache at %s", opts.Addr)
	return NewRedisCache(client), nil
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*models.RecommendationResult, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.record(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached recommendation: %w", err)
	}

	var result models.RecommendationResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.record(false)
		return nil, false, fmt.Errorf("failed to decode cached recommendation: %w", err)
	}
	r.record(true)
	return &result, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value *models.RecommendationResult, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendation: %w", err)
	}
	return nil
}

// Len counts this service's keys with SCAN so other users of the database
// are not counted.
func (r *RedisCache) Len(ctx context.Context) int {
	n := 0
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		log.Warnf("failed to count cached recommendations: %s", err)
	}
	return n
}

func (r *RedisCache) Stats(ctx context.Context) models.CacheStats {
	return r.stats(r.Len(ctx))
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
