package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/model"
)

// ResultCache stores database-backed result pages.
type ResultCache interface {
	Get(ctx context.Context, key string) (*model.SearchResult, bool, error)
	Set(ctx context.Context, key string, res *model.SearchResult) error
}

// RedisCache is a ResultCache backed by Redis string keys with a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache returns a cache on rdb, or nil when rdb is nil.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if rdb == nil {
		return nil
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get loads a cached page. A missing key is not an error. A nil cache
// always misses.
func (c *RedisCache) Get(ctx context.Context, key string) (*model.SearchResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var res model.SearchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

// Set stores a page under key.
func (c *RedisCache) Set(ctx context.Context, key string, res *model.SearchResult) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Purge drops every cached page, returning the number of keys removed.
// Run it after the database contents change.
func (c *RedisCache) Purge(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}
	removed := 0
	for _, pattern := range config.CacheKey.Patterns() {
		iter := c.rdb.Scan(ctx, 0, pattern, 500).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return removed, err
			}
			removed++
		}
		if err := iter.Err(); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
