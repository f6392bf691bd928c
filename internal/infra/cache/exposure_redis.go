package cache

import (
	"context"
	"encoding/json"
	"time"

	"slotbooker/internal/domain/exposure"
	"slotbooker/internal/infra"
	"slotbooker/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// RedisExposureCache keeps stickiness consistent across instances.
type RedisExposureCache struct {
	client *redis.Client
}

func NewRedisExposureCache(client *redis.Client) *RedisExposureCache {
	return &RedisExposureCache{client: client}
}

func (c *RedisExposureCache) Get(ctx context.Context, key string) (queries.ExposureResult, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return queries.ExposureResult{}, false, nil
		}
		return queries.ExposureResult{}, false, infra.WrapRepoErr("failed to read exposure cache", err)
	}

	var result queries.ExposureResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten.
		return queries.ExposureResult{}, false, nil
	}
	return result, true, nil
}

func (c *RedisExposureCache) Set(ctx context.Context, key string, result queries.ExposureResult, ttl time.Duration) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return infra.WrapRepoErr("failed to encode exposure result", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to write exposure cache", err)
	}
	return nil
}

func (c *RedisExposureCache) InvalidateScope(ctx context.Context, scopeKey string) error {
	iter := c.client.Scan(ctx, 0, exposure.CacheKeyPattern(scopeKey), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return infra.WrapRepoErr("failed to scan exposure cache", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return infra.WrapRepoErr("failed to invalidate exposure cache", err)
	}
	return nil
}
