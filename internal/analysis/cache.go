package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores analysis results keyed by fit and document hash.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, res Result) error
}

const redisKeyPrefix = "verdicto:analysis:"

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache is a Cache backed by Redis string keys with a TTL.
type RedisCache struct {
	rdb redisKV
	ttl time.Duration
}

// NewRedisCache wraps a go-redis client. A zero ttl keeps entries forever.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result, reporting false on a miss. An entry without
// any risk finding is treated as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (Result, bool, error) {
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Result{}, false, nil
		}
		return Result{}, false, err
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, false, err
	}
	if len(res.Risks) == 0 {
		return Result{}, false, nil
	}
	return res, true, nil
}

// Set stores res under key.
func (c *RedisCache) Set(ctx context.Context, key string, res Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err()
}
