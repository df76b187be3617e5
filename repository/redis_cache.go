package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"holding-sim/logger"
)

const keyPrefix = "holding-sim:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

// Ping checks that the redis server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get reports a miss for absent keys. Other redis errors are logged and
// also reported as a miss, so the caller recomputes.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false
	case err != nil:
		logger.FromContext(ctx).Warnf("redis get %s failed: %v", key, err)
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
