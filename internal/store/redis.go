package store

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisKV Redis 实现
type RedisKV struct {
	c *redis.Client
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{c: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string) error {
	// Planner state is durable, so no TTL.
	return r.c.Set(ctx, key, value, 0).Err()
}
