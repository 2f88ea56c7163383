package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a fixed window counter shared by every API instance
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:", now: time.Now}
}

// Ping reports whether Redis answers
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Name identifies the store in metrics
func (s *RedisStore) Name() string { return "redis" }

// Allow increments the counter for the current window of key
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()
	windowStart := now.Truncate(window)
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, windowStart.Unix())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	if count > limit {
		return Result{
			Allowed:    false,
			RetryAfter: windowStart.Add(window).Sub(now),
		}, nil
	}
	return Result{Allowed: true, Remaining: limit - count}, nil
}
