package ratelimit

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter keeps fixed-window counters in Redis so limits hold
// across instances. Window keys expire on their own.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
}

func NewRedisLimiter(client rueidis.Client) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "ratelimit:",
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	redisKey := r.prefix + key

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(redisKey).Build()).AsInt64()
	if err != nil {
		return false, 0, err
	}

	if count == 1 {
		expireCmd := r.client.B().Expire().Key(redisKey).Seconds(int64(window / time.Second)).Build()
		if err := r.client.Do(ctx, expireCmd).Error(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(limit) {
		ttl, err := r.client.Do(ctx, r.client.B().Ttl().Key(redisKey).Build()).AsInt64()
		if err != nil || ttl < 0 {
			return false, window, nil
		}
		return false, time.Duration(ttl) * time.Second, nil
	}

	return true, 0, nil
}
