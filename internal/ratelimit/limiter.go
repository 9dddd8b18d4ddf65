package ratelimit

import (
	"context"
	"time"
)

// Limiter answers whether the request identified by key may proceed
// within a fixed window. retryAfter is only meaningful when allowed is
// false.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}
