package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

// MemoryLimiter keeps fixed-window counters in process memory. Suitable
// for single-instance deployments and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	if b.count >= limit {
		return false, window - now.Sub(b.start), nil
	}

	b.count++
	return true, 0, nil
}
