package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "key", 3, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "key", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("request over the limit should be denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("expected retry-after within the window, got %v", retryAfter)
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	current := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter()
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if allowed, _, _ := limiter.Allow(ctx, "key", 2, time.Minute); !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter, _ := limiter.Allow(ctx, "key", 2, time.Minute)
	if allowed {
		t.Fatal("third request in the window should be denied")
	}
	if retryAfter != time.Minute {
		t.Errorf("expected a full window retry-after, got %v", retryAfter)
	}

	// Past the window the counter starts over.
	current = current.Add(61 * time.Second)
	if allowed, _, _ := limiter.Allow(ctx, "key", 2, time.Minute); !allowed {
		t.Error("request after the window should be allowed")
	}
}

func TestMemoryLimiter_RetryAfterShrinks(t *testing.T) {
	current := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter()
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	limiter.Allow(ctx, "key", 1, time.Minute)

	current = current.Add(40 * time.Second)
	_, retryAfter, _ := limiter.Allow(ctx, "key", 1, time.Minute)
	if retryAfter != 20*time.Second {
		t.Errorf("expected 20s until the window resets, got %v", retryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	if allowed, _, _ := limiter.Allow(ctx, "alice", 1, time.Minute); !allowed {
		t.Fatal("alice's first request should be allowed")
	}
	if allowed, _, _ := limiter.Allow(ctx, "alice", 1, time.Minute); allowed {
		t.Error("alice's second request should be denied")
	}
	if allowed, _, _ := limiter.Allow(ctx, "bob", 1, time.Minute); !allowed {
		t.Error("bob must not be throttled by alice's traffic")
	}
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	const workers = 50
	const limit = 20

	var wg sync.WaitGroup
	allowed := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _, err := limiter.Allow(ctx, "shared", limit, time.Minute)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			allowed <- ok
		}()
	}
	wg.Wait()
	close(allowed)

	var granted int
	for ok := range allowed {
		if ok {
			granted++
		}
	}
	if granted != limit {
		t.Errorf("expected exactly %d grants, got %d", limit, granted)
	}
}
