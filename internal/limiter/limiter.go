package limiter

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Store counts requests per key inside a fixed window. Implementations:
// MemoryStore for a single instance, RedisStore when the cooldown must be
// shared across instances.
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Limiter enforces a per-client cooldown on report creation: one accepted
// request per client per window.
type Limiter struct {
	store  Store
	window time.Duration
}

type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

func New(store Store, window time.Duration) *Limiter {
	return &Limiter{store: store, window: window}
}

// Allow records an attempt by clientID and reports whether it is within the
// cooldown. Store failures allow the request through with a log line; the
// cooldown is a soft limit, not a correctness guarantee.
func (l *Limiter) Allow(ctx context.Context, clientID string) Result {
	key := fmt.Sprintf("rate:%s", clientID)

	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		log.Printf("[Limiter] store error, failing open: %v", err)
		return Result{Allowed: true}
	}

	if count <= 1 {
		return Result{Allowed: true}
	}

	retryAfter, err := l.store.TTL(ctx, key)
	if err != nil || retryAfter < 0 {
		retryAfter = l.window
	}
	return Result{Allowed: false, RetryAfter: retryAfter}
}
