package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStoreIncr(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	count, err := store.Incr(ctx, "rate:x", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 5*time.Second, mr.TTL("rate:x"))

	count, err = store.Incr(ctx, "rate:x", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRedisStoreRejectedRetryDoesNotExtendWindow(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "rate:x", 5*time.Second)
	require.NoError(t, err)

	// A retry 3s into the window must leave 2s on the clock, not restart it.
	mr.FastForward(3 * time.Second)
	count, err := store.Incr(ctx, "rate:x", 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	assert.Equal(t, 2*time.Second, mr.TTL("rate:x"))

	// Once the original window ends, the count starts over.
	mr.FastForward(2 * time.Second)
	count, err = store.Incr(ctx, "rate:x", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreTTLMissingKey(t *testing.T) {
	store, _ := newRedisStore(t)

	ttl, err := store.TTL(context.Background(), "rate:missing")
	require.NoError(t, err)
	assert.Negative(t, ttl)
}

func TestCooldownOverRedis(t *testing.T) {
	store, mr := newRedisStore(t)
	l := New(store, 5*time.Second)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "10.0.0.1").Allowed)
	assert.False(t, l.Allow(ctx, "10.0.0.1").Allowed)

	// Retrying inside the window keeps getting refused but never pushes the
	// window out.
	mr.FastForward(4 * time.Second)
	assert.False(t, l.Allow(ctx, "10.0.0.1").Allowed)

	mr.FastForward(time.Second)
	assert.True(t, l.Allow(ctx, "10.0.0.1").Allowed)
}
