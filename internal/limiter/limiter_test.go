package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownBlocksSecondRequest(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	l := New(store, 150*time.Millisecond)
	ctx := context.Background()

	first := l.Allow(ctx, "10.0.0.1")
	assert.True(t, first.Allowed)

	second := l.Allow(ctx, "10.0.0.1")
	assert.False(t, second.Allowed)
	assert.Greater(t, second.RetryAfter, time.Duration(0))
}

func TestCooldownExpires(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	l := New(store, 100*time.Millisecond)
	ctx := context.Background()

	require.True(t, l.Allow(ctx, "10.0.0.1").Allowed)
	require.False(t, l.Allow(ctx, "10.0.0.1").Allowed)

	time.Sleep(150 * time.Millisecond)

	assert.True(t, l.Allow(ctx, "10.0.0.1").Allowed)
}

func TestCooldownPerClient(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	l := New(store, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "10.0.0.1").Allowed)
	assert.True(t, l.Allow(ctx, "10.0.0.2").Allowed)
	assert.False(t, l.Allow(ctx, "10.0.0.1").Allowed)
}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func (failingStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, errors.New("store down")
}

func TestFailOpenOnStoreError(t *testing.T) {
	l := New(failingStore{}, time.Minute)

	// The cooldown is best effort: a broken store must not block reporting.
	assert.True(t, l.Allow(context.Background(), "10.0.0.1").Allowed)
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Incr(ctx, "rate:x", 200*time.Millisecond)
	require.NoError(t, err)

	ttl, err := store.TTL(ctx, "rate:x")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 200*time.Millisecond)

	ttl, err = store.TTL(ctx, "rate:missing")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	count, err := store.Incr(ctx, "rate:x", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Incr(ctx, "rate:x", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	time.Sleep(80 * time.Millisecond)

	count, err = store.Incr(ctx, "rate:x", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "expired window starts a fresh count")
}
