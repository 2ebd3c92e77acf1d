package limiter

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store. Entries expire after their window; a
// janitor goroutine sweeps stale entries so the map does not grow with every
// client IP ever seen.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		stop:    make(chan struct{}),
	}
	go s.janitor(time.Minute)
	return s
}

func (s *MemoryStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (s *MemoryStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return -1, nil
	}
	remaining := time.Until(e.expiresAt)
	if remaining < 0 {
		return -1, nil
	}
	return remaining, nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
