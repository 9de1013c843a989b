package weather

import (
	"context"
	"sync"
	"time"

	"pinpoint/internal/cache"
)

// Store caches readings by key. A cached nil reading (provider unavailable)
// is distinguishable from a miss via the found flag.
type Store interface {
	Get(ctx context.Context, key string) (reading *Reading, found bool)
	Set(ctx context.Context, key string, reading *Reading, ttl time.Duration)
	Forget(ctx context.Context, key string)
}

// cachedReading wraps a possibly-nil reading so the envelope itself marks a hit.
type cachedReading struct {
	Reading *Reading `json:"reading"`
}

// RedisStore backs the weather cache with the shared Redis client. All
// operations are best-effort; Redis being down degrades to a miss.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Reading, bool) {
	var entry cachedReading
	found, err := cache.GetJSON(ctx, key, &entry)
	if err != nil || !found {
		return nil, false
	}
	return entry.Reading, true
}

func (s *RedisStore) Set(ctx context.Context, key string, reading *Reading, ttl time.Duration) {
	_ = cache.SetJSON(ctx, key, cachedReading{Reading: reading}, ttl)
}

func (s *RedisStore) Forget(ctx context.Context, key string) {
	cache.Invalidate(ctx, key)
}

type memoryEntry struct {
	reading   *Reading
	expiresAt time.Time
}

// MemoryStore is a concurrency-safe in-memory Store. It serves deployments
// without Redis and keeps tests hermetic.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Reading, bool) {
	s.mu.RLock()
	entry, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.reading, true
}

func (s *MemoryStore) Set(_ context.Context, key string, reading *Reading, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = memoryEntry{reading: reading, expiresAt: s.now().Add(ttl)}
}

func (s *MemoryStore) Forget(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
