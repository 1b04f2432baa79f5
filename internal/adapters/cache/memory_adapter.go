package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/urgences-proches/backend/internal/domain/providers"
)

// maxMemoryTTL bounds every in-process entry regardless of the requested expiration
const maxMemoryTTL = 24 * time.Hour

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter implements CacheProvider with a bounded in-process LRU.
// Used when Redis is not configured or unreachable.
type MemoryAdapter struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemoryAdapter creates an in-process cache holding at most size entries
func NewMemoryAdapter(size int) *MemoryAdapter {
	if size <= 0 {
		size = 1024
	}
	return &MemoryAdapter{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxMemoryTTL),
		now: time.Now,
	}
}

// Get retrieves a value from cache
func (m *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.lru.Remove(key)
		return nil, providers.ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value in cache with expiration; 0 keeps it until evicted
func (m *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		entry.expiresAt = m.now().Add(time.Duration(expirationSeconds) * time.Second)
	}
	m.lru.Add(key, entry)
	return nil
}

// Delete removes a value from cache
func (m *MemoryAdapter) Delete(ctx context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Exists checks if a key exists in cache
func (m *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}
