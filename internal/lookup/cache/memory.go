package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"licensure/internal/lookup"
	"licensure/pkg/platform/sentinel"
)

type entry struct {
	result    lookup.Result
	expiresAt time.Time
}

// Memory is an in-process cache for dev setups and tests. Expired entries
// are evicted lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory lookup cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*lookup.Result, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("lookup cache: %w", sentinel.ErrCacheMiss)
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, fmt.Errorf("lookup cache: %w", sentinel.ErrCacheMiss)
	}

	result := e.result
	return &result, nil
}

func (m *Memory) Set(_ context.Context, key string, result *lookup.Result, ttl time.Duration) error {
	if result == nil || ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{result: *result, expiresAt: m.now().Add(ttl)}
	return nil
}
