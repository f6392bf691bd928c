// Package cache provides exposure-set caches. The cached set is what
// makes slot exposure sticky: within the TTL a requester keeps seeing
// the same slots.
package cache

import (
	"context"
	"sync"
	"time"

	"slotbooker/internal/domain/exposure"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/usecase/queries"
)

type memoryEntry struct {
	result    queries.ExposureResult
	scopeKey  string
	expiresAt time.Time
}

// MemoryExposureCache is the single-process fallback used when no Redis
// address is configured. Stickiness then only holds per instance.
type MemoryExposureCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clock
}

func NewMemoryExposureCache(clk clock.Clock) *MemoryExposureCache {
	return &MemoryExposureCache{
		entries: make(map[string]memoryEntry),
		clock:   clk,
	}
}

func (c *MemoryExposureCache) Get(_ context.Context, key string) (queries.ExposureResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return queries.ExposureResult{}, false, nil
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		return queries.ExposureResult{}, false, nil
	}
	return e.result, true, nil
}

func (c *MemoryExposureCache) Set(_ context.Context, key string, result queries.ExposureResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		result:    result,
		scopeKey:  exposure.ScopeKeyOf(key),
		expiresAt: c.clock.Now().Add(ttl),
	}
	c.evictExpiredLocked()
	return nil
}

func (c *MemoryExposureCache) InvalidateScope(_ context.Context, scopeKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if e.scopeKey == scopeKey {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *MemoryExposureCache) evictExpiredLocked() {
	now := c.clock.Now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
