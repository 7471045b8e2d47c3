// Package cache decorates a wmi.Resolver with in-memory and Redis caches.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vinkit/internal/wmi"
)

type cachedEntry struct {
	value    string
	found    bool
	storedAt time.Time
}

// Memory caches resolver results, misses included, for a fixed TTL.
// Concurrent fills of the same key share one upstream call.
type Memory struct {
	next    wmi.Resolver
	ttl     time.Duration
	metrics *Metrics
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedEntry
	group   singleflight.Group
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMemoryMetrics records hits and misses.
func WithMemoryMetrics(m *Metrics) MemoryOption {
	return func(c *Memory) {
		c.metrics = m
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *Memory) {
		c.now = now
	}
}

// NewMemory wraps next with an in-memory cache.
func NewMemory(next wmi.Resolver, ttl time.Duration, opts ...MemoryOption) (*Memory, error) {
	if next == nil {
		return nil, fmt.Errorf("next resolver is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive")
	}
	c := &Memory{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Resolve implements wmi.Resolver. The shared fill runs detached from the
// caller's cancellation; a caller that gives up returns its own ctx error
// while the fill completes for everyone else.
func (c *Memory) Resolve(ctx context.Context, locale, key string) (string, bool, error) {
	start := time.Now()
	cacheKey := locale + "\x00" + key

	if entry, ok := c.lookup(cacheKey); ok {
		c.metrics.recordHit("memory", start)
		return entry.value, entry.found, nil
	}
	c.metrics.recordMiss("memory", start)

	fillCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(cacheKey, func() (any, error) {
		value, found, err := c.next.Resolve(fillCtx, locale, key)
		if err != nil {
			return nil, err
		}
		entry := cachedEntry{value: value, found: found, storedAt: c.now()}
		c.mu.Lock()
		c.entries[cacheKey] = entry
		c.mu.Unlock()
		return entry, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		entry := res.Val.(cachedEntry)
		return entry.value, entry.found, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// lookup returns a live entry. An expired entry is deleted so Len only
// counts entries that may still be served.
func (c *Memory) lookup(cacheKey string) (cachedEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey]
	c.mu.RUnlock()
	if !ok {
		return cachedEntry{}, false
	}
	if !c.expired(entry) {
		return entry, true
	}

	c.mu.Lock()
	if current, ok := c.entries[cacheKey]; ok && c.expired(current) {
		delete(c.entries, cacheKey)
	}
	c.mu.Unlock()
	return cachedEntry{}, false
}

func (c *Memory) expired(entry cachedEntry) bool {
	return c.now().Sub(entry.storedAt) >= c.ttl
}

// Purge drops every cached entry.
func (c *Memory) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedEntry)
}

// Len returns the number of stored entries. Expired entries are counted
// until their next lookup removes them.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
