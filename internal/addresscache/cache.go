// Package addresscache keeps the last resolved address per country for a
// bounded time so repeat requests skip the geocoding provider.
package addresscache

import (
	"context"
	"sync"
	"time"

	"addrgen/internal/metrics"
	"addrgen/models"
)

const (
	DefaultCapacity = 50
	DefaultTTL      = 5 * time.Minute
)

// Cache is the contract every backend honours: Get only returns entries
// younger than the TTL, and Put on a new key at capacity first evicts the entry
// with the oldest timestamp.
type Cache interface {
	Get(ctx context.Context, country models.Country) (models.FormattedAddress, bool)
	Put(ctx context.Context, country models.Country, addr models.FormattedAddress)
}

// Memory is the in-process Cache. It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[models.Country]models.AddressCacheEntry
	nowFn    func() time.Time
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock replaces time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.nowFn = now }
}

// NewMemory creates an empty cache. Non-positive arguments fall back to the
// defaults.
func NewMemory(capacity int, ttl time.Duration, opts ...Option) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[models.Country]models.AddressCacheEntry, capacity),
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached address for country if it has not expired. An
// expired entry is removed.
func (m *Memory) Get(_ context.Context, country models.Country) (models.FormattedAddress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[country]
	if !ok {
		return models.FormattedAddress{}, false
	}
	if m.nowFn().Sub(e.CachedAt) >= m.ttl {
		delete(m.entries, country)
		return models.FormattedAddress{}, false
	}
	return e.Address, true
}

// Put stores addr for country stamped with the current time.
func (m *Memory) Put(_ context.Context, country models.Country, addr models.FormattedAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[country]; !exists && len(m.entries) >= m.capacity {
		m.evictOldest()
	}
	m.entries[country] = models.AddressCacheEntry{
		Country:  country,
		Address:  addr,
		CachedAt: m.nowFn(),
	}
}

// Len returns the number of entries, including expired ones not yet read.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) evictOldest() {
	var (
		oldest models.Country
		found  bool
		at     time.Time
	)
	for c, e := range m.entries {
		if !found || e.CachedAt.Before(at) {
			oldest, at, found = c, e.CachedAt, true
		}
	}
	if found {
		delete(m.entries, oldest)
		metrics.AddressCacheEvictions.Inc()
	}
}
