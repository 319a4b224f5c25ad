package addresscache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrgen/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func addr(full string) models.FormattedAddress {
	return models.FormattedAddress{Full: full}
}

func code(i int) models.Country {
	return models.Country(fmt.Sprintf("C%02d", i))
}

func TestMemory_GetMiss(t *testing.T) {
	m := NewMemory(0, 0)
	_, ok := m.Get(context.Background(), models.CountryUS)
	assert.False(t, ok)
}

func TestMemory_PutThenGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(DefaultCapacity, DefaultTTL)

	m.Put(ctx, models.CountryUS, addr("12 Main St, Springfield, IL, 62704, US"))

	got, ok := m.Get(ctx, models.CountryUS)
	require.True(t, ok)
	assert.Equal(t, "12 Main St, Springfield, IL, 62704, US", got.Full)
}

func TestMemory_ExpiresAfterTTLAndRemovesEntry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(DefaultCapacity, DefaultTTL, WithClock(clock.Now))

	m.Put(ctx, models.CountryJP, addr("tokyo"))

	clock.Advance(DefaultTTL - time.Second)
	_, ok := m.Get(ctx, models.CountryJP)
	assert.True(t, ok, "entry should still be fresh just before the TTL")

	clock.Advance(time.Second)
	_, ok = m.Get(ctx, models.CountryJP)
	assert.False(t, ok, "entry at exactly the TTL is stale")
	assert.Equal(t, 0, m.Len(), "stale entry should be evicted on read")
}

func TestMemory_EvictsOldestTimestampsFirst(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(DefaultCapacity, time.Hour, WithClock(clock.Now))

	for i := 0; i < DefaultCapacity; i++ {
		m.Put(ctx, code(i), addr(fmt.Sprint(i)))
		clock.Advance(time.Second)
	}
	require.Equal(t, DefaultCapacity, m.Len())

	// three more distinct countries evict the three oldest
	for i := DefaultCapacity; i < DefaultCapacity+3; i++ {
		m.Put(ctx, code(i), addr(fmt.Sprint(i)))
		clock.Advance(time.Second)
	}

	assert.Equal(t, DefaultCapacity, m.Len())
	for i := 0; i < 3; i++ {
		_, ok := m.Get(ctx, code(i))
		assert.False(t, ok, "entry %d should have been evicted", i)
	}
	for i := 3; i < DefaultCapacity+3; i++ {
		_, ok := m.Get(ctx, code(i))
		assert.True(t, ok, "entry %d should still be cached", i)
	}
}

func TestMemory_EvictionIgnoresReads(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(2, time.Hour, WithClock(clock.Now))

	m.Put(ctx, models.CountryUS, addr("us"))
	clock.Advance(time.Second)
	m.Put(ctx, models.CountryFR, addr("fr"))
	clock.Advance(time.Second)

	// reading US does not make it younger
	_, ok := m.Get(ctx, models.CountryUS)
	require.True(t, ok)

	m.Put(ctx, models.CountryDE, addr("de"))

	_, ok = m.Get(ctx, models.CountryUS)
	assert.False(t, ok)
	_, ok = m.Get(ctx, models.CountryFR)
	assert.True(t, ok)
}

func TestMemory_OverwriteRefreshesWithoutEviction(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemory(2, time.Hour, WithClock(clock.Now))

	m.Put(ctx, models.CountryUS, addr("us-1"))
	clock.Advance(time.Second)
	m.Put(ctx, models.CountryFR, addr("fr"))
	clock.Advance(time.Second)

	m.Put(ctx, models.CountryUS, addr("us-2"))
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get(ctx, models.CountryUS)
	require.True(t, ok)
	assert.Equal(t, "us-2", got.Full)

	// FR is now the oldest
	m.Put(ctx, models.CountryDE, addr("de"))
	_, ok = m.Get(ctx, models.CountryFR)
	assert.False(t, ok)
	_, ok = m.Get(ctx, models.CountryUS)
	assert.True(t, ok)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c := code((g*200 + i) % 25)
				m.Put(ctx, c, addr(string(c)))
				m.Get(ctx, c)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Len(), 10)
}

func TestMemory_ImplementsCache(t *testing.T) {
	var _ Cache = NewMemory(1, time.Second)
}
