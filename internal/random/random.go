// Package random provides a seedable, goroutine-safe random source shared by
// the samplers and synthesizers.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source wraps a math/rand/v2 generator behind a mutex. The zero value is not
// usable; use New or NewSeeded.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a source seeded from the current time.
func New() *Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded creates a deterministic source, mostly for tests.
func NewSeeded(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform int in [0, n).
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Between returns a uniform int in [lo, hi).
func (s *Source) Between(lo, hi int) int {
	return lo + s.IntN(hi-lo)
}

// Float64 returns a uniform float in [0.0, 1.0).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Digits returns n random decimal digits.
func (s *Source) Digits(n int) string {
	buf := make([]byte, n)
	s.mu.Lock()
	for i := range buf {
		buf[i] = byte('0' + s.rng.IntN(10))
	}
	s.mu.Unlock()
	return string(buf)
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](s *Source, items []T) T {
	return items[s.IntN(len(items))]
}
