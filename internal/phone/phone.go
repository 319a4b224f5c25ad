// Package phone generates country-formatted phone numbers.
package phone

import (
	"addrgen/internal/metrics"
	"addrgen/internal/random"
	"addrgen/models"
)

const (
	// MaxPhoneAttempts bounds generate-and-validate rounds per number.
	MaxPhoneAttempts = 5
	// Placeholder is returned when no candidate validates.
	Placeholder = "+0 000-000-0000"
)

// Synthesizer produces phone numbers from the per-country formats.
type Synthesizer struct {
	src      *random.Source
	formatFn func(models.Country) Format
}

// NewSynthesizer creates a synthesizer. A nil src uses a time-seeded source.
func NewSynthesizer(src *random.Source) *Synthesizer {
	if src == nil {
		src = random.New()
	}
	return &Synthesizer{src: src, formatFn: FormatFor}
}

// Synthesize returns the first generated number that matches c's pattern, or
// Placeholder after MaxPhoneAttempts misses.
func (s *Synthesizer) Synthesize(c models.Country) string {
	f := s.formatFn(c)
	for i := 0; i < MaxPhoneAttempts; i++ {
		if n := f.Generate(s.src); f.Pattern.MatchString(n) {
			return n
		}
	}
	metrics.PhonePlaceholderTotal.WithLabelValues(c.String()).Inc()
	return Placeholder
}
