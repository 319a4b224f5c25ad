// Package identity synthesizes a localized name and gender for a country.
package identity

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"addrgen/internal/metrics"
	"addrgen/internal/random"
	"addrgen/models"
)

// nationalities maps countries to randomuser.me nat codes.
var nationalities = map[models.Country]string{
	models.CountryUS: "us",
	models.CountryUK: "gb",
	models.CountryFR: "fr",
	models.CountryDE: "de",
	models.CountryIN: "in",
	models.CountryAU: "au",
	models.CountryBR: "br",
	models.CountryCA: "ca",
	models.CountryMX: "mx",
	models.CountryES: "es",
	models.CountryTR: "tr",
}

// Nationality returns the people generator nat code for c.
func Nationality(c models.Country) (string, bool) {
	nat, ok := nationalities[c]
	return nat, ok
}

// PeopleFetcher is satisfied by *PeopleClient.
type PeopleFetcher interface {
	RandomPerson(ctx context.Context, nat string, gender models.Gender) (*Person, error)
}

type strategyFunc func(ctx context.Context, c models.Country, g models.Gender) (string, bool)

type strategy struct {
	name string
	fn   strategyFunc
}

// Synthesizer tries, in order, the country's locale table, the remote people
// generator and the default locale table. The last one always succeeds.
type Synthesizer struct {
	locales    Locales
	people     PeopleFetcher
	src        *random.Source
	logger     *slog.Logger
	strategies []strategy
}

// NewSynthesizer wires the strategy chain. people may be nil, which disables
// the remote step.
func NewSynthesizer(locales Locales, people PeopleFetcher, src *random.Source, logger *slog.Logger) *Synthesizer {
	if src == nil {
		src = random.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Synthesizer{
		locales: locales,
		people:  people,
		src:     src,
		logger:  logger.With("component", "identity"),
	}
	s.strategies = []strategy{
		{"locale", s.fromLocale},
		{"remote", s.fromRemote},
		{"default", s.fromDefault},
	}
	return s
}

// Synthesize picks a gender uniformly and returns the first name any strategy
// produces.
func (s *Synthesizer) Synthesize(ctx context.Context, c models.Country) models.IdentityProfile {
	gender := random.Pick(s.src, []models.Gender{models.GenderMale, models.GenderFemale})

	for _, st := range s.strategies {
		if name, ok := st.fn(ctx, c, gender); ok {
			metrics.NameStrategyTotal.WithLabelValues(st.name).Inc()
			return models.IdentityProfile{Name: name, Gender: gender}
		}
	}

	// unreachable while fromDefault is last
	return models.IdentityProfile{Name: s.locales.Default().Name(s.src, gender), Gender: gender}
}

func (s *Synthesizer) fromLocale(_ context.Context, c models.Country, g models.Gender) (string, bool) {
	loc, ok := s.locales.For(c)
	if !ok {
		return "", false
	}
	return loc.Name(s.src, g), true
}

func (s *Synthesizer) fromRemote(ctx context.Context, c models.Country, g models.Gender) (string, bool) {
	if s.people == nil {
		return "", false
	}
	nat, ok := Nationality(c)
	if !ok {
		return "", false
	}

	p, err := s.people.RandomPerson(ctx, nat, g)
	if err != nil {
		s.logger.Warn("people generator failed, using default names", "country", c, "err", err)
		return "", false
	}

	first, last := Capitalize(p.First), Capitalize(p.Last)
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "", false
	}
	return name, true
}

func (s *Synthesizer) fromDefault(_ context.Context, _ models.Country, g models.Gender) (string, bool) {
	return s.locales.Default().Name(s.src, g), true
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
