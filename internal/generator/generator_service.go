// Package generator assembles a GeneratedRecord from the address, name and
// phone synthesizers.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"addrgen/internal/country"
	"addrgen/internal/metrics"
	"addrgen/internal/random"
	"addrgen/models"
)

// UnavailableMessage is the body of the 500 response when no address resolves.
const UnavailableMessage = "Failed to retrieve detailed address, please refresh the interface"

type AddressResolver interface {
	Resolve(ctx context.Context, c models.Country) (models.FormattedAddress, error)
}

type NameSynthesizer interface {
	Synthesize(ctx context.Context, c models.Country) models.IdentityProfile
}

type PhoneSynthesizer interface {
	Synthesize(c models.Country) string
}

type GeneratorService struct {
	resolver AddressResolver
	names    NameSynthesizer
	phones   PhoneSynthesizer
	src      *random.Source
	nowFn    func() time.Time
	logger   *slog.Logger
}

func NewGeneratorService(resolver AddressResolver, names NameSynthesizer, phones PhoneSynthesizer, src *random.Source, logger *slog.Logger) *GeneratorService {
	if src == nil {
		src = random.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratorService{
		resolver: resolver,
		names:    names,
		phones:   phones,
		src:      src,
		nowFn:    time.Now,
		logger:   logger.With("component", "generator"),
	}
}

// ResolveCountry parses a request parameter. Empty picks a random supported
// country; anything else must be supported.
func (s *GeneratorService) ResolveCountry(raw string) (models.Country, error) {
	if strings.TrimSpace(raw) == "" {
		return country.Random(s.src), nil
	}
	return country.Parse(raw)
}

// Generate resolves an address for c and decorates it with a synthesized
// identity and phone number. Only address resolution can fail.
func (s *GeneratorService) Generate(ctx context.Context, c models.Country) (*models.GeneratedRecord, error) {
	addr, err := s.resolver.Resolve(ctx, c)
	if err != nil {
		metrics.RecordsGenerated.WithLabelValues(outcomeFor(err)).Inc()
		s.logger.Warn("address resolution failed", "country", c, "err", err)
		return nil, err
	}

	rec := &models.GeneratedRecord{
		ID:          uuid.NewString(),
		Country:     c,
		Address:     addr,
		Identity:    s.names.Synthesize(ctx, c),
		Phone:       s.phones.Synthesize(c),
		GeneratedAt: s.nowFn().UTC(),
	}
	metrics.RecordsGenerated.WithLabelValues("ok").Inc()
	return rec, nil
}

// Countries returns the selectable countries sorted by English name.
func (s *GeneratorService) Countries() []models.CountryOption {
	return country.Options()
}

// StatusFor maps a Generate or ResolveCountry error to an HTTP status and a
// plain-text body. Anything but an unsupported country, address.ErrAddressUnavailable
// included, is reported with the fixed unavailable message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, country.ErrUnsupportedCountry):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, UnavailableMessage
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, country.ErrUnsupportedCountry):
		return "unsupported"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unavailable"
	}
}
