// Package address turns a country into a real, complete street address by
// sampling points and reverse geocoding them until one resolves.
package address

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"addrgen/internal/addresscache"
	"addrgen/internal/config"
	"addrgen/internal/metrics"
	"addrgen/internal/tracing"
	"addrgen/models"
)

// MaxResolveAttempts bounds the sample-and-geocode loop per request.
const MaxResolveAttempts = config.ResolveAttempts

// ErrAddressUnavailable means no complete address was found within
// MaxResolveAttempts, or the request was cancelled first.
var ErrAddressUnavailable = errors.New("address unavailable")

// Geocoder reverse geocodes a point; nil means nothing usable came back.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, p models.GeoPoint) *models.RawGeocodeResult
}

// Sampler draws a candidate point inside a country.
type Sampler interface {
	Sample(c models.Country) (models.GeoPoint, error)
}

// Resolver produces a FormattedAddress per country, consulting the cache first.
type Resolver struct {
	geocoder    Geocoder
	sampler     Sampler
	cache       addresscache.Cache
	logger      *slog.Logger
	tracer      trace.Tracer
	maxAttempts int
}

func NewResolver(g Geocoder, s Sampler, cache addresscache.Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		geocoder:    g,
		sampler:     s,
		cache:       cache,
		logger:      logger.With("component", "resolver"),
		tracer:      tracing.Tracer("addrgen/address"),
		maxAttempts: MaxResolveAttempts,
	}
}

// Resolve returns a cached address for c when one is fresh. Otherwise it
// samples and geocodes up to MaxResolveAttempts times, caching and returning
// the first complete result. Sampler errors such as an unsupported country
// are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, c models.Country) (models.FormattedAddress, error) {
	if addr, ok := r.cache.Get(ctx, c); ok {
		metrics.AddressCacheLookups.WithLabelValues("hit").Inc()
		return addr, nil
	}
	metrics.AddressCacheLookups.WithLabelValues("miss").Inc()

	ctx, span := r.tracer.Start(ctx, "address.resolve", trace.WithAttributes(
		attribute.String("country", c.String()),
	))
	defer span.End()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			r.observe(c, "cancelled", attempt-1)
			span.SetStatus(codes.Error, "cancelled")
			return models.FormattedAddress{}, fmt.Errorf("%w: %w", ErrAddressUnavailable, err)
		}

		p, err := r.sampler.Sample(c)
		if err != nil {
			span.RecordError(err)
			return models.FormattedAddress{}, err
		}

		raw := r.geocoder.ReverseGeocode(ctx, p)
		if raw == nil || !IsComplete(raw.Address) {
			continue
		}

		addr := FormatAddress(raw.Address, c)
		r.cache.Put(ctx, c, addr)
		r.observe(c, "resolved", attempt)
		span.SetAttributes(attribute.Int("attempts", attempt))
		r.logger.Debug("address resolved", "country", c, "attempts", attempt, "geohash", p.Geohash())
		return addr, nil
	}

	r.observe(c, "exhausted", r.maxAttempts)
	span.SetStatus(codes.Error, "exhausted")
	r.logger.Warn("no complete address found", "country", c, "attempts", r.maxAttempts)
	return models.FormattedAddress{}, ErrAddressUnavailable
}

func (r *Resolver) observe(c models.Country, outcome string, attempts int) {
	metrics.ResolveAttempts.WithLabelValues(c.String(), outcome).Observe(float64(attempts))
}
