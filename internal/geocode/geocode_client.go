// Package geocode is a client for the Nominatim reverse geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"addrgen/internal/config"
	"addrgen/internal/metrics"
	"addrgen/internal/tracing"
	"addrgen/internal/util"
	"addrgen/models"
)

const (
	// MaxAttempts is the total number of HTTP attempts per lookup.
	MaxAttempts = 3
	// BaseBackoff is the wait before the second attempt; it doubles after that.
	BaseBackoff = 200 * time.Millisecond
	// Zoom 18 asks for building-level detail.
	Zoom = 18
)

// Client calls the reverse geocoding endpoint with bounded retries.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewClient creates a client from cfg. Requests are paced to cfg.RPS.
func NewClient(cfg config.GeocodeConfig, logger *slog.Logger) *Client {
	burst := int(cfg.RPS)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), burst),
		logger:    logger.With("component", "geocode"),
		tracer:    tracing.Tracer("addrgen/geocode"),
	}
}

// ReverseGeocode looks up p. It returns nil when every attempt failed or the
// response could not be parsed; failures are logged, never returned.
func (c *Client) ReverseGeocode(ctx context.Context, p models.GeoPoint) *models.RawGeocodeResult {
	ctx, span := c.tracer.Start(ctx, "geocode.reverse", trace.WithAttributes(
		attribute.Float64("geo.lat", p.Lat),
		attribute.Float64("geo.lng", p.Lng),
		attribute.String("geo.geohash", p.Geohash()),
	))
	defer span.End()

	body, err := util.RetryWithBackoffResult(ctx, MaxAttempts, BaseBackoff, func(attempt int) ([]byte, error) {
		b, err := c.fetch(ctx, p)
		if err != nil {
			c.logger.Debug("reverse geocode attempt failed", "point", p.String(), "attempt", attempt, "err", err)
		}
		return b, err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reverse geocode failed")
		c.logger.Warn("reverse geocode gave up", "point", p.String(), "attempts", MaxAttempts, "err", err)
		return nil
	}

	var resp reverseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		c.logger.Warn("reverse geocode: unparseable response", "point", p.String(), "err", err)
		return nil
	}
	if resp.Error != "" {
		c.logger.Debug("reverse geocode: no result", "point", p.String(), "reason", resp.Error)
		return nil
	}

	return &resp.RawGeocodeResult
}

func (c *Client) fetch(ctx context.Context, p models.GeoPoint) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(Zoom))
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GeocodeLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GeocodeRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("read_error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}
	metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
	return body, nil
}

// wait consumes exactly one limiter token, or returns when ctx is done.
func (c *Client) wait(ctx context.Context) error {
	r := c.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("rate: cannot reserve token")
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}
	metrics.GeocodeRateLimitWaits.Inc()
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

// HTTPError is a non-2xx response from the provider.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("nominatim: %s (status %d)", http.StatusText(e.StatusCode), e.StatusCode)
}

// reverseResponse adds the provider's error field to the result shape.
type reverseResponse struct {
	models.RawGeocodeResult
	Error string `json:"error"`
}
