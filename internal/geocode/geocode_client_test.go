package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrgen/internal/config"
	"addrgen/internal/logging"
	"addrgen/internal/util"
	"addrgen/models"
)

var springfield = models.GeoPoint{Lat: 39.7817, Lng: -89.6501}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.GeocodeConfig{
		BaseURL:   srv.URL,
		UserAgent: "addrgen-test",
		RPS:       1000,
		Timeout:   5 * time.Second,
	}, logging.Discard())
	return c
}

// noBackoff records backoff waits instead of sleeping.
func noBackoff(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := util.Sleep
	util.Sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	t.Cleanup(func() { util.Sleep = orig })
	return &waits
}

func TestReverseGeocode_RequestShape(t *testing.T) {
	noBackoff(t)

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/reverse", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "39.7817", q.Get("lat"))
		assert.Equal(t, "-89.6501", q.Get("lon"))
		assert.Equal(t, "18", q.Get("zoom"))
		assert.Equal(t, "1", q.Get("addressdetails"))
		assert.Equal(t, "addrgen-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"place_id":     123,
			"lat":          "39.7817",
			"lon":          "-89.6501",
			"display_name": "12, Main St, Springfield, IL, 62704, United States",
			"address": map[string]string{
				"house_number": "12",
				"road":         "Main St",
				"city":         "Springfield",
				"state":        "IL",
				"postcode":     "62704",
			},
		})
	}))

	res := c.ReverseGeocode(context.Background(), springfield)
	require.NotNil(t, res)
	assert.Equal(t, "12", res.Address.HouseNumber)
	assert.Equal(t, "Main St", res.Address.Road)
	assert.Equal(t, "Springfield", res.Address.City)
	assert.Equal(t, "IL", res.Address.State)
	assert.Equal(t, "62704", res.Address.Postcode)
}

func TestReverseGeocode_RetriesServerErrorsWithBackoff(t *testing.T) {
	waits := noBackoff(t)

	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"address": map[string]string{"road": "Rue de Rivoli", "city": "Paris"},
		})
	}))

	res := c.ReverseGeocode(context.Background(), springfield)
	require.NotNil(t, res)
	assert.Equal(t, "Rue de Rivoli", res.Address.Road)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}, *waits)
}

func TestReverseGeocode_GivesUpAfterThreeAttempts(t *testing.T) {
	waits := noBackoff(t)

	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	res := c.ReverseGeocode(context.Background(), springfield)
	assert.Nil(t, res)
	assert.Equal(t, int32(MaxAttempts), calls.Load())
	// no wait after the final attempt
	assert.Len(t, *waits, MaxAttempts-1)
}

func TestReverseGeocode_TransportFailure(t *testing.T) {
	noBackoff(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(config.GeocodeConfig{
		BaseURL:   srv.URL,
		UserAgent: "addrgen-test",
		RPS:       1000,
		Timeout:   time.Second,
	}, logging.Discard())
	srv.Close()

	assert.Nil(t, c.ReverseGeocode(context.Background(), springfield))
}

func TestReverseGeocode_UnparseableBody(t *testing.T) {
	noBackoff(t)

	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("<html>not json</html>"))
	}))

	assert.Nil(t, c.ReverseGeocode(context.Background(), springfield))
	// a parse failure is not a transport failure and is not retried
	assert.Equal(t, int32(1), calls.Load())
}

func TestReverseGeocode_ProviderErrorPayload(t *testing.T) {
	noBackoff(t)

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))

	assert.Nil(t, c.ReverseGeocode(context.Background(), springfield))
}

func TestReverseGeocode_SparseAddressIsReturned(t *testing.T) {
	noBackoff(t)

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"road":"Ocean Drive"}}`))
	}))

	res := c.ReverseGeocode(context.Background(), springfield)
	require.NotNil(t, res)
	assert.Equal(t, "Ocean Drive", res.Address.Road)
	assert.Empty(t, res.Address.HouseNumber)
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{StatusCode: http.StatusTooManyRequests}
	assert.Equal(t, "nominatim: Too Many Requests (status 429)", err.Error())
}
