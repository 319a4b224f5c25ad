package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"addrgen/internal/app"
	"addrgen/internal/config"
	"addrgen/internal/logging"
	"addrgen/internal/util"
	"addrgen/models"
	"addrgen/tests/testutils"
)

// upstreams fakes the geocoding and people providers.
type upstreams struct {
	nominatim  *httptest.Server
	randomUser *httptest.Server

	geocodeCalls atomic.Int64
	peopleCalls  atomic.Int64
	// sparse makes every reverse lookup lack a house number.
	sparse atomic.Bool
}

func newUpstreams(t *testing.T) *upstreams {
	t.Helper()
	u := &upstreams{}
	faker := gofakeit.New(2026)

	u.nominatim = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.geocodeCalls.Add(1)
		lat, _ := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, _ := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)

		addr := testutils.CreateTestRawAddress(faker)
		if u.sparse.Load() {
			addr.HouseNumber = ""
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutils.NominatimPayload(models.GeoPoint{Lat: lat, Lng: lon}, addr))
	}))
	t.Cleanup(u.nominatim.Close)

	u.randomUser = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.peopleCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutils.RandomUserPayload("jane", "doe", r.URL.Query().Get("gender")))
	}))
	t.Cleanup(u.randomUser.Close)

	return u
}

// startApp builds the full service against u and serves it.
func startApp(t *testing.T, u *upstreams, mutate func(*config.Config)) *testutils.TestServer {
	t.Helper()

	orig := util.Sleep
	util.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	t.Cleanup(func() { util.Sleep = orig })

	cfg := testutils.GetTestConfig(u.nominatim.URL, u.randomUser.URL)
	if mutate != nil {
		mutate(cfg)
	}

	a, err := app.Build(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	ts := testutils.NewTestServer(t, a.Handler)
	t.Cleanup(ts.Close)
	return ts
}
