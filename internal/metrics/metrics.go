package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Geocode client
	GeocodeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "geocode",
		Name:      "requests_total",
		Help:      "Reverse geocode HTTP attempts by outcome",
	}, []string{"status"})

	GeocodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "addrgen",
		Subsystem: "geocode",
		Name:      "request_duration_seconds",
		Help:      "Reverse geocode HTTP attempt duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	GeocodeRateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "geocode",
		Name:      "rate_limit_waits_total",
		Help:      "Outbound geocode requests delayed by the local rate limiter",
	})

	// Address resolver
	ResolveAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addrgen",
		Subsystem: "resolver",
		Name:      "attempts",
		Help:      "Sample-and-geocode attempts per resolution",
		Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
	}, []string{"country", "outcome"})

	AddressCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "address_cache",
		Name:      "lookups_total",
		Help:      "Address cache lookups by result (hit, miss)",
	}, []string{"result"})

	AddressCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "address_cache",
		Name:      "evictions_total",
		Help:      "Entries evicted to make room for a new country",
	})

	// Identity synthesis
	NameStrategyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "identity",
		Name:      "name_strategy_total",
		Help:      "Which name strategy produced the profile",
	}, []string{"strategy"})

	PhonePlaceholderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "identity",
		Name:      "phone_placeholder_total",
		Help:      "Phone syntheses that fell back to the placeholder",
	}, []string{"country"})

	// HTTP surface
	RecordsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addrgen",
		Subsystem: "generator",
		Name:      "records_total",
		Help:      "Generate requests by outcome",
	}, []string{"outcome"})
)
