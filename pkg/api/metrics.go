package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts requests by chi route pattern, method and status.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transitnet_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transitnet_http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 5},
	}, []string{"route"})

	// journeySearches counts searches by variant and outcome.
	// Outcomes: "found", "not_found", "unknown_stop", "canceled", "error".
	journeySearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transitnet_journey_searches_total",
		Help: "Journey searches by variant and result",
	}, []string{"variant", "result"})

	journeyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transitnet_journey_duration_seconds",
		Help:    "Journey search duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"variant"})

	journeyLegs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitnet_journey_legs",
		Help:    "Number of legs in found journeys",
		Buckets: []float64{2, 3, 5, 10, 20, 50, 100},
	})
)
