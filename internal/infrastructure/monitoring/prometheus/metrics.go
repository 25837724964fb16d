// Package prometheus registers and exposes the platform's metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector the platform records.  A single instance is
// created at startup and injected into the layers that record observations.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests counts API requests by method, route and status class.
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration observes request latency by route.
	HTTPDuration *prometheus.HistogramVec

	// OracleCalls counts AI service calls by operation and outcome
	// (ok, timeout, unavailable, bad_response).
	OracleCalls *prometheus.CounterVec
	// OracleDuration observes AI call latency by operation.
	OracleDuration *prometheus.HistogramVec

	// ScreeningPoolSize observes how many candidates each screening batch
	// submitted to the AI service.
	ScreeningPoolSize prometheus.Histogram
	// ScreeningSkippedEntries counts malformed result entries dropped during
	// normalization.
	ScreeningSkippedEntries prometheus.Counter

	// RecommendationsPersisted counts recommendation rows written.
	RecommendationsPersisted prometheus.Counter
	// RecommendationFallbacks counts reads served from persisted history
	// because the AI service failed.
	RecommendationFallbacks prometheus.Counter
}

// New builds a Metrics instance on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		OracleCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "oracle",
			Name:      "calls_total",
			Help:      "AI service calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		OracleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Subsystem: "oracle",
			Name:      "call_duration_seconds",
			Help:      "AI service call latency by operation.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"operation"}),
		ScreeningPoolSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Subsystem: "screening",
			Name:      "pool_size",
			Help:      "Candidates submitted per screening batch.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		}),
		ScreeningSkippedEntries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "screening",
			Name:      "skipped_entries_total",
			Help:      "Malformed screening result entries dropped during normalization.",
		}),
		RecommendationsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "recommendation",
			Name:      "persisted_total",
			Help:      "Recommendation rows written to storage.",
		}),
		RecommendationFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "recommendation",
			Name:      "fallbacks_total",
			Help:      "Recommendation reads served from persisted history after an AI failure.",
		}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
