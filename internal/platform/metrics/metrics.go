// Package metrics owns the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Registry owns these metrics; served by Handler.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	checksCleared   *prometheus.CounterVec
	sweepFailures   prometheus.Counter
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	movements       *prometheus.CounterVec
}

// New creates a private registry and registers all collectors in it, so
// constructing Metrics more than once (tests) never panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "buildledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		checksCleared: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildledger_checks_cleared_total",
				Help: "Checks moved to CLEARED.",
			},
			[]string{"trigger"},
		),
		sweepFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "buildledger_due_check_failures_total",
				Help: "Checks that failed to clear during a due sweep.",
			},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildledger_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildledger_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		movements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buildledger_treasury_movements_total",
				Help: "Treasury transactions recorded, by type and category.",
			},
			[]string{"type", "category"},
		),
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// CheckCleared counts a cleared check. trigger is "manual" or "due_sweep".
func (m *Metrics) CheckCleared(trigger string) {
	if m == nil {
		return
	}
	m.checksCleared.WithLabelValues(trigger).Inc()
}

// DueSweepFailure counts one check that failed to clear in a sweep.
func (m *Metrics) DueSweepFailure() {
	if m == nil {
		return
	}
	m.sweepFailures.Inc()
}

func (m *Metrics) CacheHit(cache string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(cache).Inc()
}

func (m *Metrics) CacheMiss(cache string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// Movement counts a recorded treasury transaction.
func (m *Metrics) Movement(txnType, category string) {
	if m == nil {
		return
	}
	m.movements.WithLabelValues(txnType, category).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
