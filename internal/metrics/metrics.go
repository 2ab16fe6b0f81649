// Package metrics exposes Prometheus collectors for the panchang API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "panchang"

// Calculation outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeInvariant  = "invariant_violation"
	OutcomeError      = "error"
)

// Metrics holds every collector on its own registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	calculations        *prometheus.CounterVec
	calculationDuration prometheus.Histogram
	ephemerisGaps       *prometheus.CounterVec
	invariantViolations prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Panchang calculations by outcome.",
		}, []string{"outcome"}),

		calculationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent computing one panchang report.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),

		ephemerisGaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeris_gaps_total",
			Help:      "Rise or set searches that found no crossing in the window.",
		}, []string{"body", "direction"}),

		invariantViolations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invariant_violations_total",
			Help:      "Reports rejected because sunrise did not precede sunset or a window was inverted.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveCalculation records one engine run.
func (m *Metrics) ObserveCalculation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	m.calculationDuration.Observe(elapsed.Seconds())
}

// EphemerisGap records a rise or set that did not occur.
func (m *Metrics) EphemerisGap(body, direction string) {
	if m == nil {
		return
	}
	m.ephemerisGaps.WithLabelValues(body, direction).Inc()
}

// InvariantViolation records a rejected report.
func (m *Metrics) InvariantViolation() {
	if m == nil {
		return
	}
	m.invariantViolations.Inc()
}
