// Package metrics exposes Prometheus collectors for the password service.
//
// A Metrics value owns its own registry so tests and multiple servers in one
// process never collide on the global default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passgen"

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	generations     *prometheus.CounterVec
	passwordLength  prometheus.Histogram
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Password generation attempts by outcome and mode.",
		}, []string{"outcome", "mode"}),
		passwordLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "password_length",
			Help:      "Length of successfully generated passwords.",
			Buckets:   []float64{4, 8, 12, 16, 24, 32, 64, 128, 256, 1024, 4096},
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.generations,
		m.passwordLength,
		m.requests,
		m.requestDuration,
	)

	return m
}

// ObserveGeneration counts one generation attempt. Lengths are only sampled
// for successful generations.
func (m *Metrics) ObserveGeneration(outcome, mode string, length int) {
	m.generations.WithLabelValues(outcome, mode).Inc()
	if outcome == "ok" {
		m.passwordLength.Observe(float64(length))
	}
}

// ObserveRequest counts one HTTP request and samples its latency.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
