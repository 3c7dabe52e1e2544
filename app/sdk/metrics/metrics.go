// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wertvoll_dispo"

// This holds the single instance of the metrics value needed for
// collecting metrics. Prometheus collectors are safe for concurrent use.
var m = newMetrics(prometheus.NewRegistry())

type metrics struct {
	registry       *prometheus.Registry
	goroutines     prometheus.Gauge
	requests       prometheus.Counter
	errors         prometheus.Counter
	panics         prometheus.Counter
	copilotTurns   *prometheus.CounterVec
	intentFailures prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := metrics{
		registry: reg,
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Number of goroutines seen at the last request.",
		}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of handled web requests.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Number of web requests that ended in an error.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Number of recovered panics.",
		}),
		copilotTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "copilot",
			Name:      "turns_total",
			Help:      "Copilot turns by the action that answered them.",
		}, []string{"action"}),
		intentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "copilot",
			Name:      "intent_failures_total",
			Help:      "Turns aborted because the intent service failed.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.goroutines,
		m.requests,
		m.errors,
		m.panics,
		m.copilotTurns,
		m.intentFailures,
	)

	return &m
}

// Handler returns the http handler that serves the collected metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// AddGoroutines refreshes the goroutine metric.
func AddGoroutines(ctx context.Context) int {
	g := runtime.NumGoroutine()
	m.goroutines.Set(float64(g))
	return g
}

// AddRequests increments the request metric by 1.
func AddRequests(ctx context.Context) {
	m.requests.Inc()
}

// AddErrors increments the errors metric by 1.
func AddErrors(ctx context.Context) {
	m.errors.Inc()
}

// AddPanics increments the panics metric by 1.
func AddPanics(ctx context.Context) {
	m.panics.Inc()
}

// AddCopilotTurn counts a finished copilot turn. An empty action is a
// plain text reply.
func AddCopilotTurn(ctx context.Context, action string) {
	if action == "" {
		action = "text"
	}
	m.copilotTurns.WithLabelValues(action).Inc()
}

// AddIntentFailure counts a turn lost to the intent service.
func AddIntentFailure(ctx context.Context) {
	m.intentFailures.Inc()
}
