// Package metrics holds the client-side Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dalil"

// Outcome labels for API requests.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
)

// Manager owns a private registry so tests and the binary never share state.
// A nil *Manager is valid and records nothing.
type Manager struct {
	registry *prometheus.Registry

	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	favoritesToggled   *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Manager {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Manager{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Workers API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		apiRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Workers API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		favoritesToggled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_toggled_total",
			Help:      "Favourite flag changes by direction.",
		}, []string{"state"}),
	}
}

// ObserveRequest records one finished API call.
func (m *Manager) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, outcome).Inc()
	m.apiRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// FavoriteToggled counts a favourite being added (on) or removed.
func (m *Manager) FavoriteToggled(on bool) {
	if m == nil {
		return
	}
	state := "removed"
	if on {
		state = "added"
	}
	m.favoritesToggled.WithLabelValues(state).Inc()
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
