// Package metrics exposes prometheus counters for the account service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters. Counters are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	Signups        prometheus.Counter
	Logins         prometheus.Counter
	TokenRefreshes prometheus.Counter
	NotifyFailures prometheus.Counter
}

// New creates a Metrics with its own registry so tests do not collide on
// the global default.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_signups_total",
			Help: "Accounts created successfully.",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_logins_total",
			Help: "Successful logins.",
		}),
		TokenRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_token_refreshes_total",
			Help: "Access tokens minted via refresh token.",
		}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_notify_failures_total",
			Help: "Notification emails that failed to send.",
		}),
	}
	reg.MustRegister(m.Signups, m.Logins, m.TokenRefreshes, m.NotifyFailures)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
