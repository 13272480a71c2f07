// Package metrics exposes prometheus collectors for tracker persistence.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/ciclo/internal/daysync"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	logins     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ciclo",
		Name:      "tracker_store_operations_total",
		Help:      "Daily entry store calls by table, operation and outcome.",
	}, []string{"table", "operation", "outcome"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ciclo",
		Name:      "auth_attempts_total",
		Help:      "Sign-in and sign-up attempts by mode and outcome.",
	}, []string{"mode", "outcome"})
	registry.MustRegister(operations, logins)

	return &Metrics{registry: registry, operations: operations, logins: logins}
}

// StoreObserver counts every synchronizer store call.
func (m *Metrics) StoreObserver() daysync.Observer {
	return func(table string, operation string, err error) {
		m.operations.WithLabelValues(table, operation, outcome(err)).Inc()
	}
}

func (m *Metrics) ObserveAuth(mode string, outcome string) {
	m.logins.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
