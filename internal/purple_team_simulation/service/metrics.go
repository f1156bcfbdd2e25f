package service

import (
	"net/http"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "purple_team_sim"

// Metrics holds the service instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	events         *prometheus.CounterVec
	chains         *prometheus.CounterVec
	commands       *prometheus.CounterVec
	reports        *prometheus.CounterVec
	activeSessions prometheus.Gauge
	sweeps         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "Simulation events appended, by type and severity",
			},
			[]string{"type", "severity"},
		),
		chains: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "chains_launched_total",
				Help:      "Attack chains launched, by scenario",
			},
			[]string{"scenario"},
		),
		commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "commands_total",
				Help:      "Lifecycle commands, by command and whether they changed the status",
			},
			[]string{"command", "result"},
		),
		reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "reports_total",
				Help:      "Reports generated, by classification",
			},
			[]string{"classification"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "active_sessions",
				Help:      "Sessions holding a live engine",
			},
		),
		sweeps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "janitor",
				Name:      "actions_total",
				Help:      "Janitor actions, by kind",
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeEvent(e domain.SimulationEvent) {
	m.events.WithLabelValues(string(e.Type), string(e.Severity)).Inc()
}

func (m *Metrics) observeChain(scenario string) {
	m.chains.WithLabelValues(scenario).Inc()
}

func (m *Metrics) observeCommand(command string, applied bool) {
	result := "ignored"
	if applied {
		result = "applied"
	}
	m.commands.WithLabelValues(command, result).Inc()
}
