package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the prometheus collectors for the game server.
type Metrics struct {
	ActiveSessions prometheus.Gauge
	RoundsStarted  prometheus.Counter
	Eliminations   prometheus.Counter
	GamesFinished  *prometheus.CounterVec
	SSEClients     prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live game sessions",
		}),
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Total number of rounds started",
		}),
		Eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eliminations_total",
			Help:      "Total number of player eliminations",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Total number of finished games by result",
		}, []string{"result"}),
		SSEClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Number of connected SSE clients",
		}),
	}

	prometheus.MustRegister(
		m.ActiveSessions,
		m.RoundsStarted,
		m.Eliminations,
		m.GamesFinished,
		m.SSEClients,
	)

	return m
}

// Monitor exposes metric helpers to the handlers.
type Monitor struct {
	metrics *Metrics
}

func New(namespace string) *Monitor {
	return &Monitor{metrics: NewMetrics(namespace)}
}

// Handler returns the /metrics endpoint handler.
func (m *Monitor) Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Monitor) SetActiveSessions(count int) {
	m.metrics.ActiveSessions.Set(float64(count))
}

func (m *Monitor) IncRoundsStarted() {
	m.metrics.RoundsStarted.Inc()
}

func (m *Monitor) IncEliminations() {
	m.metrics.Eliminations.Inc()
}

func (m *Monitor) IncGamesFinished(result string) {
	m.metrics.GamesFinished.WithLabelValues(result).Inc()
}

func (m *Monitor) IncSSEClients() {
	m.metrics.SSEClients.Inc()
}

func (m *Monitor) DecSSEClients() {
	m.metrics.SSEClients.Dec()
}
