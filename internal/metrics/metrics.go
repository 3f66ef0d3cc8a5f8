package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes
const (
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors for the application.
// Each instance owns its registry so several apps can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	Logins           *prometheus.CounterVec
	ProgressUpdates  *prometheus.CounterVec
	ProgressResets   prometheus.Counter
	StudentsImported prometheus.Counter
}

// New creates and registers all metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classquiz_logins_total",
			Help: "Student login attempts by outcome",
		}, []string{"outcome"}),
		ProgressUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classquiz_progress_updates_total",
			Help: "Validated questions and levels recorded, by kind",
		}, []string{"kind"}),
		ProgressResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "classquiz_progress_resets_total",
			Help: "Player progress resets, counted per player",
		}),
		StudentsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "classquiz_students_imported_total",
			Help: "Students created from roster imports",
		}),
	}

	reg.MustRegister(
		m.Logins,
		m.ProgressUpdates,
		m.ProgressResets,
		m.StudentsImported,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveLogin increments the login counter for an outcome
func (m *Metrics) ObserveLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

// ObserveProgress increments the progress counter for a kind
func (m *Metrics) ObserveProgress(kind string) {
	m.ProgressUpdates.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
