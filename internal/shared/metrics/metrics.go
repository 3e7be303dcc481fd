package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors used across the pipeline.
// A dedicated registry keeps test instances isolated from the default one.
type Metrics struct {
	Registry *prometheus.Registry

	AnalysesStarted   prometheus.Counter
	AnalysesCompleted prometheus.Counter
	AnalysesFailed    *prometheus.CounterVec
	StepDuration      *prometheus.HistogramVec
	ExternalCalls     *prometheus.CounterVec
	EmailsSent        *prometheus.CounterVec
}

// New builds a Metrics set backed by a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		AnalysesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analysis_started_total",
			Help: "Number of analyses accepted for processing.",
		}),
		AnalysesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analysis_completed_total",
			Help: "Number of analyses that finished successfully.",
		}),
		AnalysesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_failed_total",
			Help: "Number of analyses that failed, by failure code.",
		}, []string{"code"}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analysis_step_duration_seconds",
			Help:    "Duration of each pipeline step.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"step"}),
		ExternalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "external_calls_total",
			Help: "Outbound calls to external services, by service and outcome.",
		}, []string{"service", "outcome"}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_emails_total",
			Help: "Report emails attempted, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.AnalysesStarted,
		m.AnalysesCompleted,
		m.AnalysesFailed,
		m.StepDuration,
		m.ExternalCalls,
		m.EmailsSent,
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
