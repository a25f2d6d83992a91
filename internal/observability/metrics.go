package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action results recorded by RecordAction.
const (
	ResultChanged  = "changed"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
)

// Metrics holds the editor collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ActionsTotal     *prometheus.CounterVec
	DispatchDuration prometheus.Histogram
	SavesTotal       *prometheus.CounterVec
	SaveDuration     prometheus.Histogram
	LoadFailures     *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
	ActiveTimers     prometheus.Gauge
}

// NewMetrics registers the collectors on a private registry under namespace.
func NewMetrics(namespace string) *Metrics {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "pagebuilder"
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ActionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "editor_actions_total",
			Help:      "Editor actions dispatched, by action type and result",
		}, []string{"action", "result"}),
		DispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "editor_dispatch_duration_seconds",
			Help:      "Time spent reducing one editor action",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		SavesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_saves_total",
			Help:      "Document snapshot writes, by result",
		}, []string{"result"}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_save_duration_seconds",
			Help:      "Time spent writing one document snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
		LoadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_load_failures_total",
			Help:      "Document loads that fell back to the default document, by category",
		}, []string{"category"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_active_sessions",
			Help:      "Open editor sessions",
		}),
		ActiveTimers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_active_timers",
			Help:      "Mounted countdown and carousel timers",
		}),
	}
}

// Registry exposes the private registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordAction(action, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ActionsTotal.WithLabelValues(action, result).Inc()
	m.DispatchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordSave(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	if err != nil {
		m.SavesTotal.WithLabelValues("error").Inc()
		return
	}
	m.SavesTotal.WithLabelValues("ok").Inc()
	m.SaveDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordLoadFailure(category string) {
	if m == nil {
		return
	}
	m.LoadFailures.WithLabelValues(category).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

// TimersChanged adjusts the mounted timer gauge by delta.
func (m *Metrics) TimersChanged(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.ActiveTimers.Add(float64(delta))
}
