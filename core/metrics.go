package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "dashshim"

// Metrics exported on the admin endpoint. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	State           *prometheus.GaugeVec
	Redirects       prometheus.Counter
	ChildExits      *prometheus.CounterVec
	StartupDuration prometheus.Gauge
}

func (m *Metrics) setState(s State) {
	if m == nil {
		return
	}
	for _, state := range AllStates {
		v := 0.0
		if state == s {
			v = 1
		}
		m.State.WithLabelValues(string(state)).Set(v)
	}
}

func (m *Metrics) observeRedirect() {
	if m == nil {
		return
	}
	m.Redirects.Inc()
}

func (m *Metrics) observeChildExit(err error) {
	if m == nil {
		return
	}
	result := "clean"
	if err != nil {
		result = "failure"
	}
	m.ChildExits.WithLabelValues(result).Inc()
}

func (m *Metrics) observeStartup(d time.Duration) {
	if m == nil {
		return
	}
	m.StartupDuration.Set(d.Seconds())
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "state",
			Help:      "Current launcher state (1 for the active state).",
		}, []string{"state"}),
		Redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "redirects_total",
			Help:      "Number of redirect pages served.",
		}),
		ChildExits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "child_exits_total",
			Help:      "Application process exits observed while serving.",
		}, []string{"result"}),
		StartupDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "startup_duration_seconds",
			Help:      "Time from launch until the redirect server was listening.",
		}),
	}
	reg.MustRegister(m.State, m.Redirects, m.ChildExits, m.StartupDuration)
	return m
}
