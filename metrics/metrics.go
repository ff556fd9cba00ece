// Package metrics exposes prometheus instrumentation for the engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "riskbot"

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics groups the collectors registered for one engine. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Commands     *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	PositionSize prometheus.Histogram
	RewardRisk   prometheus.Histogram
	Profiles     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Use prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by command and outcome",
		}, []string{"command", "outcome"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed commands, by command and error kind",
		}, []string{"command", "kind"}),
		PositionSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "position_size",
			Help:      "Computed position sizes in units",
			Buckets:   prometheus.ExponentialBuckets(0.001, 10, 10),
		}),
		RewardRisk: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reward_risk_ratio",
			Help:      "Reward:risk ratios seen by calcprice and rr",
			Buckets:   []float64{0.5, 1, 1.5, 2, 3, 5, 10},
		}),
		Profiles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profiles",
			Help:      "Users with a stored profile",
		}),
		gatherer: reg,
	}
}

// Observe counts one handled command.
func (m *Metrics) Observe(command string, err error, kind string) {
	if m == nil {
		return
	}
	if err != nil {
		m.Commands.WithLabelValues(command, OutcomeError).Inc()
		m.Failures.WithLabelValues(command, kind).Inc()
		return
	}
	m.Commands.WithLabelValues(command, OutcomeOK).Inc()
}

// Size records a computed position size and, when present, its reward:risk.
func (m *Metrics) Size(size float64, rr *float64) {
	if m == nil {
		return
	}
	m.PositionSize.Observe(size)
	if rr != nil {
		m.RewardRisk.Observe(*rr)
	}
}

// Ratio records a reward:risk ratio.
func (m *Metrics) Ratio(rr float64) {
	if m == nil {
		return
	}
	m.RewardRisk.Observe(rr)
}

// SetProfiles updates the profiles gauge.
func (m *Metrics) SetProfiles(n int) {
	if m == nil {
		return
	}
	m.Profiles.Set(float64(n))
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
