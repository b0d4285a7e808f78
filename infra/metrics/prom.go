package metrics

import (
	coremetrics "github.com/kilianp07/dispatch-trainer/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records round results in Prometheus metrics.
type PromSink struct {
	rounds   *prometheus.CounterVec
	score    prometheus.Histogram
	coverage prometheus.Histogram
	sessions prometheus.Gauge
}

// NewPromSink registers round metrics on the default Prometheus registerer.
// The Prometheus server should be started separately on the configured
// address.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rounds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rounds_committed_total",
		Help: "Total number of committed rounds",
	}, []string{"scenario_id"})
	score := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "round_final_score",
		Help:    "Final score distribution across committed rounds",
		Buckets: prometheus.LinearBuckets(0, 10, 12),
	})
	coverage := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "round_coverage_rate",
		Help:    "Incident coverage rate distribution across committed rounds",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_sessions",
		Help: "Number of sessions with a round in progress",
	})

	if err := reg.Register(rounds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rounds = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(score); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			score = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(coverage); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			coverage = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(sessions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sessions = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{rounds: rounds, score: score, coverage: coverage, sessions: sessions}, nil
}

// RecordRoundResult increments the round counter and observes score and
// coverage histograms.
func (s *PromSink) RecordRoundResult(ev coremetrics.RoundResultEvent) error {
	s.rounds.WithLabelValues(ev.ScenarioID).Inc()
	s.score.Observe(ev.FinalScore)
	s.coverage.Observe(ev.CoverageRate)
	return nil
}

// RecordActiveSessions sets the session gauge.
func (s *PromSink) RecordActiveSessions(n int) error {
	s.sessions.Set(float64(n))
	return nil
}
