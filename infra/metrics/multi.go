package metrics

import coremetrics "github.com/kilianp07/dispatch-trainer/core/metrics"

// MultiSink fans round results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRoundResult forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordRoundResult(ev coremetrics.RoundResultEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRoundResult(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPhaseTransition forwards phase changes to sinks that support them.
func (m *MultiSink) RecordPhaseTransition(ev coremetrics.PhaseTransitionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PhaseTransitionRecorder); ok {
			if err := rec.RecordPhaseTransition(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordActiveSessions forwards the session count to sinks that support it.
func (m *MultiSink) RecordActiveSessions(n int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SessionCountRecorder); ok {
			if err := rec.RecordActiveSessions(n); err != nil {
				return err
			}
		}
	}
	return nil
}
