// Package metrics defines the observability events emitted by the round
// engine and the sink interfaces that record them. Concrete sinks live in
// infra/metrics.
package metrics

import (
	"time"

	"github.com/kilianp07/dispatch-trainer/core/round"
)

// RoundResultEvent captures the outcome of one committed round.
type RoundResultEvent struct {
	SessionID    string
	ScenarioID   string
	FinalScore   float64
	CoverageRate float64
	LiftVsModel  float64
	LiftVsRecent float64
	Time         time.Time
}

// MetricsSink records committed round results for observability purposes.
type MetricsSink interface {
	RecordRoundResult(ev RoundResultEvent) error
}

// PhaseTransitionEvent captures a single phase change within a round.
type PhaseTransitionEvent struct {
	SessionID string
	From      round.Phase
	To        round.Phase
	Time      time.Time
}

// PhaseTransitionRecorder is implemented by sinks able to record phase
// transitions.
type PhaseTransitionRecorder interface {
	RecordPhaseTransition(ev PhaseTransitionEvent) error
}

// SessionCountRecorder records the number of currently active sessions.
type SessionCountRecorder interface {
	RecordActiveSessions(n int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRoundResult(RoundResultEvent) error         { return nil }
func (NopSink) RecordPhaseTransition(PhaseTransitionEvent) error { return nil }
func (NopSink) RecordActiveSessions(int) error                   { return nil }
