package events

import (
	"time"

	"github.com/kilianp07/dispatch-trainer/core/round"
)

// RoundStarted is published when a session begins a new round.
type RoundStarted struct {
	SessionID  string
	ScenarioID string
	StartedAt  time.Time
}

// PhaseChanged is published on every phase transition, including the
// transition performed by a commit.
type PhaseChanged struct {
	SessionID string
	From      round.Phase
	To        round.Phase
}

// RoundCommitted is published when a round is scored. It carries the full
// record so subscribers do not need to query the log store.
type RoundCommitted struct {
	Record round.Record
}
