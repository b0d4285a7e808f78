package round

// Phase identifies one stage of a round's lifecycle. Phases advance linearly
// and never move backwards.
type Phase int

const (
	PhaseBriefing Phase = iota
	PhaseDeploy
	PhaseCommit
	PhaseReveal
	PhaseDebrief
)

// successor is the static adjacency table: each phase has exactly one legal
// next phase, the terminal Debrief phase has none.
var successor = map[Phase]Phase{
	PhaseBriefing: PhaseDeploy,
	PhaseDeploy:   PhaseCommit,
	PhaseCommit:   PhaseReveal,
	PhaseReveal:   PhaseDebrief,
}

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBriefing:
		return "BRIEFING"
	case PhaseDeploy:
		return "DEPLOY"
	case PhaseCommit:
		return "COMMIT"
	case PhaseReveal:
		return "REVEAL"
	case PhaseDebrief:
		return "DEBRIEF"
	default:
		return "unknown"
	}
}

// CanTransitionTo reports whether target is the immediate successor of p.
func (p Phase) CanTransitionTo(target Phase) bool {
	next, ok := successor[p]
	return ok && next == target
}

// Committed reports whether the phase is at or past commit. Placements are
// frozen from that point on.
func (p Phase) Committed() bool { return p >= PhaseCommit }

// Terminal reports whether the round has ended.
func (p Phase) Terminal() bool { return p == PhaseDebrief }
