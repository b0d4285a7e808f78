// Package round implements the immutable state machine that drives one
// training round: briefing, deployment, commit, reveal and debrief. Every
// mutator returns a fresh State; the input value is never modified and stays
// valid for concurrent readers.
package round

import (
	"fmt"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/coverage"
	"github.com/kilianp07/dispatch-trainer/core/grid"
	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
)

// Result carries the committed outcome of a round.
type Result struct {
	Breakdown   scoring.ScoreBreakdown     `json:"score_breakdown"`
	Comparison  scoring.BaselineComparison `json:"baseline_comparison"`
	CommittedAt time.Time                  `json:"committed_at"`
}

// State is one immutable snapshot of a round. The zero value is not usable;
// rounds begin with Start.
type State struct {
	scenario   *model.Scenario
	cfg        scoring.Config
	phase      Phase
	placements []model.Placement
	result     *Result
}

// Start validates the scenario and returns the initial briefing-phase state.
// The scoring configuration is fixed for the lifetime of the round.
func Start(sc *model.Scenario, cfg scoring.Config) (State, error) {
	if sc == nil {
		return State{}, fmt.Errorf("scenario is required")
	}
	if err := sc.Validate(); err != nil {
		return State{}, fmt.Errorf("start round: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return State{}, fmt.Errorf("start round: %w", err)
	}
	return State{scenario: sc, cfg: cfg, phase: PhaseBriefing}, nil
}

// Scenario returns the scenario this round replays.
func (s State) Scenario() *model.Scenario { return s.scenario }

// Phase returns the current phase.
func (s State) Phase() Phase { return s.phase }

// Placements returns a copy of the current placements.
func (s State) Placements() []model.Placement {
	out := make([]model.Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

// Result returns the committed outcome, or false before commit.
func (s State) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// SetPhase advances the round to target, which must be the immediate
// successor of the current phase. The commit phase cannot be entered here;
// only Commit produces a scored state.
func (s State) SetPhase(target Phase) (State, error) {
	if target == PhaseCommit {
		return State{}, fmt.Errorf("%w: %s -> %s requires Commit", ErrInvalidPhaseTransition, s.phase, target)
	}
	if !s.phase.CanTransitionTo(target) {
		return State{}, fmt.Errorf("%w: %s -> %s", ErrInvalidPhaseTransition, s.phase, target)
	}
	next := s.clone()
	next.phase = target
	return next, nil
}

// AddPlacement places a unit on a cell, or moves it when the unit is already
// placed. Only legal during the deploy phase.
func (s State) AddPlacement(unitIndex int, unitType model.UnitType, cellID string) (State, error) {
	if err := s.requireDeploy(); err != nil {
		return State{}, err
	}
	if unitIndex < 1 || unitIndex > s.scenario.Units.Total() {
		return State{}, fmt.Errorf("%w: %d not in [1,%d]", ErrUnitIndexOutOfRange, unitIndex, s.scenario.Units.Total())
	}
	if _, _, err := grid.ParseCellID(cellID); err != nil {
		return State{}, err
	}
	existing := -1
	for i, p := range s.placements {
		if p.UnitIndex == unitIndex {
			if existing >= 0 {
				return State{}, fmt.Errorf("%w: %d", ErrDuplicateUnitIndex, unitIndex)
			}
			existing = i
			continue
		}
		if p.CellID == cellID {
			return State{}, fmt.Errorf("%w: %s held by unit %d", ErrDuplicateCellAssignment, cellID, p.UnitIndex)
		}
	}
	if err := s.checkQuota(unitType, existing); err != nil {
		return State{}, err
	}
	next := s.clone()
	placement := model.Placement{UnitIndex: unitIndex, Type: unitType, CellID: cellID}
	if existing >= 0 {
		next.placements[existing] = placement
	} else {
		next.placements = append(next.placements, placement)
	}
	return next, nil
}

// RemovePlacement takes a unit off the board. Only legal during deploy.
func (s State) RemovePlacement(unitIndex int) (State, error) {
	if err := s.requireDeploy(); err != nil {
		return State{}, err
	}
	for i, p := range s.placements {
		if p.UnitIndex == unitIndex {
			next := s.clone()
			next.placements = append(next.placements[:i], next.placements[i+1:]...)
			return next, nil
		}
	}
	return State{}, fmt.Errorf("%w: unit %d", ErrPlacementNotFound, unitIndex)
}

// Commit freezes the placements, scores them against the hidden truth and
// moves the round to the commit phase. Callers advance to reveal with
// SetPhase once the UI is ready to show truth data.
func (s State) Commit(now time.Time) (State, error) {
	if s.phase.Committed() {
		return State{}, fmt.Errorf("%w: phase %s", ErrAlreadyCommitted, s.phase)
	}
	if s.phase != PhaseDeploy {
		return State{}, fmt.Errorf("%w: commit requires %s, in %s", ErrInvalidPhaseTransition, PhaseDeploy, s.phase)
	}
	total := s.scenario.Units.Total()
	if len(s.placements) != total {
		return State{}, fmt.Errorf("%w: %d of %d units placed", ErrIncompletePlacement, len(s.placements), total)
	}

	cov, err := coverage.Compute(s.placements, s.scenario.Truth.NextHourIncidents, s.scenario.Units.CoverageRadiusCells)
	if err != nil {
		return State{}, fmt.Errorf("commit: %w", err)
	}
	breakdown := scoring.ComputeScore(cov, len(s.scenario.Truth.NextHourIncidents), s.placements, s.scenario.NeighborhoodOf(), s.cfg)
	comparison, err := scoring.CompareToBaselines(s.scenario, s.placements)
	if err != nil {
		return State{}, fmt.Errorf("commit: %w", err)
	}

	next := s.clone()
	next.phase = PhaseCommit
	next.result = &Result{Breakdown: breakdown, Comparison: comparison, CommittedAt: now}
	return next, nil
}

func (s State) requireDeploy() error {
	if s.phase.Committed() {
		return fmt.Errorf("%w: phase %s", ErrAlreadyCommitted, s.phase)
	}
	if s.phase != PhaseDeploy {
		return fmt.Errorf("%w: placements require %s, in %s", ErrInvalidPhaseTransition, PhaseDeploy, s.phase)
	}
	return nil
}

// checkQuota verifies the per-type allocation, ignoring the placement at
// skipIdx when a unit is being moved.
func (s State) checkQuota(unitType model.UnitType, skipIdx int) error {
	count := 0
	for i, p := range s.placements {
		if i == skipIdx {
			continue
		}
		if p.Type == unitType {
			count++
		}
	}
	var quota int
	switch unitType {
	case model.UnitPatrol:
		quota = s.scenario.Units.PatrolCount
	case model.UnitEMS:
		quota = s.scenario.Units.EMSCount
	default:
		return fmt.Errorf("unknown unit type %v", unitType)
	}
	if count >= quota {
		return fmt.Errorf("%w: %d %s units already placed", ErrUnitQuotaExceeded, count, unitType)
	}
	return nil
}

// clone copies the state with its own placement slice so mutations never
// alias the receiver.
func (s State) clone() State {
	next := s
	next.placements = make([]model.Placement, len(s.placements))
	copy(next.placements, s.placements)
	return next
}
