// Package session tracks the live rounds of connected trainees. The manager
// owns the only mutable reference to each round state; all round mutations
// funnel through it so persistence and event publication stay consistent.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/dispatch-trainer/core/events"
	"github.com/kilianp07/dispatch-trainer/core/gamelog"
	corelogger "github.com/kilianp07/dispatch-trainer/core/logger"
	coremetrics "github.com/kilianp07/dispatch-trainer/core/metrics"
	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/round"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
	"github.com/kilianp07/dispatch-trainer/internal/eventbus"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// ErrSessionNotFound is returned when no session exists for the given id.
var ErrSessionNotFound = errors.New("session not found")

// Manager holds one round per session id.
type Manager struct {
	mu     sync.RWMutex
	rounds map[string]round.State

	cfg   scoring.Config
	store gamelog.Store
	bus   eventbus.EventBus
	sink  coremetrics.MetricsSink
	log   corelogger.Logger
}

// NewManager creates a Manager using cfg for every round it starts. Store,
// bus and sink are optional; nil values disable persistence, events and
// metrics respectively.
func NewManager(cfg scoring.Config, store gamelog.Store, bus eventbus.EventBus, sink coremetrics.MetricsSink, log corelogger.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Manager{
		rounds: make(map[string]round.State),
		cfg:    cfg,
		store:  store,
		bus:    bus,
		sink:   sink,
		log:    log,
	}, nil
}

// StartSession opens a new session playing the given scenario and returns
// its id. The round starts in the briefing phase.
func (m *Manager) StartSession(sc *model.Scenario) (string, error) {
	st, err := round.Start(sc, m.cfg)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	m.rounds[id] = st
	n := len(m.rounds)
	m.mu.Unlock()

	m.log.Infof("session %s started on scenario %s", id, sc.ScenarioID)
	m.publish(events.RoundStarted{SessionID: id, ScenarioID: sc.ScenarioID, StartedAt: time.Now()})
	m.recordSessions(n)
	return id, nil
}

// Get returns a snapshot of the session's round state.
func (m *Manager) Get(sessionID string) (round.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.rounds[sessionID]
	if !ok {
		return round.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return st, nil
}

// Advance moves the session's round to the target phase.
func (m *Manager) Advance(sessionID string, target round.Phase) (round.State, error) {
	return m.apply(sessionID, func(st round.State) (round.State, error) {
		return st.SetPhase(target)
	})
}

// PlaceUnit places or moves a unit during the deploy phase.
func (m *Manager) PlaceUnit(sessionID string, unitIndex int, unitType model.UnitType, cellID string) (round.State, error) {
	return m.apply(sessionID, func(st round.State) (round.State, error) {
		return st.AddPlacement(unitIndex, unitType, cellID)
	})
}

// RemoveUnit takes a unit off the board during the deploy phase.
func (m *Manager) RemoveUnit(sessionID string, unitIndex int) (round.State, error) {
	return m.apply(sessionID, func(st round.State) (round.State, error) {
		return st.RemovePlacement(unitIndex)
	})
}

// Commit scores the session's round, persists the record and publishes the
// commit events. The returned record is what was written to the log store.
func (m *Manager) Commit(ctx context.Context, sessionID string) (round.Record, error) {
	st, err := m.apply(sessionID, func(st round.State) (round.State, error) {
		return st.Commit(time.Now())
	})
	if err != nil {
		return round.Record{}, err
	}
	rec, err := st.Summary(sessionID)
	if err != nil {
		return round.Record{}, err
	}
	if m.store != nil {
		if err := m.store.Append(ctx, rec); err != nil {
			// The round is already committed; losing the log entry must not
			// fail the commit itself.
			m.log.Errorf("session %s: append round record: %v", sessionID, err)
		}
	}
	m.log.Infof("session %s committed round %s: score %.1f, coverage %.2f",
		sessionID, rec.RoundID, rec.ScoreTotal, rec.CoverageRate)
	m.publish(events.RoundCommitted{Record: rec})
	return rec, nil
}

// EndSession drops the session. Uncommitted rounds are discarded.
func (m *Manager) EndSession(sessionID string) error {
	m.mu.Lock()
	_, ok := m.rounds[sessionID]
	if ok {
		delete(m.rounds, sessionID)
	}
	n := len(m.rounds)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	m.log.Infof("session %s ended", sessionID)
	m.recordSessions(n)
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}

// apply runs fn against the session's round under the lock and stores the
// resulting state. A PhaseChanged event is published whenever fn moved the
// round to a different phase.
func (m *Manager) apply(sessionID string, fn func(round.State) (round.State, error)) (round.State, error) {
	m.mu.Lock()
	st, ok := m.rounds[sessionID]
	if !ok {
		m.mu.Unlock()
		return round.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	next, err := fn(st)
	if err != nil {
		m.mu.Unlock()
		return round.State{}, err
	}
	m.rounds[sessionID] = next
	m.mu.Unlock()

	if next.Phase() != st.Phase() {
		m.publish(events.PhaseChanged{SessionID: sessionID, From: st.Phase(), To: next.Phase()})
	}
	return next, nil
}

func (m *Manager) publish(e eventbus.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Manager) recordSessions(n int) {
	if rec, ok := m.sink.(coremetrics.SessionCountRecorder); ok {
		_ = rec.RecordActiveSessions(n)
	}
}
