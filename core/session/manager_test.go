package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/events"
	"github.com/kilianp07/dispatch-trainer/core/gamelog"
	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/round"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
	"github.com/kilianp07/dispatch-trainer/internal/eventbus"
)

func testScenario() *model.Scenario {
	return &model.Scenario{
		ScenarioID: "sc-session",
		TBucket:    time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC),
		Units:      model.Units{PatrolCount: 1, EMSCount: 1, CoverageRadiusCells: 1},
		Truth: model.Truth{
			NextHourIncidents: []model.Incident{
				{CellID: "10_10", Neighborhood: "Downtown"},
			},
		},
		Baselines: model.Baselines{
			BaselineRecentPolicy: []string{"10_10"},
			BaselineModelPolicy:  []string{"10_10"},
		},
	}
}

func testManager(t *testing.T, bus eventbus.EventBus) (*Manager, gamelog.Store) {
	t.Helper()
	var cfg scoring.Config
	cfg.SetDefaults()
	store, err := gamelog.NewJSONLStore(filepath.Join(t.TempDir(), "rounds.jsonl"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	m, err := NewManager(cfg, store, bus, nil, nil)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m, store
}

func TestManager_SessionLifecycle(t *testing.T) {
	m, store := testManager(t, nil)

	id, err := m.StartSession(testScenario())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}

	st, err := m.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st.Phase() != round.PhaseBriefing {
		t.Errorf("phase = %s, want BRIEFING", st.Phase())
	}

	if _, err := m.Advance(id, round.PhaseDeploy); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := m.PlaceUnit(id, 1, model.UnitPatrol, "10_10"); err != nil {
		t.Fatalf("place patrol: %v", err)
	}
	if _, err := m.PlaceUnit(id, 2, model.UnitEMS, "20_20"); err != nil {
		t.Fatalf("place ems: %v", err)
	}

	rec, err := m.Commit(context.Background(), id)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rec.SessionID != id || rec.ScenarioID != "sc-session" {
		t.Errorf("record ids wrong: %+v", rec)
	}
	if rec.CoverageRate != 1.0 {
		t.Errorf("coverage = %v, want 1.0", rec.CoverageRate)
	}

	stored, err := store.Query(context.Background(), gamelog.Query{SessionID: id})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(stored) != 1 || stored[0].RoundID != rec.RoundID {
		t.Errorf("record not persisted: %+v", stored)
	}

	if err := m.EndSession(id); err != nil {
		t.Fatalf("end: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("count after end = %d", m.Count())
	}
	if _, err := m.Get(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_UnknownSession(t *testing.T) {
	m, _ := testManager(t, nil)
	if _, err := m.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("get: %v", err)
	}
	if _, err := m.Advance("missing", round.PhaseDeploy); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("advance: %v", err)
	}
	if _, err := m.Commit(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("commit: %v", err)
	}
	if err := m.EndSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("end: %v", err)
	}
}

func TestManager_RoundErrorsPassThrough(t *testing.T) {
	m, _ := testManager(t, nil)
	id, err := m.StartSession(testScenario())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := m.PlaceUnit(id, 1, model.UnitPatrol, "10_10"); !errors.Is(err, round.ErrInvalidPhaseTransition) {
		t.Errorf("placement in briefing: %v", err)
	}
	if _, err := m.Commit(context.Background(), id); !errors.Is(err, round.ErrInvalidPhaseTransition) {
		t.Errorf("commit in briefing: %v", err)
	}
}

func TestManager_PublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sub := bus.Subscribe()
	m, _ := testManager(t, bus)

	id, err := m.StartSession(testScenario())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := m.Advance(id, round.PhaseDeploy); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := m.PlaceUnit(id, 1, model.UnitPatrol, "10_10"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := m.PlaceUnit(id, 2, model.UnitEMS, "20_20"); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := m.Commit(context.Background(), id); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var started, phaseChanges, committed int
	for len(sub) > 0 {
		switch (<-sub).(type) {
		case events.RoundStarted:
			started++
		case events.PhaseChanged:
			phaseChanges++
		case events.RoundCommitted:
			committed++
		}
	}
	if started != 1 {
		t.Errorf("RoundStarted events = %d, want 1", started)
	}
	// briefing->deploy and deploy->commit
	if phaseChanges != 2 {
		t.Errorf("PhaseChanged events = %d, want 2", phaseChanges)
	}
	if committed != 1 {
		t.Errorf("RoundCommitted events = %d, want 1", committed)
	}
}
