package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validScenario() *Scenario {
	return &Scenario{
		ScenarioID: "sc-001",
		TBucket:    time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC),
		Units:      Units{PatrolCount: 3, EMSCount: 1, CoverageRadiusCells: 1},
		Visible: Visible{
			LookbackHours:   3,
			RecentIncidents: []Incident{{CellID: "10_20", Neighborhood: "Downtown"}},
		},
		Truth: Truth{
			NextHourIncidents: []Incident{
				{CellID: "10_20", Neighborhood: "Downtown"},
				{CellID: "15_25", Neighborhood: "Eastside"},
			},
			HeatGrid: []CellRisk{{CellID: "10_20", RiskScore: 0.8}},
		},
		Baselines: Baselines{
			BaselineRecentPolicy: []string{"10_20", "11_20"},
			BaselineModelPolicy:  []string{"15_25"},
		},
	}
}

func TestScenarioValidate(t *testing.T) {
	if err := validScenario().Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"missing id", func(s *Scenario) { s.ScenarioID = "" }},
		{"negative patrol count", func(s *Scenario) { s.Units.PatrolCount = -1 }},
		{"zero units", func(s *Scenario) { s.Units.PatrolCount, s.Units.EMSCount = 0, 0 }},
		{"negative radius", func(s *Scenario) { s.Units.CoverageRadiusCells = -1 }},
		{"bad truth cell", func(s *Scenario) { s.Truth.NextHourIncidents[0].CellID = "oops" }},
		{"bad visible cell", func(s *Scenario) { s.Visible.RecentIncidents[0].CellID = "1_2_3" }},
		{"bad heat cell", func(s *Scenario) { s.Truth.HeatGrid[0].CellID = "x_y" }},
		{"bad baseline cell", func(s *Scenario) { s.Baselines.BaselineModelPolicy = []string{"nope"} }},
		{"oversized baseline", func(s *Scenario) {
			s.Baselines.BaselineRecentPolicy = []string{"1_1", "2_2", "3_3", "4_4", "5_5"}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc := validScenario()
			c.mutate(sc)
			if err := sc.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestNeighborhoodOf(t *testing.T) {
	sc := validScenario()
	sc.Visible.RecentIncidents = append(sc.Visible.RecentIncidents, Incident{CellID: "30_30", Neighborhood: "Northloop"})
	resolve := sc.NeighborhoodOf()

	if got := resolve("15_25"); got != "Eastside" {
		t.Errorf("truth neighborhood: got %q", got)
	}
	if got := resolve("30_30"); got != "Northloop" {
		t.Errorf("visible neighborhood: got %q", got)
	}
	if got := resolve("99_99"); got != "" {
		t.Errorf("unknown cell should resolve to empty, got %q", got)
	}
}

func TestLoadScenario_JSON(t *testing.T) {
	data := `{
  "scenario_id": "sc-json",
  "t_bucket": "2024-03-14T17:00:00Z",
  "units": {"patrol_count": 2, "ems_count": 1, "coverage_radius_cells": 1},
  "visible": {"lookback_hours": 3, "recent_incidents": []},
  "truth": {
    "next_hour_incidents": [{"cell_id": "10_20", "lat": 30.1, "lon": -97.7, "neighborhood": "Downtown"}],
    "heat_grid": []
  },
  "baselines": {"baseline_recent_policy": ["10_20"], "baseline_model_policy": ["11_21"]}
}`
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.ScenarioID != "sc-json" {
		t.Errorf("scenario_id = %q", sc.ScenarioID)
	}
	if sc.Units.Total() != 3 {
		t.Errorf("total units = %d, want 3", sc.Units.Total())
	}
	if sc.TBucket.Hour() != 17 {
		t.Errorf("t_bucket hour = %d, want 17", sc.TBucket.Hour())
	}
}

func TestLoadScenario_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadScenario(path); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestDecodeScenario_YAML(t *testing.T) {
	data := `
scenario_id: sc-yaml
t_bucket: 2024-03-14T17:00:00Z
units:
  patrol_count: 1
  ems_count: 1
  coverage_radius_cells: 2
visible:
  lookback_hours: 3
  recent_incidents: []
truth:
  next_hour_incidents:
    - cell_id: "5_5"
      neighborhood: Riverside
  heat_grid: []
baselines:
  baseline_recent_policy: ["5_5"]
  baseline_model_policy: ["6_6"]
`
	sc, err := DecodeScenario(strings.NewReader(data), "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sc.Units.CoverageRadiusCells != 2 {
		t.Errorf("radius = %d, want 2", sc.Units.CoverageRadiusCells)
	}
}

func TestUnitTypeRoundTrip(t *testing.T) {
	for _, ut := range []UnitType{UnitPatrol, UnitEMS} {
		parsed, err := ParseUnitType(ut.String())
		if err != nil {
			t.Fatalf("parse %q: %v", ut, err)
		}
		if parsed != ut {
			t.Errorf("round trip %v: got %v", ut, parsed)
		}
	}
	if _, err := ParseUnitType("helicopter"); err == nil {
		t.Error("expected error for unknown unit type")
	}
}
