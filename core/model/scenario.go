package model

import (
	"fmt"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/grid"
)

// Units describes how many response units a scenario hands the player and how
// far each unit covers.
type Units struct {
	PatrolCount         int `json:"patrol_count" yaml:"patrol_count"`
	EMSCount            int `json:"ems_count" yaml:"ems_count"`
	CoverageRadiusCells int `json:"coverage_radius_cells" yaml:"coverage_radius_cells"`
}

// Total returns the number of units the player must place before commit.
func (u Units) Total() int { return u.PatrolCount + u.EMSCount }

// Visible holds the pre-commit information shown to the player. It has no
// effect on scoring.
type Visible struct {
	LookbackHours   int        `json:"lookback_hours" yaml:"lookback_hours"`
	RecentIncidents []Incident `json:"recent_incidents" yaml:"recent_incidents"`
}

// Truth holds the ground truth for the replayed hour. It is populated when
// the scenario is built but only surfaced to the UI after the reveal phase.
type Truth struct {
	NextHourIncidents []Incident `json:"next_hour_incidents" yaml:"next_hour_incidents"`
	HeatGrid          []CellRisk `json:"heat_grid" yaml:"heat_grid"`
}

// Baselines holds the reference placement policies used for lift comparison.
type Baselines struct {
	BaselineRecentPolicy []string `json:"baseline_recent_policy" yaml:"baseline_recent_policy"`
	BaselineModelPolicy  []string `json:"baseline_model_policy" yaml:"baseline_model_policy"`
}

// Scenario is one historical replay round: the hour being played, the units
// available, what the player sees, the hidden truth and the baselines.
type Scenario struct {
	ScenarioID    string    `json:"scenario_id" yaml:"scenario_id"`
	TBucket       time.Time `json:"t_bucket" yaml:"t_bucket"`
	Title         string    `json:"title,omitempty" yaml:"title,omitempty"`
	BriefingText  string    `json:"briefing_text,omitempty" yaml:"briefing_text,omitempty"`
	ObjectiveText string    `json:"objective_text,omitempty" yaml:"objective_text,omitempty"`
	Units         Units     `json:"units" yaml:"units"`
	Visible       Visible   `json:"visible" yaml:"visible"`
	Truth         Truth     `json:"truth" yaml:"truth"`
	Baselines     Baselines `json:"baselines" yaml:"baselines"`
}

// Validate rejects malformed scenario payloads before they reach the round
// engine. Loosely-typed upstream data must pass through here.
func (s *Scenario) Validate() error {
	if s.ScenarioID == "" {
		return fmt.Errorf("scenario_id is required")
	}
	if s.Units.PatrolCount < 0 || s.Units.EMSCount < 0 {
		return fmt.Errorf("unit counts must be non-negative")
	}
	if s.Units.Total() < 1 {
		return fmt.Errorf("scenario must allocate at least one unit")
	}
	if s.Units.CoverageRadiusCells < 0 {
		return fmt.Errorf("coverage_radius_cells must be non-negative, got %d", s.Units.CoverageRadiusCells)
	}
	for _, inc := range s.Visible.RecentIncidents {
		if _, _, err := grid.ParseCellID(inc.CellID); err != nil {
			return fmt.Errorf("visible incident: %w", err)
		}
	}
	for _, inc := range s.Truth.NextHourIncidents {
		if _, _, err := grid.ParseCellID(inc.CellID); err != nil {
			return fmt.Errorf("truth incident: %w", err)
		}
	}
	for _, cr := range s.Truth.HeatGrid {
		if _, _, err := grid.ParseCellID(cr.CellID); err != nil {
			return fmt.Errorf("heat grid: %w", err)
		}
	}
	if err := validatePolicy("baseline_recent_policy", s.Baselines.BaselineRecentPolicy, s.Units.Total()); err != nil {
		return err
	}
	if err := validatePolicy("baseline_model_policy", s.Baselines.BaselineModelPolicy, s.Units.Total()); err != nil {
		return err
	}
	return nil
}

// NeighborhoodOf builds a cell-to-neighborhood resolver from the incident
// data carried by the scenario. Cells absent from the data map to "".
func (s *Scenario) NeighborhoodOf() func(cellID string) string {
	lookup := make(map[string]string, len(s.Truth.NextHourIncidents)+len(s.Visible.RecentIncidents))
	for _, inc := range s.Visible.RecentIncidents {
		if inc.Neighborhood != "" {
			lookup[inc.CellID] = inc.Neighborhood
		}
	}
	// Truth data wins over visible markers when both name a cell.
	for _, inc := range s.Truth.NextHourIncidents {
		if inc.Neighborhood != "" {
			lookup[inc.CellID] = inc.Neighborhood
		}
	}
	return func(cellID string) string { return lookup[cellID] }
}

func validatePolicy(name string, cells []string, maxLen int) error {
	if len(cells) > maxLen {
		return fmt.Errorf("%s has %d cells, more than the %d available units", name, len(cells), maxLen)
	}
	for _, c := range cells {
		if _, _, err := grid.ParseCellID(c); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
