package config

import "fmt"

// RoundsConfig defines round-engine settings that are not part of a scenario
// file.
type RoundsConfig struct {
	// ScenarioDir is where scenario files are looked up by the service.
	ScenarioDir string `json:"scenario_dir"`
	// DefaultCoverageRadiusCells is used when a scenario omits its radius.
	DefaultCoverageRadiusCells int `json:"default_coverage_radius_cells"`
}

// SetDefaults applies sane defaults.
func (c *RoundsConfig) SetDefaults() {
	if c.ScenarioDir == "" {
		c.ScenarioDir = "scenarios"
	}
	if c.DefaultCoverageRadiusCells == 0 {
		c.DefaultCoverageRadiusCells = 1
	}
}

// Validate checks mandatory fields.
func (c RoundsConfig) Validate() error {
	if c.DefaultCoverageRadiusCells < 0 {
		return fmt.Errorf("default_coverage_radius_cells must be non-negative")
	}
	return nil
}
