package scoring

import (
	"github.com/kilianp07/dispatch-trainer/core/coverage"
	"github.com/kilianp07/dispatch-trainer/core/model"
)

// BaselineComparison reports player coverage against both baseline policies.
// Lift is expressed in coverage-rate points.
type BaselineComparison struct {
	PlayerRate         float64 `json:"player_rate"`
	BaselineRecentRate float64 `json:"baseline_recent_rate"`
	BaselineModelRate  float64 `json:"baseline_model_rate"`
	LiftVsRecent       float64 `json:"lift_vs_recent"`
	LiftVsModel        float64 `json:"lift_vs_model"`
}

// CompareToBaselines scores the baseline policies with the same coverage
// rules as the player: each policy cell becomes a synthetic single unit at
// the scenario radius.
func CompareToBaselines(sc *model.Scenario, playerPlacements []model.Placement) (BaselineComparison, error) {
	radius := sc.Units.CoverageRadiusCells
	incidents := sc.Truth.NextHourIncidents
	total := len(incidents)

	playerCov, err := coverage.Compute(playerPlacements, incidents, radius)
	if err != nil {
		return BaselineComparison{}, err
	}
	recentRate, err := policyRate(sc.Baselines.BaselineRecentPolicy, incidents, radius, total)
	if err != nil {
		return BaselineComparison{}, err
	}
	modelRate, err := policyRate(sc.Baselines.BaselineModelPolicy, incidents, radius, total)
	if err != nil {
		return BaselineComparison{}, err
	}

	cmp := BaselineComparison{
		PlayerRate:         Rate(playerCov.CoveredCount(), total),
		BaselineRecentRate: recentRate,
		BaselineModelRate:  modelRate,
	}
	cmp.LiftVsRecent = cmp.PlayerRate - cmp.BaselineRecentRate
	cmp.LiftVsModel = cmp.PlayerRate - cmp.BaselineModelRate
	return cmp, nil
}

func policyRate(cells []string, incidents []model.Incident, radius, total int) (float64, error) {
	union, err := coverage.CellUnion(cells, radius)
	if err != nil {
		return 0, err
	}
	covered := 0
	for _, inc := range incidents {
		if _, ok := union[inc.CellID]; ok {
			covered++
		}
	}
	return Rate(covered, total), nil
}
