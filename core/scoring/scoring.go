// Package scoring turns coverage results into the score breakdown shown at
// debrief and compares player performance against baseline policies.
package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dispatch-trainer/core/coverage"
	"github.com/kilianp07/dispatch-trainer/core/model"
)

// ScoreBreakdown itemizes every component of the final score. FinalScore is
// deliberately unclamped: values below zero or above one hundred are
// meaningful training signals.
type ScoreBreakdown struct {
	BaseScore              float64 `json:"base_score"`
	MissedIncidentsPenalty float64 `json:"missed_incidents_penalty"`
	StackingPenalty        float64 `json:"stacking_penalty"`
	NeglectPenalty         float64 `json:"neglect_penalty"`
	BalanceBonus           float64 `json:"balance_bonus"`
	FinalScore             float64 `json:"final_score"`
	CoverageRate           float64 `json:"coverage_rate"`
	CoveredCount           int     `json:"covered_count"`
	MissedCount            int     `json:"missed_count"`
	TotalIncidents         int     `json:"total_incidents"`
}

// Rate divides covered by total, returning 0.0 for an empty hour.
func Rate(covered, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(covered) / float64(total)
}

// ComputeScore builds the full breakdown from a coverage result. neighborhoodOf
// resolves a cell to its neighborhood and may return "" for unknown cells;
// such cells do not participate in the neighborhood penalties.
func ComputeScore(cov coverage.Result, totalIncidents int, placements []model.Placement, neighborhoodOf func(string) string, cfg Config) ScoreBreakdown {
	b := ScoreBreakdown{
		CoveredCount:   cov.CoveredCount(),
		MissedCount:    cov.MissedCount(),
		TotalIncidents: totalIncidents,
	}
	b.CoverageRate = Rate(b.CoveredCount, totalIncidents)
	b.BaseScore = 100.0 * weightedRate(cov, totalIncidents, cfg)
	b.MissedIncidentsPenalty = float64(b.MissedCount) * cfg.MissedWeight
	b.StackingPenalty = stackingPenalty(placements, neighborhoodOf, cfg)
	b.NeglectPenalty = neglectPenalty(cov, cfg)
	if cfg.BalanceBonusEnabled {
		b.BalanceBonus = balanceBonus(placements, neighborhoodOf, cfg)
	}
	b.FinalScore = b.BaseScore - b.MissedIncidentsPenalty - b.StackingPenalty - b.NeglectPenalty + b.BalanceBonus
	return b
}

// weightedRate is the coverage rate with EMS-covered incidents weighted by
// the configured multiplier. With the default multiplier of 1.0 it equals the
// plain coverage rate.
func weightedRate(cov coverage.Result, totalIncidents int, cfg Config) float64 {
	if totalIncidents <= 0 {
		return 0.0
	}
	var sum float64
	for _, inc := range cov.Covered {
		if cov.EMSCovered[inc.CellID] {
			sum += cfg.EMSWeightMultiplier
		} else {
			sum += 1.0
		}
	}
	return sum / float64(totalIncidents)
}

// stackingPenalty charges for every unit above the threshold in a single
// neighborhood. Units in cells with no known neighborhood are not counted.
func stackingPenalty(placements []model.Placement, neighborhoodOf func(string) string, cfg Config) float64 {
	counts := unitsPerNeighborhood(placements, neighborhoodOf)
	var penalty float64
	for _, n := range counts {
		if n > cfg.StackingThreshold {
			penalty += float64(n-cfg.StackingThreshold) * cfg.StackWeight
		}
	}
	return penalty
}

// neglectPenalty charges once per neighborhood that saw real incidents while
// none of them were covered.
func neglectPenalty(cov coverage.Result, cfg Config) float64 {
	withIncidents := make(map[string]struct{})
	withCoverage := make(map[string]struct{})
	for _, inc := range cov.Covered {
		if inc.Neighborhood != "" {
			withIncidents[inc.Neighborhood] = struct{}{}
			withCoverage[inc.Neighborhood] = struct{}{}
		}
	}
	for _, inc := range cov.Missed {
		if inc.Neighborhood != "" {
			withIncidents[inc.Neighborhood] = struct{}{}
		}
	}
	var penalty float64
	for n := range withIncidents {
		if _, ok := withCoverage[n]; !ok {
			penalty += cfg.NeglectWeight
		}
	}
	return penalty
}

// balanceBonus rewards an even spread of units across neighborhoods using the
// inverse population variance of per-neighborhood unit counts. A perfectly
// even spread earns the full BalanceBonusWeight.
func balanceBonus(placements []model.Placement, neighborhoodOf func(string) string, cfg Config) float64 {
	counts := unitsPerNeighborhood(placements, neighborhoodOf)
	if len(counts) < 2 {
		return 0.0
	}
	xs := make([]float64, 0, len(counts))
	for _, n := range counts {
		xs = append(xs, float64(n))
	}
	return cfg.BalanceBonusWeight / (1.0 + stat.PopVariance(xs, nil))
}

func unitsPerNeighborhood(placements []model.Placement, neighborhoodOf func(string) string) map[string]int {
	counts := make(map[string]int)
	for _, p := range placements {
		if n := neighborhoodOf(p.CellID); n != "" {
			counts[n]++
		}
	}
	return counts
}
