// Package coverage computes which ground-truth incidents a set of unit
// placements reaches on the spatial grid.
package coverage

import (
	"github.com/kilianp07/dispatch-trainer/core/grid"
	"github.com/kilianp07/dispatch-trainer/core/model"
)

// Result describes the outcome of a coverage computation. Covered and Missed
// partition the input incidents; CoveredCells is the boolean union of every
// placement's reach.
type Result struct {
	Covered      []model.Incident
	Missed       []model.Incident
	CoveredCells map[string]struct{}
	// EMSCovered flags, per covered incident cell, whether at least one EMS
	// placement reaches it. Scoring may weight those incidents higher.
	EMSCovered map[string]bool
}

// CoveredCount returns the number of covered incidents.
func (r Result) CoveredCount() int { return len(r.Covered) }

// MissedCount returns the number of missed incidents.
func (r Result) MissedCount() int { return len(r.Missed) }

// Compute determines covered and missed incidents for the given placements.
// Coverage is the union of each placement's Manhattan diamond: overlapping
// units add no incremental covered area. An empty incident list yields an
// empty partition without error.
func Compute(placements []model.Placement, incidents []model.Incident, radius int) (Result, error) {
	res := Result{
		CoveredCells: make(map[string]struct{}),
		EMSCovered:   make(map[string]bool),
	}
	emsCells := make(map[string]struct{})
	for _, p := range placements {
		cells, err := grid.NeighborsWithinRadius(p.CellID, radius)
		if err != nil {
			return Result{}, err
		}
		for c := range cells {
			res.CoveredCells[c] = struct{}{}
			if p.Type == model.UnitEMS {
				emsCells[c] = struct{}{}
			}
		}
	}
	for _, inc := range incidents {
		if _, ok := res.CoveredCells[inc.CellID]; ok {
			res.Covered = append(res.Covered, inc)
			_, ems := emsCells[inc.CellID]
			res.EMSCovered[inc.CellID] = ems
		} else {
			res.Missed = append(res.Missed, inc)
		}
	}
	return res, nil
}

// CellUnion expands a plain cell list into its union of Manhattan diamonds.
// Baseline policies are scored through this path, as synthetic
// one-unit-per-cell placements.
func CellUnion(cells []string, radius int) (map[string]struct{}, error) {
	union := make(map[string]struct{})
	for _, c := range cells {
		nb, err := grid.NeighborsWithinRadius(c, radius)
		if err != nil {
			return nil, err
		}
		for n := range nb {
			union[n] = struct{}{}
		}
	}
	return union, nil
}
