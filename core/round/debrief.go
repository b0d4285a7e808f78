package round

import "fmt"

// DebriefLines produces the deterministic coaching feedback for a committed
// result. Lines are ordered: coverage tier, baseline comparisons, penalties,
// missed incidents. The UI layer decides how to render them.
func DebriefLines(res Result) []string {
	b := res.Breakdown
	c := res.Comparison
	lines := make([]string, 0, 6)

	switch {
	case b.CoverageRate >= 0.5:
		lines = append(lines, "Strong coverage: you covered over half the incidents that occurred.")
	case b.CoverageRate >= 0.25:
		lines = append(lines, "Moderate coverage: you covered some incidents but there's room for improvement.")
	default:
		lines = append(lines, "Low coverage: most incidents were missed. Consider broader deployment patterns.")
	}

	if c.LiftVsModel > 0 {
		lines = append(lines, fmt.Sprintf("Beat the model: you outperformed the model prediction by %+.1f%%.", c.LiftVsModel*100))
	} else if c.LiftVsModel < 0 {
		lines = append(lines, fmt.Sprintf("Below model: the model prediction would have covered %.1f%% more incidents.", -c.LiftVsModel*100))
	}
	if c.LiftVsRecent > 0 {
		lines = append(lines, fmt.Sprintf("Beat recent policy: you outperformed the reactive strategy by %+.1f%%.", c.LiftVsRecent*100))
	} else if c.LiftVsRecent < 0 {
		lines = append(lines, fmt.Sprintf("Below recent policy: deploying to recent activity would have covered %.1f%% more.", -c.LiftVsRecent*100))
	}

	if b.StackingPenalty > 0 {
		lines = append(lines, fmt.Sprintf("Stacking penalty: -%.1f points for concentrating units in the same neighborhood.", b.StackingPenalty))
	}
	if b.NeglectPenalty > 0 {
		lines = append(lines, fmt.Sprintf("Neglect penalty: -%.1f points for leaving neighborhoods with incidents uncovered.", b.NeglectPenalty))
	}
	if b.MissedCount > 0 {
		lines = append(lines, fmt.Sprintf("Missed incidents: %d incidents occurred in uncovered areas.", b.MissedCount))
	}
	return lines
}
