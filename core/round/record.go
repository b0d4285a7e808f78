package round

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
)

// Record is the serializable summary of one committed round, one JSON line
// in the append-only gameplay log.
type Record struct {
	RoundID      string                     `json:"round_id"`
	SessionID    string                     `json:"session_id,omitempty"`
	ScenarioID   string                     `json:"scenario_id"`
	TBucket      time.Time                  `json:"t_bucket"`
	Placements   []model.Placement          `json:"placements"`
	ScoreTotal   float64                    `json:"score_total"`
	Breakdown    scoring.ScoreBreakdown     `json:"score_breakdown"`
	Comparison   scoring.BaselineComparison `json:"baseline_comparison"`
	CoverageRate float64                    `json:"coverage_rate"`
	Timestamp    time.Time                  `json:"timestamp"`
}

// Summary builds the gameplay-log record for a committed round. It fails on
// states that have not been committed yet.
func (s State) Summary(sessionID string) (Record, error) {
	res, ok := s.Result()
	if !ok {
		return Record{}, fmt.Errorf("round not committed")
	}
	return Record{
		RoundID:      uuid.NewString(),
		SessionID:    sessionID,
		ScenarioID:   s.scenario.ScenarioID,
		TBucket:      s.scenario.TBucket,
		Placements:   s.Placements(),
		ScoreTotal:   res.Breakdown.FinalScore,
		Breakdown:    res.Breakdown,
		Comparison:   res.Comparison,
		CoverageRate: res.Breakdown.CoverageRate,
		Timestamp:    res.CommittedAt,
	}, nil
}
