// Package export renders round records for offline analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/round"
)

// WriteJSON writes the round records to w in JSON format.
func WriteJSON(w io.Writer, records []round.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes one row per round record with a fixed header.
func WriteCSV(w io.Writer, records []round.Record) error {
	cw := csv.NewWriter(w)
	header := []string{
		"round_id", "session_id", "scenario_id", "t_bucket", "timestamp",
		"score_total", "coverage_rate", "covered", "missed",
		"lift_vs_recent", "lift_vs_model",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.RoundID,
			r.SessionID,
			r.ScenarioID,
			r.TBucket.Format(time.RFC3339),
			r.Timestamp.Format(time.RFC3339),
			formatFloat(r.ScoreTotal),
			formatFloat(r.CoverageRate),
			strconv.Itoa(r.Breakdown.CoveredCount),
			strconv.Itoa(r.Breakdown.MissedCount),
			formatFloat(r.Comparison.LiftVsRecent),
			formatFloat(r.Comparison.LiftVsModel),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
