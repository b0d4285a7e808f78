// Package gamelog persists one record per committed round to an append-only
// store. Backends share the Store interface so the service can switch
// between plain JSONL, rotated JSONL and SQLite through configuration.
package gamelog

import (
	"context"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/round"
)

// Query defines filters for retrieving round records.
type Query struct {
	Start      time.Time
	End        time.Time
	ScenarioID string
	SessionID  string
}

// matches applies the query filters to one record.
func (q Query) matches(r round.Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.ScenarioID != "" && r.ScenarioID != q.ScenarioID {
		return false
	}
	if q.SessionID != "" && r.SessionID != q.SessionID {
		return false
	}
	return true
}

// Store persists round records and supports querying.
type Store interface {
	Append(ctx context.Context, rec round.Record) error
	Query(ctx context.Context, q Query) ([]round.Record, error)
	Close() error
}
