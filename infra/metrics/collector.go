package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/dispatch-trainer/core/events"
	coremetrics "github.com/kilianp07/dispatch-trainer/core/metrics"
	"github.com/kilianp07/dispatch-trainer/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// round events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.RoundCommitted:
					rec := e.Record
					_ = sink.RecordRoundResult(coremetrics.RoundResultEvent{
						SessionID:    rec.SessionID,
						ScenarioID:   rec.ScenarioID,
						FinalScore:   rec.ScoreTotal,
						CoverageRate: rec.CoverageRate,
						LiftVsModel:  rec.Comparison.LiftVsModel,
						LiftVsRecent: rec.Comparison.LiftVsRecent,
						Time:         rec.Timestamp,
					})
				case events.PhaseChanged:
					if r, ok := sink.(coremetrics.PhaseTransitionRecorder); ok {
						_ = r.RecordPhaseTransition(coremetrics.PhaseTransitionEvent{
							SessionID: e.SessionID,
							From:      e.From,
							To:        e.To,
							Time:      time.Now(),
						})
					}
				}
			}
		}
	}()
}
