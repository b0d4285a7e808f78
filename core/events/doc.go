// Package events defines the round lifecycle events emitted on the event bus.
//
// Available event types:
//   - RoundStarted: a session opened a new round
//   - PhaseChanged: a round moved to the next phase
//   - RoundCommitted: a round was scored and recorded
package events
