// Package inter defines the base types shared by every layer of the
// rps-contract module: timestamps as read from the external clock, and the
// index types used to address games and rule contexts.
//
// The engine never reads the wall clock itself. Every operation receives a
// Timestamp captured by the surrounding execution environment, so the passage
// of time only becomes visible when some caller next invokes an operation.
package inter

import "time"

// Timestamp is a unix timestamp in seconds, supplied per-operation by the
// caller's execution context. It is expected to be monotonic between
// consecutive operations on the same game.
type Timestamp uint64

// FromTime converts a time.Time into a Timestamp, truncating to seconds.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Time converts the Timestamp back into a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add returns the timestamp shifted forward by d seconds.
func (t Timestamp) Add(d uint64) Timestamp {
	return t + Timestamp(d)
}

// Sub returns t - other in seconds, saturating at zero so that a clock
// reading from before the last transition never underflows.
func (t Timestamp) Sub(other Timestamp) uint64 {
	if t <= other {
		return 0
	}
	return uint64(t - other)
}

// GameID addresses a game in the game table. IDs are assigned sequentially
// starting at 0 and are never reused.
type GameID uint64

// ContextID is an index into the append-only game context registry. Each game
// pins the ContextID that was current at its creation, so a later context
// update never perturbs an in-flight game.
type ContextID uint32
