// Package rps defines the tunable rule parameters of the rock-paper-scissors
// escrow contract and the pure settlement math that depends on them.
//
// This package provides:
//   - GameContext: an immutable snapshot of the game rules (timeouts,
//     win thresholds, tip rates) pinned to a game at creation time
//   - Payout splitting of a pot into winner, owner and referral shares
//   - Preset contexts for production-like and accelerated test deployments
//
// GameContext plays the same role here that network rules play for a chain
// node: a versioned parameter set that governs every game created while it is
// the current one.
package rps

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BasisPoints is the fee denominator: 10000 bps = 100%.
const BasisPoints = 10000

// ErrTipRates is returned when the owner and referral tip rates together
// exceed the full pot.
var ErrTipRates = errors.New("tip rates must not exceed 10000 basis points")

// GameContext is an immutable snapshot of the rule parameters for a game.
// Contexts are stored in an append-only registry; games reference a registry
// index, never a copy, so appending a new context never changes the rules of
// a game already in flight.
type GameContext struct {
	// WaitingForOpponentTimeout is how long (seconds) a created game stays
	// open for acceptance before it expires and becomes claimable.
	WaitingForOpponentTimeout uint64

	// MoveTimeout is how long (seconds) after the last transition a player
	// may take to commit or reveal before the counterparty can force a claim.
	MoveTimeout uint64

	// ScoreThreshold ends the game as soon as either player reaches it.
	ScoreThreshold uint32

	// RoundThreshold ends the game once this many rounds have resolved,
	// regardless of score.
	RoundThreshold uint32

	// OwnerTipRate is the house fee in basis points taken from the pot at
	// settlement.
	OwnerTipRate uint32

	// ReferralTipRate is the referral fee in basis points taken from the pot
	// at settlement.
	ReferralTipRate uint32

	// ClaimTimeout is the point (seconds since last transition) after which
	// anyone, participant or not, may force-claim a stalled game.
	ClaimTimeout uint64
}

// Validate checks the rate-sum invariant. The sum is computed in uint64 so
// that rates near the uint32 ceiling cannot wrap past the bound. All other
// fields are unsigned and any non-negative value is legal.
func (c GameContext) Validate() error {
	if uint64(c.OwnerTipRate)+uint64(c.ReferralTipRate) > BasisPoints {
		return fmt.Errorf("%w: owner %d + referral %d", ErrTipRates, c.OwnerTipRate, c.ReferralTipRate)
	}
	return nil
}

// String returns a JSON representation for logging and config dumps.
func (c GameContext) String() string {
	b, _ := json.Marshal(&c)
	return string(b)
}

// DefaultGameContext returns the production parameter set: ten minutes to
// find an opponent, one minute per move, first to three
// wins within five rounds, a 3% house tip, a 2% referral tip, and a three-day
// open-claim window.
func DefaultGameContext() GameContext {
	return GameContext{
		WaitingForOpponentTimeout: 600,
		MoveTimeout:               60,
		ScoreThreshold:            3,
		RoundThreshold:            5,
		OwnerTipRate:              300,
		ReferralTipRate:           200,
		ClaimTimeout:              60 * 60 * 24 * 3,
	}
}

// FastGameContext returns accelerated parameters for tests and local
// experiments. Timeouts are short enough that timeout branches can be
// exercised without sleeping for minutes.
func FastGameContext() GameContext {
	cfg := DefaultGameContext()
	cfg.WaitingForOpponentTimeout = 2
	cfg.MoveTimeout = 1
	cfg.ClaimTimeout = 5
	return cfg
}
