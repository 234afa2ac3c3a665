package engine

import "errors"

// Operation errors. Messages keep the short upper-case revert reasons the
// original contract emitted, so callers scripting against both see the same
// vocabulary. Every error is local, synchronous and non-retryable: a failed
// operation leaves all state untouched.
var (
	// ErrIneligible: the game is in the wrong state, or the timing window
	// for the requested operation is not (or no longer) open. Also returned
	// by mutating operations addressed to a game id that was never created.
	ErrIneligible = errors.New("UNELIGIBLE")

	// ErrAddress: the caller lacks standing for this operation on this game.
	ErrAddress = errors.New("ADDRESS")

	// ErrReferral: a game cannot name its own creator as referral.
	ErrReferral = errors.New("REFERRAL")

	// ErrPassword: the password does not hash to the game's commitment.
	ErrPassword = errors.New("PASSWORD")

	// ErrValue: the stake does not match the pot exactly.
	ErrValue = errors.New("VALUE")

	// ErrSubmitted: the caller already committed or revealed this round.
	ErrSubmitted = errors.New("SUBMITTED")

	// ErrRegistered: the address already opted in as a referral.
	ErrRegistered = errors.New("REGISTERED")

	// ErrBalance: a withdrawal exceeds the caller's accrued balance.
	ErrBalance = errors.New("BALANCE")

	// ErrNotFound: a query addressed a game or context that does not exist.
	ErrNotFound = errors.New("NOTFOUND")
)
