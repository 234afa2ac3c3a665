package engine

// ClaimWindow classifies how far the timeout escalation has progressed for a
// stalled game. The decision is a pure function of elapsed time against the
// two thresholds, kept separate from the payout side effects so it can be
// tested on its own.
type ClaimWindow uint8

const (
	// ClaimTooEarly: the action timeout has not elapsed; nobody may claim.
	ClaimTooEarly ClaimWindow = iota

	// ClaimRestricted: only the participant who already fulfilled their
	// pending obligation for the current step may claim.
	ClaimRestricted

	// ClaimOpen: the claim timeout has elapsed; any caller may claim and
	// becomes the winner.
	ClaimOpen
)

// claimWindow resolves the escalation stage from the elapsed seconds since
// the game's last transition. actionTimeout is the waiting-for-opponent
// timeout while the game has no opponent and the move timeout afterwards.
//
// The thresholds are not required to be ordered: a context with
// claimTimeout <= actionTimeout skips the restricted stage entirely.
func claimWindow(elapsed uint64, actionTimeout uint64, claimTimeout uint64) ClaimWindow {
	if elapsed >= claimTimeout {
		return ClaimOpen
	}
	if elapsed >= actionTimeout {
		return ClaimRestricted
	}
	return ClaimTooEarly
}

// restrictedClaimant returns the role allowed to claim during the restricted
// window, or NoRole when no participant qualifies.
//
// While waiting for an opponent the challenger has done everything asked of
// them, so the challenger qualifies. During a round, the qualifying player is
// the one who submitted the pending item (commitment or reveal) while the
// counterparty did not; when both or neither have acted, nobody qualifies and
// the game can only be opened up by the claim timeout.
func restrictedClaimant(g *Game) Role {
	switch g.State {
	case WaitingForOpponent:
		return Challenger
	case PendingMoves:
		return solePerformer(g.Challenger.Committed(), g.Opponent.Committed())
	case ValidatingMoves:
		return solePerformer(g.Challenger.Revealed(), g.Opponent.Revealed())
	}
	return NoRole
}

func solePerformer(challengerDone bool, opponentDone bool) Role {
	switch {
	case challengerDone && !opponentDone:
		return Challenger
	case opponentDone && !challengerDone:
		return Opponent
	}
	return NoRole
}
