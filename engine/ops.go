package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gabrielius837/rps-contract/inter"
	"github.com/gabrielius837/rps-contract/rps/move"
)

// HashPassword derives the acceptance commitment from a clear password, the
// same way the acceptor's password is checked: keccak256 over its UTF-8
// bytes.
func HashPassword(password string) common.Hash {
	return crypto.Keccak256Hash([]byte(password))
}

// StartGame creates a new game staked with stake, which the execution
// environment has already collected from the caller. The caller becomes the
// challenger; referral names the beneficiary of the referral share and must
// not be the caller themselves. The new game pins the currently active rule
// context.
func (e *Engine) StartGame(env Env, referral common.Address, passwordHash common.Hash, stake *big.Int) (inter.GameID, error) {
	if stake.Sign() < 0 {
		return 0, ErrValue
	}
	if referral == env.Caller {
		return 0, ErrReferral
	}

	id := inter.GameID(len(e.games))
	g := &Game{
		ID:              id,
		Challenger:      PlayerSlot{Addr: env.Caller},
		Pot:             new(big.Int).Set(stake),
		UpdateTimestamp: env.Time,
		PasswordHash:    passwordHash,
		State:           WaitingForOpponent,
		Referral:        referral,
		ContextID:       inter.ContextID(len(e.contexts) - 1),
	}
	e.games = append(e.games, g)
	e.sink.GameUpdated(id, WaitingForOpponent)
	return id, nil
}

// AcceptGame fills the opponent slot of an open game. The acceptance window
// closes WaitingForOpponentTimeout seconds after creation; the password must
// hash to the stored commitment and the stake must equal the pot exactly, so
// the pot doubles.
func (e *Engine) AcceptGame(env Env, id inter.GameID, password string, stake *big.Int) error {
	g, ctx, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State != WaitingForOpponent {
		return ErrIneligible
	}
	if env.Time.Sub(g.UpdateTimestamp) >= ctx.WaitingForOpponentTimeout {
		return ErrIneligible
	}
	if env.Caller == g.Challenger.Addr {
		return ErrAddress
	}
	if HashPassword(password) != g.PasswordHash {
		return ErrPassword
	}
	if stake.Cmp(g.Pot) != 0 {
		return ErrValue
	}

	g.Opponent.Addr = env.Caller
	g.Pot.Add(g.Pot, stake)
	g.State = PendingMoves
	g.UpdateTimestamp = env.Time
	g.AcceptBlockNumber = env.Block
	e.sink.GameUpdated(id, PendingMoves)
	return nil
}

// AbortGame lets the challenger cancel a game nobody accepted. The whole pot
// is refunded through the external transfer primitive, bypassing the ledger;
// a failed transfer fails the abort with the game untouched.
func (e *Engine) AbortGame(env Env, id inter.GameID) error {
	g, _, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State != WaitingForOpponent {
		return ErrIneligible
	}
	if env.Caller != g.Challenger.Addr {
		return ErrAddress
	}
	if err := e.transfer.Transfer(g.Challenger.Addr, new(big.Int).Set(g.Pot)); err != nil {
		return err
	}

	g.Winner = g.Challenger.Addr
	g.State = Finished
	g.UpdateTimestamp = env.Time
	e.sink.GameUpdated(id, Finished)
	return nil
}

// CommitMove stores the caller's move commitment for the current round. Once
// both sides have committed the game advances to ValidatingMoves and the
// reveal phase begins.
func (e *Engine) CommitMove(env Env, id inter.GameID, hashedMove common.Hash) error {
	g, _, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State != PendingMoves {
		return ErrIneligible
	}
	role := g.RoleOf(env.Caller)
	if role == NoRole {
		return ErrAddress
	}
	slot := g.Slot(role)
	if slot.Committed() {
		return ErrSubmitted
	}

	slot.HashedMove = hashedMove
	if g.Other(role).Committed() {
		g.State = ValidatingMoves
		g.UpdateTimestamp = env.Time
		e.sink.GameUpdated(id, ValidatingMoves)
	}
	return nil
}

// RevealMove opens the caller's commitment with the reveal blob. The reveal
// must hash back to the stored commitment; a verified reveal may still decode
// to an illegal move, which loses the round by the codec's rules. When both
// reveals are in, the round resolves.
func (e *Engine) RevealMove(env Env, id inter.GameID, reveal common.Hash) error {
	g, ctx, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State != ValidatingMoves {
		return ErrIneligible
	}
	role := g.RoleOf(env.Caller)
	if role == NoRole {
		return ErrAddress
	}
	slot := g.Slot(role)
	if slot.Revealed() {
		return ErrSubmitted
	}
	if _, err := move.Open(reveal, slot.HashedMove); err != nil {
		return err
	}

	slot.Move = reveal
	if !g.Other(role).Revealed() {
		return nil
	}

	// Both reveals are in: score the round and either finish or loop back
	// into the next commit phase.
	challengerMove := move.Decode(g.Challenger.Move)
	opponentMove := move.Decode(g.Opponent.Move)
	switch move.Outcome(challengerMove, opponentMove) {
	case move.FirstWins:
		g.Challenger.Score++
	case move.SecondWins:
		g.Opponent.Score++
	}

	e.sink.ValidatedMoves(id, g.Round, challengerMove, opponentMove)
	g.Challenger.clearRound()
	g.Opponent.clearRound()
	g.Round++
	g.ValidateBlockNumber = env.Block

	if g.Challenger.Score >= ctx.ScoreThreshold ||
		g.Opponent.Score >= ctx.ScoreThreshold ||
		g.Round >= ctx.RoundThreshold {
		// The better score takes the pot; the challenger holds ties at the
		// round threshold.
		winner := g.Challenger.Addr
		if g.Opponent.Score > g.Challenger.Score {
			winner = g.Opponent.Addr
		}
		e.settle(g, ctx, env, winner)
		return nil
	}

	g.State = PendingMoves
	g.UpdateTimestamp = env.Time
	e.sink.GameUpdated(id, PendingMoves)
	return nil
}

// Surrender concedes an in-progress game; the counterparty wins the pot.
func (e *Engine) Surrender(env Env, id inter.GameID) error {
	g, ctx, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State != PendingMoves && g.State != ValidatingMoves {
		return ErrIneligible
	}
	role := g.RoleOf(env.Caller)
	if role == NoRole {
		return ErrAddress
	}

	e.settle(g, ctx, env, g.Other(role).Addr)
	return nil
}

// ForceClaim resolves a stalled game through the timeout escalation. Before
// the action timeout nobody may claim; between the action and claim timeouts
// only the participant who already fulfilled their pending obligation may,
// and after the claim timeout anyone may. The caller is always the one
// declared winner.
func (e *Engine) ForceClaim(env Env, id inter.GameID) error {
	g, ctx, err := e.game(id)
	if err != nil {
		return err
	}
	if g.State == Finished {
		return ErrIneligible
	}

	actionTimeout := ctx.MoveTimeout
	if g.State == WaitingForOpponent {
		actionTimeout = ctx.WaitingForOpponentTimeout
	}

	switch claimWindow(env.Time.Sub(g.UpdateTimestamp), actionTimeout, ctx.ClaimTimeout) {
	case ClaimTooEarly:
		return ErrIneligible
	case ClaimRestricted:
		eligible := restrictedClaimant(g)
		if eligible == NoRole || g.Slot(eligible).Addr != env.Caller {
			return ErrAddress
		}
	case ClaimOpen:
		// Anyone, participant or not.
	}

	e.settle(g, ctx, env, env.Caller)
	return nil
}
