package engine

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gabrielius837/rps-contract/inter"
)

// GameState is the lifecycle state of a game. Transitions are monotonic and
// one-directional except for the PendingMoves/ValidatingMoves round cycle:
//
//	WaitingForOpponent -> PendingMoves <-> ValidatingMoves -> Finished
//
// Finished is terminal; no operation ever leaves it.
type GameState uint8

const (
	WaitingForOpponent GameState = iota
	PendingMoves
	ValidatingMoves
	Finished
)

func (s GameState) String() string {
	switch s {
	case WaitingForOpponent:
		return "WaitingForOpponent"
	case PendingMoves:
		return "PendingMoves"
	case ValidatingMoves:
		return "ValidatingMoves"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Role identifies a participant's side of a game.
type Role uint8

const (
	NoRole Role = iota
	Challenger
	Opponent
)

func (r Role) String() string {
	switch r {
	case Challenger:
		return "challenger"
	case Opponent:
		return "opponent"
	default:
		return "none"
	}
}

// PlayerSlot holds one participant's per-game state. The zero hash is the
// empty sentinel for both the commitment and the reveal; both slots are reset
// at the end of every round.
type PlayerSlot struct {
	Addr       common.Address `json:"address"`
	Score      uint32         `json:"score"`
	HashedMove common.Hash    `json:"hashedMove"`
	Move       common.Hash    `json:"move"`
}

// Committed reports whether the slot holds a commitment for the current round.
func (p *PlayerSlot) Committed() bool {
	return p.HashedMove != (common.Hash{})
}

// Revealed reports whether the slot holds a reveal for the current round.
func (p *PlayerSlot) Revealed() bool {
	return p.Move != (common.Hash{})
}

func (p *PlayerSlot) clearRound() {
	p.HashedMove = common.Hash{}
	p.Move = common.Hash{}
}

// Game is the authoritative record of a single contest. All fields are always
// present; fields like the opponent slot are simply don't-care until the
// state machine reaches the states that use them. Games are never deleted and
// remain queryable after finishing.
type Game struct {
	ID         inter.GameID `json:"id"`
	Challenger PlayerSlot   `json:"challenger"`
	Opponent   PlayerSlot   `json:"opponent"`

	// Pot is the total stake held in escrow, exact to the wei. It equals
	// everything ever deposited into the game and is disbursed in full at
	// settlement.
	Pot *big.Int `json:"pot"`

	// UpdateTimestamp is the clock reading of the last meaningful
	// transition. Every timeout window is measured from it.
	UpdateTimestamp inter.Timestamp `json:"updateTimestamp"`

	// AcceptBlockNumber and ValidateBlockNumber are opaque markers of the
	// acceptance and latest round-validation events, recorded for external
	// observability only.
	AcceptBlockNumber   idx.Block `json:"acceptBlockNumber"`
	ValidateBlockNumber idx.Block `json:"validateBlockNumber"`

	// PasswordHash is the keccak256 commitment an acceptor must satisfy.
	PasswordHash common.Hash `json:"passwordHash"`

	State GameState `json:"state"`
	Round uint32    `json:"round"`

	// Referral receives the referral share at settlement; fixed at creation.
	// The zero address means no referral was named.
	Referral common.Address `json:"referral"`

	// Winner is the zero address until the game finishes.
	Winner common.Address `json:"winner"`

	// ContextID pins the rule context that was current at creation.
	ContextID inter.ContextID `json:"contextId"`
}

// RoleOf returns which side of the game addr plays, or NoRole.
func (g *Game) RoleOf(addr common.Address) Role {
	switch addr {
	case g.Challenger.Addr:
		return Challenger
	case g.Opponent.Addr:
		return Opponent
	}
	return NoRole
}

// Slot returns the player slot for the given role, or nil.
func (g *Game) Slot(role Role) *PlayerSlot {
	switch role {
	case Challenger:
		return &g.Challenger
	case Opponent:
		return &g.Opponent
	}
	return nil
}

// Other returns the counterparty slot for the given role, or nil.
func (g *Game) Other(role Role) *PlayerSlot {
	switch role {
	case Challenger:
		return &g.Opponent
	case Opponent:
		return &g.Challenger
	}
	return nil
}

// Copy returns a deep copy of the game. Pot is the only reference field.
func (g *Game) Copy() Game {
	cp := *g
	if g.Pot != nil {
		cp.Pot = new(big.Int).Set(g.Pot)
	}
	return cp
}
