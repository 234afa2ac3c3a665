// Package engine implements the game state machine and its settlement logic:
// lifecycle transitions, the commit-reveal move protocol, round scoring,
// timeout-triggered forced resolution and reward distribution.
//
// The engine executes strictly serialized, atomic operations. Every operation
// either fully applies (state mutation, payout credit, notification) or fully
// fails with no observable effect. The engine never sleeps and never reads a
// clock: each operation carries an Env with the caller identity and the
// current time as captured by the surrounding execution environment, and
// timeouts are plain comparisons against that reading. Serialization of calls
// against the same game id is the caller's responsibility; the ledger alone
// tolerates concurrent access because balances span unrelated games.
package engine

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gabrielius837/rps-contract/inter"
	"github.com/gabrielius837/rps-contract/rps"
)

// Env carries the per-operation facts the engine consumes but never
// produces: an authenticated caller, an external clock reading and an opaque
// block marker for observability fields.
type Env struct {
	Caller common.Address
	Time   inter.Timestamp
	Block  idx.Block
}

// Transferor is the external fund-transfer primitive. It is used by AbortGame
// to refund the challenger directly and by Withdraw to pay out accrued
// balances; a failed transfer aborts the whole operation.
type Transferor interface {
	Transfer(to common.Address, amount *big.Int) error
}

// TransferorFunc adapts a function to the Transferor interface.
type TransferorFunc func(to common.Address, amount *big.Int) error

func (f TransferorFunc) Transfer(to common.Address, amount *big.Int) error {
	return f(to, amount)
}

// Engine orchestrates every player-facing operation against the game table,
// the context registry, the referral registry and the ledger. All collections
// are explicit state owned by the engine instance; nothing is a process-wide
// singleton, so tests construct a fresh engine per case.
type Engine struct {
	owner     common.Address
	contexts  []rps.GameContext
	games     []*Game
	referrals map[common.Address]bool
	ledger    *Ledger
	sink      EventSink
	transfer  Transferor
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSink routes state-change events to the given sink.
func WithSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithTransferor installs the external fund-transfer primitive.
func WithTransferor(t Transferor) Option {
	return func(e *Engine) { e.transfer = t }
}

// New constructs an engine owned by owner with first as the initial game
// context. Construction fails if the context violates the tip-rate
// invariant, mirroring the deployment refusing bad definitions.
func New(owner common.Address, first rps.GameContext, opts ...Option) (*Engine, error) {
	if err := first.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		owner:     owner,
		contexts:  []rps.GameContext{first},
		referrals: make(map[common.Address]bool),
		ledger:    NewLedger(),
		sink:      nopSink{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.transfer == nil {
		e.transfer = TransferorFunc(func(common.Address, *big.Int) error { return nil })
	}
	return e, nil
}

// Owner returns the administrative owner fixed at construction.
func (e *Engine) Owner() common.Address {
	return e.owner
}

// Ledger exposes the accrued-balance ledger.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// CurrentContext returns the context every newly created game will pin.
func (e *Engine) CurrentContext() rps.GameContext {
	return e.contexts[len(e.contexts)-1]
}

// Context returns the context stored at the given registry index.
func (e *Engine) Context(id inter.ContextID) (rps.GameContext, error) {
	if int(id) >= len(e.contexts) {
		return rps.GameContext{}, ErrNotFound
	}
	return e.contexts[id], nil
}

// AppendContext validates and appends a new rule context, which becomes the
// current one for all subsequent game creations. Owner-only.
func (e *Engine) AppendContext(env Env, ctx rps.GameContext) (inter.ContextID, error) {
	if env.Caller != e.owner {
		return 0, ErrAddress
	}
	if err := ctx.Validate(); err != nil {
		return 0, err
	}
	e.contexts = append(e.contexts, ctx)
	return inter.ContextID(len(e.contexts) - 1), nil
}

// RegisterReferral opts the caller in as a referral beneficiary.
func (e *Engine) RegisterReferral(env Env) error {
	if e.referrals[env.Caller] {
		return ErrRegistered
	}
	e.referrals[env.Caller] = true
	e.sink.NewReferral(env.Caller)
	return nil
}

// IsReferral reports whether the address has opted in as a referral.
func (e *Engine) IsReferral(addr common.Address) bool {
	return e.referrals[addr]
}

// GameCount returns the number of games ever created.
func (e *Engine) GameCount() int {
	return len(e.games)
}

// GetGame returns a copy of the game together with its pinned context.
// Queries on unknown ids fail with ErrNotFound.
func (e *Engine) GetGame(id inter.GameID) (Game, rps.GameContext, error) {
	if int(id) >= len(e.games) {
		return Game{}, rps.GameContext{}, ErrNotFound
	}
	g := e.games[id]
	return g.Copy(), e.contexts[g.ContextID], nil
}

// game resolves a mutating operation's target. Unknown ids fail with
// ErrIneligible: to a mutating call a game that was never created is
// indistinguishable from one it has no business touching.
func (e *Engine) game(id inter.GameID) (*Game, rps.GameContext, error) {
	if int(id) >= len(e.games) {
		return nil, rps.GameContext{}, ErrIneligible
	}
	g := e.games[id]
	return g, e.contexts[g.ContextID], nil
}

// Withdraw debits amount from the caller's accrued balance and transfers it
// out through the external primitive. The debit is rolled back if the
// transfer fails, keeping the operation atomic.
func (e *Engine) Withdraw(env Env, amount *big.Int) error {
	if err := e.ledger.Debit(env.Caller, amount); err != nil {
		return err
	}
	if err := e.transfer.Transfer(env.Caller, amount); err != nil {
		e.ledger.Credit(env.Caller, amount)
		return err
	}
	return nil
}

// settle finishes the game in favor of winner: the pot is split per the
// pinned context and credited to the ledger, state moves to Finished and the
// transition is announced. A zero referral address redirects the referral
// share to the owner so the pot is always disbursed in full.
func (e *Engine) settle(g *Game, ctx rps.GameContext, env Env, winner common.Address) {
	payout := rps.SplitPot(g.Pot, ctx.OwnerTipRate, ctx.ReferralTipRate)

	e.ledger.Credit(winner, payout.Winner)
	e.ledger.Credit(e.owner, payout.Owner)
	if g.Referral != (common.Address{}) {
		e.ledger.Credit(g.Referral, payout.Referral)
	} else {
		e.ledger.Credit(e.owner, payout.Referral)
	}

	g.Winner = winner
	g.State = Finished
	g.UpdateTimestamp = env.Time
	e.sink.GameUpdated(g.ID, Finished)
}
