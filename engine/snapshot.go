package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gabrielius837/rps-contract/rps"
)

// Snapshot is a plain-data image of the entire engine state: every game, the
// full context registry, the referral set and the ledger balances. It exists
// so an execution environment can persist the engine between operations and
// rebuild it for the next one.
type Snapshot struct {
	Owner     common.Address              `json:"owner"`
	Contexts  []rps.GameContext           `json:"contexts"`
	Games     []Game                      `json:"games"`
	Referrals []common.Address            `json:"referrals"`
	Balances  map[common.Address]*big.Int `json:"balances"`
}

// Snapshot captures the engine's current state. Games and balances are deep
// copies; mutating the snapshot never disturbs the engine.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Owner:    e.owner,
		Contexts: append([]rps.GameContext(nil), e.contexts...),
		Games:    make([]Game, len(e.games)),
		Balances: make(map[common.Address]*big.Int),
	}
	for i, g := range e.games {
		s.Games[i] = g.Copy()
	}
	for addr := range e.referrals {
		s.Referrals = append(s.Referrals, addr)
	}
	e.ledger.Entries(func(addr common.Address, balance *big.Int) {
		s.Balances[addr] = balance
	})
	return s
}

// Restore rebuilds an engine from a snapshot. The snapshot must carry at
// least one context; an engine cannot exist without a current one.
func Restore(s *Snapshot, opts ...Option) (*Engine, error) {
	if len(s.Contexts) == 0 {
		return nil, ErrNotFound
	}
	e, err := New(s.Owner, s.Contexts[0], opts...)
	if err != nil {
		return nil, err
	}
	e.contexts = append([]rps.GameContext(nil), s.Contexts...)
	for i := range s.Games {
		g := s.Games[i].Copy()
		e.games = append(e.games, &g)
	}
	for _, addr := range s.Referrals {
		e.referrals[addr] = true
	}
	for addr, bal := range s.Balances {
		e.ledger.Credit(addr, bal)
	}
	return e, nil
}
