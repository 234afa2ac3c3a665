package engine

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger maps beneficiary addresses to accrued, withdrawable balances. It is
// the sink for every payout that is not an immediate wallet transfer, and the
// only resource shared across unrelated games: a beneficiary's balance spans
// every game that ever credited them.
//
// Credits from different games may run concurrently; withdrawals serialize
// against credits under the same lock. Amounts are exact big integers,
// never saturated.
type Ledger struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
}

// NewLedger returns an empty ledger. Entries are created lazily on first
// credit.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[common.Address]*big.Int)}
}

// Credit adds amount to the address's balance. A zero amount is a no-op that
// still creates the entry.
func (l *Ledger) Credit(addr common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bal, ok := l.balances[addr]
	if !ok {
		bal = new(big.Int)
		l.balances[addr] = bal
	}
	bal.Add(bal, amount)
}

// Balance returns a copy of the address's current balance; zero for
// addresses never credited.
func (l *Ledger) Balance(addr common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bal, ok := l.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// Debit removes amount from the address's balance, failing with ErrBalance
// when the amount exceeds it. A negative amount fails with ErrValue: a debit
// must never grow a balance. The balance is left untouched on failure.
func (l *Ledger) Debit(addr common.Address, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.Sign() < 0 {
		return ErrValue
	}
	bal, ok := l.balances[addr]
	if !ok || bal.Cmp(amount) < 0 {
		return ErrBalance
	}
	bal.Sub(bal, amount)
	return nil
}

// Entries calls fn for every non-zero balance. Iteration order is undefined.
// The ledger stays locked for the duration, so fn must not call back in.
func (l *Ledger) Entries(fn func(addr common.Address, balance *big.Int)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for addr, bal := range l.balances {
		if bal.Sign() != 0 {
			fn(addr, new(big.Int).Set(bal))
		}
	}
}
