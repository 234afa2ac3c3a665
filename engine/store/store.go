// Package store persists the engine state between command invocations. The
// whole world lives in a single JSON snapshot under the datadir: the engine
// image, the wallet balances the transfer primitive settles against, and a
// height counter that stands in for block numbers.
package store

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gabrielius837/rps-contract/engine"
	"github.com/gabrielius837/rps-contract/rps"
)

const stateFile = "rps-state.json"

// State is everything a command needs to replay the world: the engine
// snapshot plus the execution environment the engine itself does not own.
type State struct {
	// Height is a monotonic counter incremented once per applied operation.
	// It feeds the engine's opaque block markers.
	Height uint64 `json:"height"`

	// Accounts holds wallet balances. Stakes are drawn from here before an
	// operation deposits them into a game, and transfers settle back here.
	Accounts map[common.Address]*big.Int `json:"accounts"`

	Engine *engine.Snapshot `json:"engine"`
}

// NewState returns a fresh state with a genesis engine owned by owner and
// governed by ctx.
func NewState(owner common.Address, ctx rps.GameContext) (*State, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return &State{
		Accounts: map[common.Address]*big.Int{},
		Engine: &engine.Snapshot{
			Owner:    owner,
			Contexts: []rps.GameContext{ctx},
			Balances: map[common.Address]*big.Int{},
		},
	}, nil
}

// Load reads the state file under datadir. A missing file is not an error;
// it returns nil so the caller can decide whether to bootstrap.
func Load(datadir string) (*State, error) {
	b, err := os.ReadFile(filepath.Join(datadir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if st.Accounts == nil {
		st.Accounts = map[common.Address]*big.Int{}
	}
	return &st, nil
}

// Save writes the state file atomically: a temp file in the same directory
// is renamed over the previous snapshot, so a crash mid-write never leaves a
// torn state behind.
func Save(datadir string, st *State) error {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return fmt.Errorf("create datadir: %w", err)
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	path := filepath.Join(datadir, stateFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Balance returns the wallet balance of addr, zero when absent.
func (st *State) Balance(addr common.Address) *big.Int {
	if bal, ok := st.Accounts[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// Deposit credits a wallet.
func (st *State) Deposit(addr common.Address, amount *big.Int) {
	bal, ok := st.Accounts[addr]
	if !ok {
		bal = new(big.Int)
		st.Accounts[addr] = bal
	}
	bal.Add(bal, amount)
}

// Draw debits a wallet, failing when the balance cannot cover the amount.
func (st *State) Draw(addr common.Address, amount *big.Int) error {
	bal, ok := st.Accounts[addr]
	if !ok || bal.Cmp(amount) < 0 {
		return engine.ErrBalance
	}
	bal.Sub(bal, amount)
	return nil
}

// Transferor returns the engine's fund-transfer primitive backed by the
// wallet table: transfers out of the engine are deposits here.
func (st *State) Transferor() engine.Transferor {
	return engine.TransferorFunc(func(to common.Address, amount *big.Int) error {
		st.Deposit(to, amount)
		return nil
	})
}
