// Package launcher wires the command-line surface to the game engine: it
// loads the state snapshot, replays it into an engine, applies exactly one
// operation and persists the result. Serialization of operations is therefore
// the filesystem's: one command, one atomic state transition.
package launcher

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gabrielius837/rps-contract/engine"
	"github.com/gabrielius837/rps-contract/engine/store"
	"github.com/gabrielius837/rps-contract/flags"
	"github.com/gabrielius837/rps-contract/inter"
)

var app = flags.NewApp()

func init() {
	app.Flags = flags.CommonFlags()
	app.Commands = commands()
	app.Before = func(ctx *cli.Context) error {
		return setupLogging(ctx)
	}
}

// Launch runs the command line.
func Launch(args []string) error {
	return app.Run(args)
}

// world is the loaded execution environment for one operation: the persisted
// state and the engine rebuilt from it.
type world struct {
	datadir string
	state   *store.State
	eng     *engine.Engine
}

// loadWorld reads the snapshot under --datadir and replays the engine. Every
// subcommand that touches state goes through here.
func loadWorld(ctx *cli.Context) (*world, error) {
	datadir := ctx.GlobalString(flags.DataDirFlag.Name)
	st, err := store.Load(datadir)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("no state under %s, run 'rps init' first", datadir)
	}
	eng, err := engine.Restore(st.Engine,
		engine.WithSink(engine.NewLogSink(logrus.StandardLogger())),
		engine.WithTransferor(st.Transferor()),
	)
	if err != nil {
		return nil, err
	}
	return &world{datadir: datadir, state: st, eng: eng}, nil
}

// commit snapshots the engine back into the state and persists it. Called
// only after the operation succeeded, so failed operations leave the
// snapshot byte-identical.
func (w *world) commit() error {
	w.state.Height++
	w.state.Engine = w.eng.Snapshot()
	return store.Save(w.datadir, w.state)
}

// env assembles the per-operation environment: caller identity from --from,
// clock reading from --now or the wall clock, block marker from the height
// counter.
func (w *world) env(ctx *cli.Context) (engine.Env, error) {
	caller, err := addrArg(ctx, flags.FromFlag.Name)
	if err != nil {
		return engine.Env{}, err
	}
	now := inter.Timestamp(ctx.Uint64(flags.NowFlag.Name))
	if now == 0 {
		now = inter.FromTime(time.Now())
	}
	return engine.Env{
		Caller: caller,
		Time:   now,
		Block:  idx.Block(w.state.Height + 1),
	}, nil
}

func addrArg(ctx *cli.Context, name string) (common.Address, error) {
	raw := ctx.String(name)
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("--%s: %q is not a valid address", name, raw)
	}
	return common.HexToAddress(raw), nil
}

func stakeArg(ctx *cli.Context) (*big.Int, error) {
	raw := ctx.String(flags.StakeFlag.Name)
	stake, ok := new(big.Int).SetString(raw, 10)
	if !ok || stake.Sign() < 0 {
		return nil, fmt.Errorf("--stake: %q is not a valid wei amount", raw)
	}
	return stake, nil
}

func hashArg(ctx *cli.Context, name string) (common.Hash, error) {
	raw := ctx.String(name)
	b := common.FromHex(raw)
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("--%s: expected 32 hex bytes", name)
	}
	return common.BytesToHash(b), nil
}

func gameArg(ctx *cli.Context) inter.GameID {
	return inter.GameID(ctx.Uint64(flags.GameFlag.Name))
}
