package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gabrielius837/rps-contract/engine"
	"github.com/gabrielius837/rps-contract/engine/store"
	"github.com/gabrielius837/rps-contract/flags"
	"github.com/gabrielius837/rps-contract/rps"
	"github.com/gabrielius837/rps-contract/rps/move"
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:  "init",
			Usage: "Initialize a fresh state snapshot",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "owner", Usage: "Owner address receiving house fees"},
				cli.BoolFlag{Name: "fast", Usage: "Use the accelerated context preset"},
			},
			Action: initAction,
		},
		{
			Name:  "fund",
			Usage: "Credit a wallet (development helper)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "to", Usage: "Recipient address"},
				flags.StakeFlag,
			},
			Action: fundAction,
		},
		{
			Name:  "start",
			Usage: "Create a new game with an escrowed stake",
			Flags: []cli.Flag{
				flags.FromFlag, flags.NowFlag, flags.StakeFlag, flags.PasswordFlag,
				cli.StringFlag{Name: "referral", Usage: "Referral beneficiary address (optional)"},
			},
			Action: startAction,
		},
		{
			Name:   "accept",
			Usage:  "Accept an open game, matching its stake",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag, flags.GameFlag, flags.StakeFlag, flags.PasswordFlag},
			Action: acceptAction,
		},
		{
			Name:   "abort",
			Usage:  "Abort an unaccepted game and refund the stake",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag, flags.GameFlag},
			Action: abortAction,
		},
		{
			Name:  "commit",
			Usage: "Seal a move and submit its commitment",
			Flags: []cli.Flag{
				flags.FromFlag, flags.NowFlag, flags.GameFlag,
				cli.StringFlag{Name: "move", Usage: "Move to seal: rock, paper or scissors"},
			},
			Action: commitAction,
		},
		{
			Name:  "reveal",
			Usage: "Reveal a previously committed move",
			Flags: []cli.Flag{
				flags.FromFlag, flags.NowFlag, flags.GameFlag,
				cli.StringFlag{Name: "blob", Usage: "Reveal blob printed by commit (32 hex bytes)"},
			},
			Action: revealAction,
		},
		{
			Name:   "surrender",
			Usage:  "Concede an in-progress game",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag, flags.GameFlag},
			Action: surrenderAction,
		},
		{
			Name:   "claim",
			Usage:  "Force-claim a stalled game after its timeout",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag, flags.GameFlag},
			Action: claimAction,
		},
		{
			Name:   "withdraw",
			Usage:  "Withdraw accrued winnings to the wallet",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag, flags.StakeFlag},
			Action: withdrawAction,
		},
		{
			Name:   "register-referral",
			Usage:  "Opt in as a referral beneficiary",
			Flags:  []cli.Flag{flags.FromFlag, flags.NowFlag},
			Action: registerReferralAction,
		},
		{
			Name:  "append-context",
			Usage: "Append a new rule context (owner only)",
			Flags: []cli.Flag{
				flags.FromFlag, flags.NowFlag,
				cli.Uint64Flag{Name: "waiting-timeout", Usage: "Seconds an open game stays acceptable", Value: 600},
				cli.Uint64Flag{Name: "move-timeout", Usage: "Seconds allowed per commit/reveal", Value: 60},
				cli.UintFlag{Name: "score-threshold", Usage: "Score that ends the game", Value: 3},
				cli.UintFlag{Name: "round-threshold", Usage: "Round count that ends the game", Value: 5},
				cli.UintFlag{Name: "owner-tip", Usage: "House fee in basis points", Value: 300},
				cli.UintFlag{Name: "referral-tip", Usage: "Referral fee in basis points", Value: 200},
				cli.Uint64Flag{Name: "claim-timeout", Usage: "Seconds until anyone may claim", Value: 60 * 60 * 24 * 3},
			},
			Action: appendContextAction,
		},
		{
			Name:   "show",
			Usage:  "Print a game and its pinned rule context",
			Flags:  []cli.Flag{flags.GameFlag},
			Action: showAction,
		},
		{
			Name:  "balance",
			Usage: "Print the ledger and wallet balances of an address",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "addr", Usage: "Address to inspect"},
			},
			Action: balanceAction,
		},
	}
}

func initAction(ctx *cli.Context) error {
	datadir := ctx.GlobalString(flags.DataDirFlag.Name)
	if existing, err := store.Load(datadir); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("state already exists under %s", datadir)
	}

	owner, err := addrArg(ctx, "owner")
	if err != nil {
		return err
	}
	gameCtx := rps.DefaultGameContext()
	if ctx.Bool("fast") {
		gameCtx = rps.FastGameContext()
	}
	st, err := store.NewState(owner, gameCtx)
	if err != nil {
		return err
	}
	if err := store.Save(datadir, st); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"owner": owner.Hex(), "datadir": datadir}).Info("state initialized")
	return nil
}

func fundAction(ctx *cli.Context) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	to, err := addrArg(ctx, "to")
	if err != nil {
		return err
	}
	amount, err := stakeArg(ctx)
	if err != nil {
		return err
	}
	w.state.Deposit(to, amount)
	return w.commit()
}

func startAction(ctx *cli.Context) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	env, err := w.env(ctx)
	if err != nil {
		return err
	}
	stake, err := stakeArg(ctx)
	if err != nil {
		return err
	}
	var referralAddr common.Address
	if ctx.String("referral") != "" {
		if referralAddr, err = addrArg(ctx, "referral"); err != nil {
			return err
		}
	}

	// The stake leaves the wallet before the game exists, like value sent
	// along with the call.
	if err := w.state.Draw(env.Caller, stake); err != nil {
		return err
	}
	id, err := w.eng.StartGame(env, referralAddr, engine.HashPassword(ctx.String(flags.PasswordFlag.Name)), stake)
	if err != nil {
		return err
	}
	if err := w.commit(); err != nil {
		return err
	}
	fmt.Fprintf(app.Writer, "game %d created\n", id)
	return nil
}

func acceptAction(ctx *cli.Context) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	env, err := w.env(ctx)
	if err != nil {
		return err
	}
	stake, err := stakeArg(ctx)
	if err != nil {
		return err
	}
	if err := w.state.Draw(env.Caller, stake); err != nil {
		return err
	}
	if err := w.eng.AcceptGame(env, gameArg(ctx), ctx.String(flags.PasswordFlag.Name), stake); err != nil {
		return err
	}
	return w.commit()
}

func abortAction(ctx *cli.Context) error {
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.AbortGame(env, gameArg(ctx))
	})
}

func commitAction(ctx *cli.Context) error {
	var m move.Move
	switch ctx.String("move") {
	case "rock":
		m = move.Rock
	case "paper":
		m = move.Paper
	case "scissors":
		m = move.Scissors
	default:
		return fmt.Errorf("--move: expected rock, paper or scissors")
	}
	reveal, commitment, err := move.Seal(m, nil)
	if err != nil {
		return err
	}
	if err := runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.CommitMove(env, gameArg(ctx), commitment)
	}); err != nil {
		return err
	}
	// The blob is the player's secret until the reveal phase; losing it
	// forfeits the round to the move timeout.
	fmt.Fprintf(app.Writer, "committed; reveal blob: %s\n", reveal.Hex())
	return nil
}

func revealAction(ctx *cli.Context) error {
	blob, err := hashArg(ctx, "blob")
	if err != nil {
		return err
	}
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.RevealMove(env, gameArg(ctx), blob)
	})
}

func surrenderAction(ctx *cli.Context) error {
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.Surrender(env, gameArg(ctx))
	})
}

func claimAction(ctx *cli.Context) error {
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.ForceClaim(env, gameArg(ctx))
	})
}

func withdrawAction(ctx *cli.Context) error {
	amount, err := stakeArg(ctx)
	if err != nil {
		return err
	}
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.Withdraw(env, amount)
	})
}

func registerReferralAction(ctx *cli.Context) error {
	return runOp(ctx, func(w *world, env engine.Env) error {
		return w.eng.RegisterReferral(env)
	})
}

func appendContextAction(ctx *cli.Context) error {
	gameCtx := rps.GameContext{
		WaitingForOpponentTimeout: ctx.Uint64("waiting-timeout"),
		MoveTimeout:               ctx.Uint64("move-timeout"),
		ScoreThreshold:            uint32(ctx.Uint("score-threshold")),
		RoundThreshold:            uint32(ctx.Uint("round-threshold")),
		OwnerTipRate:              uint32(ctx.Uint("owner-tip")),
		ReferralTipRate:           uint32(ctx.Uint("referral-tip")),
		ClaimTimeout:              ctx.Uint64("claim-timeout"),
	}
	return runOp(ctx, func(w *world, env engine.Env) error {
		id, err := w.eng.AppendContext(env, gameCtx)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Writer, "context %d is now current\n", id)
		return nil
	})
}

func showAction(ctx *cli.Context) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	game, gameCtx, err := w.eng.GetGame(gameArg(ctx))
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Writer, "game %d: state=%s round=%d pot=%s winner=%s\n",
		game.ID, game.State, game.Round, game.Pot, game.Winner.Hex())
	fmt.Fprintf(app.Writer, "  challenger %s score=%d\n", game.Challenger.Addr.Hex(), game.Challenger.Score)
	fmt.Fprintf(app.Writer, "  opponent   %s score=%d\n", game.Opponent.Addr.Hex(), game.Opponent.Score)
	fmt.Fprintf(app.Writer, "  context    %s\n", gameCtx)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	addr, err := addrArg(ctx, "addr")
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Writer, "ledger: %s wei\nwallet: %s wei\n",
		w.eng.Ledger().Balance(addr), w.state.Balance(addr))
	return nil
}

// runOp is the common shape of a state-mutating subcommand: load, build env,
// apply, persist on success.
func runOp(ctx *cli.Context, op func(w *world, env engine.Env) error) error {
	w, err := loadWorld(ctx)
	if err != nil {
		return err
	}
	env, err := w.env(ctx)
	if err != nil {
		return err
	}
	if err := op(w, env); err != nil {
		return err
	}
	return w.commit()
}
