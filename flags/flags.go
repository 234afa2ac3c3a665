// Package flags declares the command-line flags shared across the rps
// command tree.
package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns a cli application skeleton with the common metadata set.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "rps"
	app.Usage = "best-of-N rock-paper-scissors with escrowed stakes"
	app.Version = "1.0.0"
	app.Writer = os.Stdout
	return app
}

var (
	// DataDirFlag points at the directory holding the state snapshot.
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Directory for the state snapshot",
		Value: defaultDataDir(),
	}

	// FromFlag identifies the caller of an operation. Every operation is
	// bound to an authenticated caller; here identity is a hex address.
	FromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "Caller address (0x-prefixed hex)",
	}

	// NowFlag overrides the clock reading for an operation. Defaults to the
	// wall clock; an explicit value makes timeout scenarios reproducible.
	NowFlag = cli.Uint64Flag{
		Name:  "now",
		Usage: "Unix timestamp to run the operation at (default: current time)",
	}

	// VerbosityFlag sets the log level, geth-style 0..5.
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=panic, 1=fatal, 2=error, 3=warn, 4=info, 5=debug",
		Value: 4,
	}

	// SentryDSNFlag enables error reporting to Sentry when non-empty.
	SentryDSNFlag = cli.StringFlag{
		Name:  "sentry.dsn",
		Usage: "Sentry DSN for error reporting (disabled when empty)",
	}

	// GameFlag addresses a game by id.
	GameFlag = cli.Uint64Flag{
		Name:  "game",
		Usage: "Game id",
	}

	// StakeFlag carries a wei-denominated amount.
	StakeFlag = cli.StringFlag{
		Name:  "stake",
		Usage: "Stake amount in wei",
	}

	// PasswordFlag carries the clear acceptance password; it is hashed
	// before it ever reaches the state machine.
	PasswordFlag = cli.StringFlag{
		Name:  "password",
		Usage: "Game password",
	}
)

// CommonFlags apply to every subcommand.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		DataDirFlag,
		VerbosityFlag,
		SentryDSNFlag,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rps"
	}
	return home + "/.rps"
}
