package launcher

import (
	"fmt"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gabrielius837/rps-contract/flags"
)

// setupLogging configures the standard logrus logger from the global flags
// and, when a DSN is supplied, attaches the Sentry hook so errors are
// reported upstream.
func setupLogging(ctx *cli.Context) error {
	verbosity := ctx.GlobalInt(flags.VerbosityFlag.Name)
	if verbosity < 0 || verbosity > 5 {
		return fmt.Errorf("--%s: expected 0..5, got %d", flags.VerbosityFlag.Name, verbosity)
	}
	logrus.SetLevel(logrus.Level(verbosity))

	if dsn := ctx.GlobalString(flags.SentryDSNFlag.Name); dsn != "" {
		hook, err := logrus_sentry.NewSentryHook(dsn, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		logrus.AddHook(hook)
	}
	return nil
}
