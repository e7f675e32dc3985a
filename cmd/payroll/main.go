/*
main.go - Application entry point

PURPOSE:
  Command-line front end for the pay-period ledger. Builds the logger,
  loads configuration and the roster, and dispatches to a subcommand.

COMMANDS:
  serve    Run the HTTP API and the background period scheduler
  report   Print the current period report as plain text
  roster   Print the roster in use as YAML

CONFIGURATION:
  Environment (optionally seeded from .env, see config/config.go), then
  flags. A flag that is set always wins.

EXAMPLES:
  # Serve with the built-in roster
  payroll serve --port 3000

  # Report with a custom roster and weekly periods
  payroll report --roster ./roster.yaml --period-length 7

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/warp/payperiod-ledger/config"
	"github.com/warp/payperiod-ledger/factory"
	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

var logger *zap.Logger

// options holds flag values. A fresh set is bound per command tree.
type options struct {
	verbose         bool
	port            int
	rosterPath      string
	anchorDate      string
	periodLength    int
	advanceInterval time.Duration

	cfg *config.Config // environment with flags applied, set before any subcommand runs
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "payroll",
		Short:         "Pay-period hours ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.cfg, err = loadConfig(cmd, opts); err != nil {
				return err
			}

			// Initialize logger
			zcfg := zap.NewProductionConfig()
			if opts.verbose || strings.EqualFold(opts.cfg.App.LogLevel, "debug") {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err = zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.rosterPath, "roster", "", "Roster file, YAML or JSON (default: built-in roster)")
	root.PersistentFlags().StringVar(&opts.anchorDate, "anchor", config.DefaultAnchorDate, "First day of pay period 0 (MM/DD/YYYY)")
	root.PersistentFlags().IntVar(&opts.periodLength, "period-length", generic.DefaultPayPeriodLength, "Pay period length in days")

	serve := newServeCmd(opts)
	serve.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "HTTP server port")
	serve.Flags().DurationVar(&opts.advanceInterval, "advance-interval", config.DefaultAdvanceInterval, "How often to check for a new period (0 disables)")

	root.AddCommand(serve, newReportCmd(opts), newRosterCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("roster") {
		cfg.Payroll.RosterPath = opts.rosterPath
	}
	if flags.Changed("anchor") {
		cfg.Payroll.AnchorDate = opts.anchorDate
	}
	if flags.Changed("period-length") {
		cfg.Payroll.PeriodLength = strconv.Itoa(opts.periodLength)
	}
	if flags.Changed("port") {
		cfg.App.Port = opts.port
	}
	if flags.Changed("advance-interval") {
		cfg.App.AdvanceInterval = opts.advanceInterval
	}
	return cfg, nil
}

// loadRoster returns the roster file's employees, or the built-in roster
// when no file is configured.
func loadRoster(path string) (*payroll.Roster, error) {
	if path == "" {
		return payroll.DefaultRoster(), nil
	}
	return factory.NewRosterFactory().LoadRoster(path)
}

// buildLedger never fails outright: any configuration problem yields a
// degraded ledger together with the error.
func buildLedger(ctx context.Context, cfg config.PayrollConfig, log *zap.Logger) (*payroll.Ledger, error) {
	roster, err := loadRoster(cfg.RosterPath)
	if err != nil {
		return payroll.Unavailable(err), fmt.Errorf("%w: %w", payroll.ErrLedgerUnavailable, err)
	}
	period, err := cfg.PayPeriod()
	if err != nil {
		return payroll.Unavailable(err), fmt.Errorf("%w: %w", payroll.ErrLedgerUnavailable, err)
	}
	return payroll.NewLedger(ctx, payroll.Config{
		Period: period,
		Roster: roster,
		Logger: log,
	})
}
