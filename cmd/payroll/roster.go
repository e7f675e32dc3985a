package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/payperiod-ledger/factory"
)

func newRosterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the roster in use as YAML",
		Long: `Prints the configured roster, or the built-in one, in the same format
accepted by --roster. Useful as a starting point for a custom roster file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			roster, err := loadRoster(cfg.Payroll.RosterPath)
			if err != nil {
				return err
			}
			out, err := factory.NewRosterFactory().MarshalRoster(roster)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
