package main

import (
	"github.com/spf13/cobra"
)

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the current pay period report",
		Long: `Prints every employee's preset and added hours for the pay period
containing today, followed by a name/total summary and the period dates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			ledger, err := buildLedger(cmd.Context(), cfg.Payroll, logger)
			if err != nil {
				return err
			}
			report, err := ledger.Report(cmd.Context())
			if err != nil {
				return err
			}
			return report.WriteText(cmd.OutOrStdout())
		},
	}
}
