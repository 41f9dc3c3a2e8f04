package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <batter>",
	Short: "Batter headline stats against the match-context baseline",
	Long: `Print balls, runs, average, strike rate, control, dot, boundary and aerial
rates for the batter under the active filters, next to the same figures for
every other batter in the same fixtures and innings. The effective columns
(eSR, eControl, eAerial) are the batter's value minus the baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	addFilterFlags(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	report.PrintBatterSummary(os.Stdout, e.Summary(args[0], p))
	return nil
}
