package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var shotsCmd = &cobra.Command{
	Use:   "shots <batter>",
	Short: "Per-shot stats and run-expectancy risk/reward",
	Long: `Print the batter's stats per shot type, then each shot's expected run value,
wicket probability and frequency. Run values are measured against a
run-expectancy table built from every delivery in the dataset.`,
	Args: cobra.ExactArgs(1),
	RunE: runShots,
}

func init() {
	addFilterFlags(shotsCmd)
}

func runShots(cmd *cobra.Command, args []string) error {
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	report.PrintGroupTable(os.Stdout, "Shot type", e.Groups(args[0], p, model.ColShotType))
	report.PrintRiskRewardTable(os.Stdout, e.RiskReward(args[0], p))
	return nil
}
