package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/analysis"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile <batter>",
	Short: "Full batter profile: summary, shots, footwork, line/length, dismissals, risk/reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func init() {
	addFilterFlags(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	rep, err := e.Report(cmd.Context(), args[0], p)
	if err != nil {
		return fmt.Errorf("build profile: %w", err)
	}
	printProfile(rep)
	return nil
}

func printProfile(rep *analysis.Report) {
	w := os.Stdout
	report.PrintBatterSummary(w, rep.Summary)
	if rep.Summary.Stats.Balls == 0 {
		return
	}
	report.PrintGroupTable(w, "Shot type", rep.Shots)
	report.PrintGroupTable(w, "Foot", rep.Feet)
	report.PrintLineLengthTable(w, rep.LineLength)
	report.PrintFrequencyTable(w, "Dismissals by bowler", rep.Dismissals)
	report.PrintRiskRewardTable(w, rep.RiskReward)
	report.PrintProgressionTable(w, rep.Progression)
}
