package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
)

var (
	progFirst int
	progLast  int
)

var progressionCmd = &cobra.Command{
	Use:   "progression <batter>",
	Short: "Strike rate and boundary rates by ball number within the innings",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgression,
}

func init() {
	addFilterFlags(progressionCmd)
	progressionCmd.Flags().IntVar(&progFirst, "first", 1, "first ball number")
	progressionCmd.Flags().IntVar(&progLast, "last", 60, "last ball number")
}

func runProgression(cmd *cobra.Command, args []string) error {
	if progFirst < 1 || progFirst > progLast {
		return fmt.Errorf("invalid ball window %d-%d", progFirst, progLast)
	}
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	report.PrintProgressionTable(os.Stdout, e.Progression(args[0], p, progFirst, progLast))
	return nil
}
