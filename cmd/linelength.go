package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
)

var lineLengthCmd = &cobra.Command{
	Use:   "linelength <batter>",
	Short: "Batter stats per (length, line) combination",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineLength,
}

func init() {
	addFilterFlags(lineLengthCmd)
}

func runLineLength(cmd *cobra.Command, args []string) error {
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	report.PrintLineLengthTable(os.Stdout, e.LineLength(args[0], p))
	return nil
}
