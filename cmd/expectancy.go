package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
)

var expectancyCmd = &cobra.Command{
	Use:   "expectancy",
	Short: "Print the run-expectancy table",
	Long: `Print expected future runs for every (innings, over bucket, wickets in hand)
state seen in the dataset, with the number of deliveries behind each value.`,
	Args: cobra.NoArgs,
	RunE: runExpectancy,
}

func runExpectancy(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	report.PrintExpectancyTable(os.Stdout, e.Table().Entries())
	return nil
}
