package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List imported datasets",
	Args:  cobra.NoArgs,
	RunE:  runDatasets,
}

func runDatasets(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	list, err := db.ListDatasets()
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "No datasets stored yet. Run: crickmetrics import <deliveries.csv>")
		return nil
	}
	report.PrintDatasets(os.Stdout, list)
	return nil
}
