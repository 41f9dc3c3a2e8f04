package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <deliveries.csv>",
	Short: "Load a ball-by-ball CSV into the database",
	Long: `Normalize a ball-by-ball CSV and store it as a dataset keyed by the sha256 of
its contents. Importing the same file twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Reading %s...\n", path)
	ds, err := loader.LoadCSV(path, loader.Options{Rename: cfg.Columns.Rename})
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}

	exists, err := db.DatasetExists(ds.Hash)
	if err != nil {
		return fmt.Errorf("check dataset: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Dataset %s already stored.\n", shortHash(ds.Hash))
		return nil
	}

	summary := ds.Summary()
	summary.ImportedAt = time.Now().UTC().Format(time.RFC3339)
	if err := db.InsertDataset(summary, ds.Deliveries); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}

	if ds.Dropped > 0 {
		fmt.Fprintf(os.Stdout, "Dropped %d deliveries with a ball number outside 1-6.\n", ds.Dropped)
	}
	report.PrintDatasets(os.Stdout, []model.DatasetSummary{summary})
	return nil
}
