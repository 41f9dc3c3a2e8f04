package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes one dataset, or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop [hash-prefix]",
	Short: "Delete a dataset or the whole database",
	Long: `With a hash prefix, delete that dataset and its deliveries. Without one,
permanently delete the SQLite database file. Re-import your CSVs afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropDataset(args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropDataset(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ds, err := db.GetDatasetByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("get dataset: %w", err)
	}
	if ds == nil {
		return fmt.Errorf("no dataset found with prefix %q", prefix)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete dataset %s (%s, %d deliveries).\n",
			shortHash(ds.Hash), ds.Source, ds.Rows)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := db.DeleteDataset(ds.Hash); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted dataset %s\n", shortHash(ds.Hash))
	return nil
}
