package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var battersMatch string

var battersCmd = &cobra.Command{
	Use:   "batters",
	Short: "List batters in the active dataset",
	Args:  cobra.NoArgs,
	RunE:  runBatters,
}

func init() {
	battersCmd.Flags().StringVar(&battersMatch, "match", "", "case-insensitive substring filter")
}

func runBatters(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	needle := strings.ToLower(battersMatch)
	n := 0
	for _, b := range e.Batters() {
		if needle != "" && !strings.Contains(strings.ToLower(b), needle) {
			continue
		}
		fmt.Fprintln(os.Stdout, b)
		n++
	}
	fmt.Fprintf(os.Stdout, "\n(%d batters)\n", n)
	return nil
}
