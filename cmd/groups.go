package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <batter> <column>",
	Short: "Batter stats broken down by a categorical column",
	Long: `Group the batter's deliveries by one column and print basic and effective
stats per group, with each group's share of the batter's balls.

Columns: ` + columnList(),
	Args: cobra.ExactArgs(2),
	RunE: runGroups,
}

func init() {
	addFilterFlags(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	col, err := model.ParseColumn(args[1])
	if err != nil {
		return err
	}
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	report.PrintGroupTable(os.Stdout, string(col), e.Groups(args[0], p, col))
	return nil
}

func columnList() string {
	cols := model.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// parseColumnFlag validates an optional column flag; empty stays empty.
func parseColumnFlag(name, v string) (model.Column, error) {
	if v == "" {
		return "", nil
	}
	col, err := model.ParseColumn(v)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return col, nil
}
