package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the deliveries database",
	Long: `Run an arbitrary SQL query against the deliveries database and print results as a table.

Schema overview:
  datasets(hash, source, imported_at, row_count, fixtures, batters)
  deliveries(dataset_hash, seq, fixture_id, inns, over_no, ball, ts, batsman,
    bowler, batting_team, bowling_team, bowler_type, bowler_hand, bowling_angle,
    batsman_hand, competition, ground, country, match_date, runs_scored,
    is_wicket, dismissal_type, parsed_length, parsed_line, parsed_control,
    control, elevation, shot_type, fielding_position, foot, variation, len_var)

Categorical columns store '' for a missing value. Example:
  crickmetrics sql "SELECT shot_type, COUNT(*), SUM(runs_scored) FROM deliveries
    WHERE batsman = 'V Kohli' GROUP BY shot_type ORDER BY 2 DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

