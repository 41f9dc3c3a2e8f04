package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var (
	freqGroup        string
	freqCategory     string
	freqSuppressZero bool
	freqExclude      []string
)

var frequencyCmd = &cobra.Command{
	Use:   "frequency <batter>",
	Short: "Category frequency table per group",
	Long: `Count how often each value of --category occurs within each value of --group
and print counts with row percentages. Without --group the rows are the
(length, line) combinations.

Example: crickmetrics frequency "V Kohli" --group bowler --category dismissalType --suppress-zero`,
	Args: cobra.ExactArgs(1),
	RunE: runFrequency,
}

func init() {
	addFilterFlags(frequencyCmd)
	frequencyCmd.Flags().StringVar(&freqGroup, "group", "", "grouping column (default: length and line)")
	frequencyCmd.Flags().StringVar(&freqCategory, "category", "", "category column (required)")
	frequencyCmd.Flags().BoolVar(&freqSuppressZero, "suppress-zero", false, "hide zero cells")
	frequencyCmd.Flags().StringSliceVar(&freqExclude, "exclude", nil, "category values to drop before counting")
}

func runFrequency(cmd *cobra.Command, args []string) error {
	if freqCategory == "" {
		return errors.New("--category is required")
	}
	category, err := parseColumnFlag("category", freqCategory)
	if err != nil {
		return err
	}
	group, err := parseColumnFlag("group", freqGroup)
	if err != nil {
		return err
	}
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	rows := e.Frequency(args[0], p, group, category, aggregator.FrequencyOptions{
		SuppressZero: freqSuppressZero,
		Exclude:      freqExclude,
	})
	label := string(category)
	if group != "" {
		label = string(group) + " x " + label
	}
	report.PrintFrequencyTable(os.Stdout, label, rows)
	return nil
}
