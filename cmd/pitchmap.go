package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var pitchMetric string

var pitchMapCmd = &cobra.Command{
	Use:   "pitchmap <batter>",
	Short: "Length x line grid of strike rate, average or control",
	Args:  cobra.ExactArgs(1),
	RunE:  runPitchMap,
}

func init() {
	addFilterFlags(pitchMapCmd)
	pitchMapCmd.Flags().StringVar(&pitchMetric, "metric", string(model.PitchSR), "sr, average or control")
}

func runPitchMap(cmd *cobra.Command, args []string) error {
	metric, err := parsePitchMetric(pitchMetric)
	if err != nil {
		return err
	}
	e, p, err := batterQuery(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%s (%s-handed)\n", args[0], e.Hand(args[0]))
	report.PrintPitchGrid(os.Stdout, metric, e.PitchMap(args[0], p, metric))
	return nil
}

func parsePitchMetric(s string) (model.PitchMetric, error) {
	switch m := model.PitchMetric(s); m {
	case model.PitchSR, model.PitchAverage, model.PitchControl:
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q (want sr, average or control)", s)
}
