// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-metrics/internal/analysis"
	"github.com/pable/go-cricket-metrics/internal/expectancy"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// undefined marks a value that cannot be computed, e.g. an average with no outs.
const undefined = "-"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintBatterSummary prints a header line and the batter's headline stats
// next to the match-context baseline.
func PrintBatterSummary(w io.Writer, s analysis.Summary) {
	fmt.Fprintf(w, "\nBatter: %s  |  Hand: %s  |  Balls: %d  |  Baseline balls: %d\n\n",
		s.Batter, s.Hand, s.Stats.Balls, s.Baseline.Balls)
	if s.Stats.Balls == 0 {
		fmt.Fprintln(w, "No deliveries match the current filters.")
		return
	}

	table := newTable(w)
	table.Header(" ", "BALLS", "RUNS", "OUTS", "AVG", "SR", "CTRL%", "DOT%", "4/6%", "AIR%")
	table.Append(append([]any{"BATTER"}, statsCells(s.Stats)...)...)
	table.Append(append([]any{"BASELINE"}, statsCells(s.Baseline)...)...)
	table.Render()

	fmt.Fprintf(w, "\neSR %s  |  eControl %s  |  eAerial %s\n",
		signed(s.Effective.ESR), signed(s.Effective.EControl), signed(s.Effective.EAerial))
}

func statsCells(s model.BasicStats) []any {
	return []any{
		strconv.Itoa(s.Balls),
		strconv.Itoa(s.Runs),
		strconv.Itoa(s.Outs),
		average(s),
		fmt.Sprintf("%.2f", s.SR()),
		pct(s.ControlPct()),
		pct(s.DotPct()),
		pct(s.BoundaryPct()),
		pct(s.AerialPct()),
	}
}

func average(s model.BasicStats) string {
	avg, ok := s.Average()
	if !ok {
		return undefined
	}
	return fmt.Sprintf("%.2f", avg)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

// PrintGroupTable prints one row per group with stats, effective metrics and
// the group's share of the batter's deliveries.
func PrintGroupTable(w io.Writer, label string, rows []model.GroupStats) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	table := newTable(w)
	table.Header(strings.ToUpper(label), "BALLS", "RUNS", "OUTS", "AVG", "SR", "CTRL%", "DOT%", "4/6%", "AIR%", "eSR", "eCTRL", "eAIR", "SHARE%")
	for _, r := range rows {
		cells := append([]any{r.Group}, statsCells(r.BasicStats)...)
		cells = append(cells,
			signed(r.Effective.ESR),
			signed(r.Effective.EControl),
			signed(r.Effective.EAerial),
			pct(r.Share),
		)
		table.Append(cells...)
	}
	table.Render()
}

// PrintLineLengthTable prints one row per (length, line) cell.
func PrintLineLengthTable(w io.Writer, rows []model.LineLengthStats) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	table := newTable(w)
	table.Header("LENGTH", "LINE", "BALLS", "RUNS", "OUTS", "AVG", "SR", "CTRL%", "DOT%", "4/6%", "AIR%", "eSR", "eCTRL", "eAIR")
	for _, r := range rows {
		cells := append([]any{r.Length, r.Line}, statsCells(r.BasicStats)...)
		cells = append(cells,
			signed(r.Effective.ESR),
			signed(r.Effective.EControl),
			signed(r.Effective.EAerial),
		)
		table.Append(cells...)
	}
	table.Render()
}

// PrintFrequencyTable pivots frequency rows: one column per category.
// Suppressed cells are left blank.
func PrintFrequencyTable(w io.Writer, label string, rows []model.FrequencyRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}

	var categories []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, c := range r.Cells {
			if !seen[c.Category] {
				seen[c.Category] = true
				categories = append(categories, c.Category)
			}
		}
	}

	lineLength := rows[0].Group == ""
	var header []any
	if lineLength {
		header = []any{"LENGTH", "LINE"}
	} else {
		header = []any{strings.ToUpper(label)}
	}
	header = append(header, "BALLS")
	for _, c := range categories {
		header = append(header, c)
	}

	table := newTable(w)
	table.Header(header...)
	for _, r := range rows {
		var cells []any
		if lineLength {
			cells = []any{r.Length, r.Line}
		} else {
			cells = []any{r.Group}
		}
		cells = append(cells, strconv.Itoa(r.Total))
		byCat := make(map[string]model.FrequencyCell, len(r.Cells))
		for _, c := range r.Cells {
			byCat[c.Category] = c
		}
		for _, c := range categories {
			if cell, ok := byCat[c]; ok {
				cells = append(cells, cell.String())
			} else {
				cells = append(cells, "")
			}
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintRiskRewardTable prints run value and dismissal risk per shot type.
func PrintRiskRewardTable(w io.Writer, rows []model.RiskReward) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	table := newTable(w)
	table.Header("SHOT", "BALLS", "FREQ%", "EXP_RV", "WKT_PROB", "SAMPLE")
	for _, r := range rows {
		table.Append(
			r.ShotType,
			strconv.Itoa(r.Balls),
			pct(r.Frequency),
			signed(r.ExpectedRunValue),
			fmt.Sprintf("%.3f", r.WicketProbability),
			sampleFlag(r.Balls),
		)
	}
	table.Render()
}

// PrintExpectancyTable prints the run-expectancy table.
func PrintExpectancyTable(w io.Writer, entries []expectancy.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	table := newTable(w)
	table.Header("INNS", "OVERS", "WKTS_IN_HAND", "RE", "BALLS")
	for _, e := range entries {
		table.Append(
			strconv.Itoa(e.Innings),
			e.Bucket,
			strconv.Itoa(e.WicketsInHand),
			fmt.Sprintf("%.2f", e.RE),
			strconv.Itoa(e.Samples),
		)
	}
	table.Render()
}

// PrintProgressionTable prints scoring by ball-in-innings.
func PrintProgressionTable(w io.Writer, points []model.ProgressionPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	table := newTable(w)
	table.Header("BALL", "N", "SR", "4/6%", "DOT%", "AIR%", "SAMPLE")
	for _, p := range points {
		table.Append(
			strconv.Itoa(p.BallNumber),
			strconv.Itoa(p.SampleSize),
			fmt.Sprintf("%.2f", p.SR),
			pct(p.BoundaryPct),
			pct(p.DotPct),
			pct(p.AerialPct),
			sampleFlag(p.SampleSize),
		)
	}
	table.Render()
}

// PrintPitchGrid lays the cells out with lengths as rows and lines as columns,
// in the order the grid was built.
func PrintPitchGrid(w io.Writer, metric model.PitchMetric, cells []model.PitchCell) {
	if len(cells) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	var lines []string
	for _, c := range cells {
		if c.Length != cells[0].Length {
			break
		}
		lines = append(lines, c.Line)
	}

	header := []any{strings.ToUpper(string(metric))}
	for _, l := range lines {
		header = append(header, l)
	}
	table := newTable(w)
	table.Header(header...)
	for i := 0; i < len(cells); i += len(lines) {
		row := []any{cells[i].Length}
		for _, c := range cells[i : i+len(lines)] {
			row = append(row, pitchValue(metric, c))
		}
		table.Append(row...)
	}
	table.Render()
}

func pitchValue(metric model.PitchMetric, c model.PitchCell) string {
	if !c.Defined {
		return undefined
	}
	if metric == model.PitchControl {
		return fmt.Sprintf("%.1f%% (%d)", c.Value, c.Balls)
	}
	return fmt.Sprintf("%.1f (%d)", c.Value, c.Balls)
}

// PrintDatasets lists imported datasets.
func PrintDatasets(w io.Writer, list []model.DatasetSummary) {
	table := newTable(w)
	table.Header("HASH", "SOURCE", "IMPORTED", "ROWS", "FIXTURES", "BATTERS")
	for _, s := range list {
		table.Append(
			shortHash(s.Hash),
			s.Source,
			s.ImportedAt,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Fixtures),
			strconv.Itoa(s.Batters),
		)
	}
	table.Render()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// sampleFlag grades how much a rate built from n balls can be trusted.
func sampleFlag(n int) string {
	switch {
	case n >= 50:
		return "OK"
	case n >= 20:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}
