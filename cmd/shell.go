package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/analysis"
	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Load the active dataset once and explore it interactively. Pick a batter with
'use', narrow the data with 'set', then print any section. Type 'help' for commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	addFilterFlags(shellCmd)
}

// session is the REPL state: the loaded engine, the selected batter and the
// filter values currently in force.
type session struct {
	engine *analysis.Engine
	batter string
	raw    filter.Raw
}

func runShell(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	s := &session{engine: e, raw: filterRaw}

	cGreeting.Println("crickmetrics shell")
	cMuted.Printf("%d deliveries, %d batters; type 'help' or 'exit'\n", e.Len(), len(e.Batters()))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("crickmetrics")
		if s.batter != "" {
			cMuted.Printf(" [%s]", s.batter)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		verb, args := tokens[0], tokens[1:]

		switch verb {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "batters":
			s.listBatters(strings.Join(args, " "))
		case "use":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: use <batter name>")
				continue
			}
			s.use(strings.Join(args, " "))
		case "set":
			if len(args) < 1 {
				cError.Fprintln(os.Stderr, "usage: set <filter> [value]")
				continue
			}
			s.set(args[0], strings.Join(args[1:], " "))
		case "filters":
			s.printFilters()
		case "expectancy":
			report.PrintExpectancyTable(os.Stdout, s.engine.Table().Entries())
		case "summary", "profile", "shots", "groups", "linelength", "dismissals", "progression", "pitchmap":
			s.section(verb, args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", verb)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"batters [substring]", "list batters, optionally matching a substring"},
		{"use <batter>", "select the batter for the commands below"},
		{"set <filter> [value]", "set a filter (team, overs, from, ...); no value clears it"},
		{"filters", "show the filters in force"},
		{"summary", "headline stats against the baseline"},
		{"profile", "every section at once"},
		{"shots", "per-shot stats and risk/reward"},
		{"groups <column>", "stats grouped by any categorical column"},
		{"linelength", "stats per length and line"},
		{"dismissals", "dismissal types per bowler"},
		{"progression [first] [last]", "scoring by ball number (default 1 60)"},
		{"pitchmap [sr|average|control]", "length x line grid"},
		{"expectancy", "the run-expectancy table"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-32s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *session) listBatters(needle string) {
	needle = strings.ToLower(needle)
	for _, b := range s.engine.Batters() {
		if needle == "" || strings.Contains(strings.ToLower(b), needle) {
			fmt.Println(b)
		}
	}
}

func (s *session) use(name string) {
	if err := batterArg(s.engine, name); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	s.batter = name
	cMuted.Printf("%s (%s-handed)\n", name, s.engine.Hand(name))
}

// filterFields maps shell filter names onto the Raw fields.
func (s *session) filterFields() []struct {
	name string
	ptr  *string
} {
	return []struct {
		name string
		ptr  *string
	}{
		{"team", &s.raw.Team},
		{"opposition", &s.raw.Opposition},
		{"competition", &s.raw.Competition},
		{"venue", &s.raw.Venue},
		{"country", &s.raw.Country},
		{"bowler-type", &s.raw.BowlerType},
		{"bowler", &s.raw.Bowler},
		{"innings", &s.raw.Innings},
		{"bowler-hand", &s.raw.BowlerHand},
		{"bowling-angle", &s.raw.BowlingAngle},
		{"overs", &s.raw.Overs},
		{"from", &s.raw.From},
		{"to", &s.raw.To},
	}
}

func (s *session) set(name, value string) {
	for _, f := range s.filterFields() {
		if f.name != name {
			continue
		}
		prev := *f.ptr
		*f.ptr = value
		if _, err := s.predicates(); err != nil {
			*f.ptr = prev
			cError.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return
	}
	cWarn.Fprintf(os.Stderr, "unknown filter %q, see 'filters'\n", name)
}

func (s *session) printFilters() {
	for _, f := range s.filterFields() {
		v := *f.ptr
		if v == "" {
			v = "All"
		}
		fmt.Print("  ")
		cCmd.Printf("%-14s", f.name)
		fmt.Println(v)
	}
}

func (s *session) predicates() (filter.Predicates, error) {
	floor, ceil, err := cfg.DateRange()
	if err != nil {
		return filter.Predicates{}, err
	}
	return s.raw.Parse(floor, ceil)
}

func (s *session) section(verb string, args []string) {
	if s.batter == "" {
		cWarn.Fprintln(os.Stderr, "no batter selected, run 'use <batter>' first")
		return
	}
	p, err := s.predicates()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	e, b, w := s.engine, s.batter, os.Stdout

	switch verb {
	case "summary":
		report.PrintBatterSummary(w, e.Summary(b, p))
	case "profile":
		rep, err := e.Report(context.Background(), b, p)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		printProfile(rep)
	case "shots":
		report.PrintGroupTable(w, "Shot type", e.Groups(b, p, model.ColShotType))
		report.PrintRiskRewardTable(w, e.RiskReward(b, p))
	case "groups":
		if len(args) != 1 {
			cError.Fprintln(os.Stderr, "usage: groups <column>")
			return
		}
		col, err := model.ParseColumn(args[0])
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		report.PrintGroupTable(w, string(col), e.Groups(b, p, col))
	case "linelength":
		report.PrintLineLengthTable(w, e.LineLength(b, p))
	case "dismissals":
		report.PrintFrequencyTable(w, "Dismissals by bowler", e.Dismissals(b, p))
	case "progression":
		first, last := 1, 60
		if len(args) == 2 {
			f, errF := strconv.Atoi(args[0])
			l, errL := strconv.Atoi(args[1])
			if errF != nil || errL != nil || f < 1 || f > l {
				cError.Fprintln(os.Stderr, "usage: progression [first] [last]")
				return
			}
			first, last = f, l
		}
		report.PrintProgressionTable(w, e.Progression(b, p, first, last))
	case "pitchmap":
		metric := model.PitchSR
		if len(args) == 1 {
			if metric, err = parsePitchMetric(args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				return
			}
		}
		cHeader.Fprintf(w, "\n--- %s: %s ---\n", b, metric)
		report.PrintPitchGrid(w, metric, e.PitchMap(b, p, metric))
	}
}
