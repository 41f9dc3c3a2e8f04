package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownColumn is returned by ParseColumn for names outside the canonical set.
var ErrUnknownColumn = errors.New("unknown column")

// Column is a canonical categorical column name. The set of values inside a
// column is open: grouping iterates whatever labels are present in the data.
type Column string

const (
	ColBatsman          Column = "batsman"
	ColBowler           Column = "bowler"
	ColBattingTeam      Column = "battingTeam"
	ColBowlingTeam      Column = "bowlingTeam"
	ColBowlerType       Column = "bowlerType"
	ColBowlerHand       Column = "bowlerHand"
	ColBowlingAngle     Column = "bowlingAngle"
	ColBatsmanHand      Column = "batsmanHand"
	ColCompetition      Column = "competition"
	ColGround           Column = "ground"
	ColCountry          Column = "country"
	ColDismissalType    Column = "dismissalType"
	ColLength           Column = "parsed_length"
	ColLine             Column = "parsed_line"
	ColParsedControl    Column = "parsed_control"
	ColControl          Column = "control"
	ColElevation        Column = "elevation"
	ColShotType         Column = "shot_type"
	ColFieldingPosition Column = "fielding_position"
	ColFoot             Column = "foot"
	ColVariation        Column = "variation"
	ColLenVar           Column = "parsed_len.var"
)

var categoricalColumns = []Column{
	ColBatsman, ColBowler, ColBattingTeam, ColBowlingTeam, ColBowlerType,
	ColBowlerHand, ColBowlingAngle, ColBatsmanHand, ColCompetition, ColGround,
	ColCountry, ColDismissalType, ColLength, ColLine, ColParsedControl,
	ColControl, ColElevation, ColShotType, ColFieldingPosition, ColFoot,
	ColVariation, ColLenVar,
}

// Columns returns every categorical column accepted by ParseColumn.
func Columns() []Column {
	out := make([]Column, len(categoricalColumns))
	copy(out, categoricalColumns)
	return out
}

// ParseColumn validates a user-supplied column name.
func ParseColumn(name string) (Column, error) {
	for _, c := range categoricalColumns {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// ---- Ball Record Store ----

// Delivery is one legal ball faced by a batter, after normalization.
// An empty string is the null value for every categorical field.
type Delivery struct {
	FixtureID string
	Innings   int
	Over      int
	Ball      int
	Timestamp time.Time // zero if the source had none

	Batsman      string
	Bowler       string
	BattingTeam  string
	BowlingTeam  string
	BowlerType   string
	BowlerHand   string
	BowlingAngle string
	BatsmanHand  string

	Competition string
	Ground      string
	Country     string
	MatchDate   time.Time // zero if missing or unparseable

	RunsScored       int
	RunsUnknown      bool   // source had no runs_scored column
	IsWicket         string // raw source value; see IsOut
	DismissalType    string
	Length           string
	Line             string
	ParsedControl    string
	Control          string
	Elevation        string
	ShotType         string
	FieldingPosition string
	Foot             string
	Variation        string
	LenVar           string

	// Derived once at load.
	WithControl bool
	IsAerial    bool
	IsBoundary  bool
	IsDot       bool
	IsOut       bool
}

// Value returns the categorical value of col, or "" for unknown columns.
func (d *Delivery) Value(col Column) string {
	switch col {
	case ColBatsman:
		return d.Batsman
	case ColBowler:
		return d.Bowler
	case ColBattingTeam:
		return d.BattingTeam
	case ColBowlingTeam:
		return d.BowlingTeam
	case ColBowlerType:
		return d.BowlerType
	case ColBowlerHand:
		return d.BowlerHand
	case ColBowlingAngle:
		return d.BowlingAngle
	case ColBatsmanHand:
		return d.BatsmanHand
	case ColCompetition:
		return d.Competition
	case ColGround:
		return d.Ground
	case ColCountry:
		return d.Country
	case ColDismissalType:
		return d.DismissalType
	case ColLength:
		return d.Length
	case ColLine:
		return d.Line
	case ColParsedControl:
		return d.ParsedControl
	case ColControl:
		return d.Control
	case ColElevation:
		return d.Elevation
	case ColShotType:
		return d.ShotType
	case ColFieldingPosition:
		return d.FieldingPosition
	case ColFoot:
		return d.Foot
	case ColVariation:
		return d.Variation
	case ColLenVar:
		return d.LenVar
	}
	return ""
}

// ---- Aggregated metrics ----

// BasicStats holds raw counts for a set of deliveries. Rates are methods so a
// zero-ball or zero-out subset can never divide by zero.
type BasicStats struct {
	Balls      int
	Runs       int
	Outs       int
	Dots       int
	Boundaries int
	Aerials    int
	Controlled int
}

// Average is runs per dismissal; ok is false when there are no outs.
func (s BasicStats) Average() (avg float64, ok bool) {
	if s.Outs == 0 {
		return 0, false
	}
	return float64(s.Runs) / float64(s.Outs), true
}

func (s BasicStats) SR() float64 {
	return s.pct(s.Runs)
}

func (s BasicStats) ControlPct() float64 {
	return s.pct(s.Controlled)
}

func (s BasicStats) DotPct() float64 {
	return s.pct(s.Dots)
}

func (s BasicStats) BoundaryPct() float64 {
	return s.pct(s.Boundaries)
}

func (s BasicStats) AerialPct() float64 {
	return s.pct(s.Aerials)
}

func (s BasicStats) pct(n int) float64 {
	if s.Balls == 0 {
		return 0
	}
	return float64(n) / float64(s.Balls) * 100
}

// EffectiveMetrics are subset rates minus the same rates over a baseline population.
type EffectiveMetrics struct {
	ESR      float64
	EControl float64
	EAerial  float64
}

// GroupStats is one row of a group-wise breakdown.
type GroupStats struct {
	Group string
	BasicStats
	Effective EffectiveMetrics
	Share     float64 // balls in this group / balls in the subset * 100
}

// LineLengthStats is one (length, line) cell with at least one delivery.
type LineLengthStats struct {
	Length string
	Line   string
	BasicStats
	Effective EffectiveMetrics
}

// FrequencyCell is the share of one category inside a group.
type FrequencyCell struct {
	Category string
	Count    int
	Pct      float64
}

func (c FrequencyCell) String() string {
	return fmt.Sprintf("%.2f%%", c.Pct)
}

// FrequencyRow is one group of a frequency-only breakdown. For line×length
// breakdowns Group is empty and Length/Line are set.
type FrequencyRow struct {
	Group  string
	Length string
	Line   string
	Total  int
	Cells  []FrequencyCell
}

// RiskReward summarises the run value and dismissal risk of one shot type.
type RiskReward struct {
	ShotType          string
	ExpectedRunValue  float64
	WicketProbability float64
	Frequency         float64
	Balls             int
}

// ProgressionPoint aggregates every ball faced at one position within the
// batter's innings (1 = first ball faced).
type ProgressionPoint struct {
	BallNumber  int
	SampleSize  int
	SR          float64
	BoundaryPct float64
	DotPct      float64
	AerialPct   float64
}

// PitchMetric selects the value shown in a pitch grid cell.
type PitchMetric string

const (
	PitchControl PitchMetric = "control"
	PitchAverage PitchMetric = "average"
	PitchSR      PitchMetric = "sr"
)

// PitchCell is one length×line cell of the pitch grid. Defined is false for
// cells with no deliveries, or for an average with no dismissals.
type PitchCell struct {
	Length  string
	Line    string
	Balls   int
	Value   float64
	Defined bool
}

// Lengths are the canonical pitch lengths, fullest first.
var Lengths = []string{"full toss", "yorker", "half volley", "length ball", "back of a length", "short", "bouncer"}

// LinesRHB are the canonical lines from a right-hander's off side to leg side.
var LinesRHB = []string{"wide outside off", "outside off", "off", "middle", "leg", "down leg"}

// LinesLHB mirror LinesRHB for left-handers.
var LinesLHB = []string{"down leg", "leg", "middle", "off", "outside off", "wide outside off"}

// DatasetSummary is a lightweight record for imported datasets.
type DatasetSummary struct {
	Hash       string
	Source     string
	ImportedAt string
	Rows       int
	Fixtures   int
	Batters    int
}
