package server

import (
	"github.com/pable/go-cricket-metrics/internal/analysis"
	"github.com/pable/go-cricket-metrics/internal/expectancy"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// JSON shapes. Undefined values (an average with no outs, an empty pitch
// cell) encode as null.

type statsView struct {
	Balls       int      `json:"balls"`
	Runs        int      `json:"runs"`
	Outs        int      `json:"outs"`
	Average     *float64 `json:"average"`
	SR          float64  `json:"sr"`
	ControlPct  float64  `json:"control_pct"`
	DotPct      float64  `json:"dot_pct"`
	BoundaryPct float64  `json:"boundary_pct"`
	AerialPct   float64  `json:"aerial_pct"`
}

func newStatsView(s model.BasicStats) statsView {
	v := statsView{
		Balls:       s.Balls,
		Runs:        s.Runs,
		Outs:        s.Outs,
		SR:          s.SR(),
		ControlPct:  s.ControlPct(),
		DotPct:      s.DotPct(),
		BoundaryPct: s.BoundaryPct(),
		AerialPct:   s.AerialPct(),
	}
	if avg, ok := s.Average(); ok {
		v.Average = &avg
	}
	return v
}

type effectiveView struct {
	ESR      float64 `json:"esr"`
	EControl float64 `json:"econtrol"`
	EAerial  float64 `json:"eaerial"`
}

func newEffectiveView(e model.EffectiveMetrics) effectiveView {
	return effectiveView{ESR: e.ESR, EControl: e.EControl, EAerial: e.EAerial}
}

type summaryView struct {
	Batter    string        `json:"batter"`
	Hand      string        `json:"hand"`
	Stats     statsView     `json:"stats"`
	Baseline  statsView     `json:"baseline"`
	Effective effectiveView `json:"effective"`
}

func newSummaryView(s analysis.Summary) summaryView {
	return summaryView{
		Batter:    s.Batter,
		Hand:      s.Hand,
		Stats:     newStatsView(s.Stats),
		Baseline:  newStatsView(s.Baseline),
		Effective: newEffectiveView(s.Effective),
	}
}

type groupView struct {
	Group string `json:"group"`
	statsView
	Effective effectiveView `json:"effective"`
	Share     float64       `json:"share"`
}

func newGroupViews(rows []model.GroupStats) []groupView {
	out := make([]groupView, 0, len(rows))
	for _, r := range rows {
		out = append(out, groupView{
			Group:     r.Group,
			statsView: newStatsView(r.BasicStats),
			Effective: newEffectiveView(r.Effective),
			Share:     r.Share,
		})
	}
	return out
}

type lineLengthView struct {
	Length string `json:"length"`
	Line   string `json:"line"`
	statsView
	Effective effectiveView `json:"effective"`
}

func newLineLengthViews(rows []model.LineLengthStats) []lineLengthView {
	out := make([]lineLengthView, 0, len(rows))
	for _, r := range rows {
		out = append(out, lineLengthView{
			Length:    r.Length,
			Line:      r.Line,
			statsView: newStatsView(r.BasicStats),
			Effective: newEffectiveView(r.Effective),
		})
	}
	return out
}

type cellView struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Pct      float64 `json:"pct"`
}

type frequencyView struct {
	Group  string     `json:"group,omitempty"`
	Length string     `json:"length,omitempty"`
	Line   string     `json:"line,omitempty"`
	Total  int        `json:"total"`
	Cells  []cellView `json:"cells"`
}

func newFrequencyViews(rows []model.FrequencyRow) []frequencyView {
	out := make([]frequencyView, 0, len(rows))
	for _, r := range rows {
		v := frequencyView{Group: r.Group, Length: r.Length, Line: r.Line, Total: r.Total, Cells: []cellView{}}
		for _, c := range r.Cells {
			v.Cells = append(v.Cells, cellView{Category: c.Category, Count: c.Count, Pct: c.Pct})
		}
		out = append(out, v)
	}
	return out
}

type riskRewardView struct {
	ShotType          string  `json:"shot_type"`
	ExpectedRunValue  float64 `json:"expected_run_value"`
	WicketProbability float64 `json:"wicket_probability"`
	Frequency         float64 `json:"frequency"`
	Balls             int     `json:"balls"`
}

func newRiskRewardViews(rows []model.RiskReward) []riskRewardView {
	out := make([]riskRewardView, 0, len(rows))
	for _, r := range rows {
		out = append(out, riskRewardView(r))
	}
	return out
}

type progressionView struct {
	BallNumber  int     `json:"ball_number"`
	SampleSize  int     `json:"sample_size"`
	SR          float64 `json:"sr"`
	BoundaryPct float64 `json:"boundary_pct"`
	DotPct      float64 `json:"dot_pct"`
	AerialPct   float64 `json:"aerial_pct"`
}

func newProgressionViews(points []model.ProgressionPoint) []progressionView {
	out := make([]progressionView, 0, len(points))
	for _, p := range points {
		out = append(out, progressionView(p))
	}
	return out
}

type pitchCellView struct {
	Length string   `json:"length"`
	Line   string   `json:"line"`
	Balls  int      `json:"balls"`
	Value  *float64 `json:"value"`
}

func newPitchViews(cells []model.PitchCell) []pitchCellView {
	out := make([]pitchCellView, 0, len(cells))
	for _, c := range cells {
		v := pitchCellView{Length: c.Length, Line: c.Line, Balls: c.Balls}
		if c.Defined {
			val := c.Value
			v.Value = &val
		}
		out = append(out, v)
	}
	return out
}

type stateView struct {
	Innings       int     `json:"innings"`
	OverBucket    string  `json:"over_bucket"`
	WicketsInHand int     `json:"wickets_in_hand"`
	RE            float64 `json:"re"`
	Samples       int     `json:"samples"`
}

func newStateViews(entries []expectancy.Entry) []stateView {
	out := make([]stateView, 0, len(entries))
	for _, e := range entries {
		out = append(out, stateView{
			Innings:       e.Innings,
			OverBucket:    e.Bucket,
			WicketsInHand: e.WicketsInHand,
			RE:            e.RE,
			Samples:       e.Samples,
		})
	}
	return out
}

type reportView struct {
	Summary     summaryView       `json:"summary"`
	Shots       []groupView       `json:"shots"`
	Feet        []groupView       `json:"feet"`
	LineLength  []lineLengthView  `json:"line_length"`
	Dismissals  []frequencyView   `json:"dismissals"`
	RiskReward  []riskRewardView  `json:"risk_reward"`
	Progression []progressionView `json:"progression"`
}

func newReportView(r *analysis.Report) reportView {
	return reportView{
		Summary:     newSummaryView(r.Summary),
		Shots:       newGroupViews(r.Shots),
		Feet:        newGroupViews(r.Feet),
		LineLength:  newLineLengthViews(r.LineLength),
		Dismissals:  newFrequencyViews(r.Dismissals),
		RiskReward:  newRiskRewardViews(r.RiskReward),
		Progression: newProgressionViews(r.Progression),
	}
}
