package aggregator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// ball builds a normalized delivery so the derived flags are consistent.
func ball(runs int, dismissal, shot string) model.Delivery {
	d := model.Delivery{FixtureID: "F1", Innings: 1, Batsman: "X", RunsScored: runs, DismissalType: dismissal, ShotType: shot}
	loader.Normalize(&d)
	return d
}

func threeBalls() []model.Delivery {
	return []model.Delivery{
		ball(4, "", "Drive"),
		ball(0, "Caught", "Drive"),
		ball(1, "", "Cut"),
	}
}

func TestBasicEndToEnd(t *testing.T) {
	s := Basic(threeBalls())

	assert.Equal(t, 3, s.Balls)
	assert.Equal(t, 5, s.Runs)
	assert.Equal(t, 1, s.Outs)
	avg, ok := s.Average()
	require.True(t, ok)
	assert.InDelta(t, 5.0, avg, 1e-9)
	assert.InDelta(t, 166.67, s.SR(), 0.005)
	assert.InDelta(t, 33.33, s.BoundaryPct(), 0.005)
	assert.InDelta(t, 33.33, s.DotPct(), 0.005)
}

func TestGroupStatsEndToEnd(t *testing.T) {
	rows := GroupStats(threeBalls(), nil, model.ColShotType)
	require.Len(t, rows, 2)

	drive, cut := rows[0], rows[1]
	assert.Equal(t, "Drive", drive.Group)
	assert.Equal(t, 2, drive.Balls)
	assert.Equal(t, 4, drive.Runs)
	assert.Equal(t, 1, drive.Outs)
	avg, ok := drive.Average()
	require.True(t, ok)
	assert.InDelta(t, 4.0, avg, 1e-9)

	assert.Equal(t, "Cut", cut.Group)
	assert.Equal(t, 1, cut.Balls)
	assert.Equal(t, 1, cut.Runs)
	assert.Equal(t, 0, cut.Outs)
	_, ok = cut.Average()
	assert.False(t, ok)
}

func TestBasicWithoutRunsColumn(t *testing.T) {
	ds, err := loader.Read(strings.NewReader("fixtureId,batsman,ball\nF1,X,1\nF1,X,2\n"), loader.Options{})
	require.NoError(t, err)

	s := Basic(ds.Deliveries)
	assert.Equal(t, 2, s.Balls)
	assert.Equal(t, 0, s.Runs)
	assert.Equal(t, 0.0, s.DotPct())
	assert.Equal(t, 0.0, s.BoundaryPct())
}

func TestBasicEmpty(t *testing.T) {
	s := Basic(nil)
	assert.Zero(t, s.Balls)
	assert.Zero(t, s.SR())
	assert.Zero(t, s.ControlPct())
	assert.Zero(t, s.DotPct())
	assert.Zero(t, s.BoundaryPct())
	assert.Zero(t, s.AerialPct())
	_, ok := s.Average()
	assert.False(t, ok)
}

func TestAverageUndefinedWithoutOuts(t *testing.T) {
	s := Basic([]model.Delivery{ball(6, "", "Pull"), ball(4, "", "Pull")})
	_, ok := s.Average()
	assert.False(t, ok)
	assert.InDelta(t, 500.0, s.SR(), 1e-9)
}

func TestEffectiveExact(t *testing.T) {
	subset := threeBalls()
	baseline := append(threeBalls(), ball(0, "", "Block"), ball(2, "", "Cut"))

	s, base := Basic(subset), Basic(baseline)
	e := Effective(s, base)
	assert.Equal(t, s.SR()-base.SR(), e.ESR)
	assert.Equal(t, s.ControlPct()-base.ControlPct(), e.EControl)
	assert.Equal(t, s.AerialPct()-base.AerialPct(), e.EAerial)
}

func TestGroupStatsBaselinePartition(t *testing.T) {
	subset := threeBalls()
	baseline := []model.Delivery{
		ball(2, "", "Drive"), // Drive baseline SR = 200
		ball(0, "", "Sweep"),
	}
	rows := GroupStats(subset, baseline, model.ColShotType)
	require.Len(t, rows, 2)

	// Drive: SR 200 vs baseline 200.
	assert.InDelta(t, 0.0, rows[0].Effective.ESR, 1e-9)
	// Cut has no baseline partition: compared against zero.
	assert.InDelta(t, rows[1].SR(), rows[1].Effective.ESR, 1e-9)
}

func TestGroupStatsCompleteness(t *testing.T) {
	subset := append(threeBalls(), ball(1, "", ""), ball(2, "", "Cut"))
	rows := GroupStats(subset, subset, model.ColShotType)

	total := 0
	share := 0.0
	for _, r := range rows {
		total += r.Balls
		share += r.Share
	}
	nonNull := 0
	for _, d := range subset {
		if d.ShotType != "" {
			nonNull++
		}
	}
	assert.Equal(t, nonNull, total)
	assert.InDelta(t, 80.0, share, 1e-9, "null shot rows count in the share denominator")
}

func TestGroupStatsEmptySubset(t *testing.T) {
	assert.Empty(t, GroupStats(nil, threeBalls(), model.ColShotType))
}

func TestGroupStatsFirstOccurrenceOrder(t *testing.T) {
	subset := []model.Delivery{ball(0, "", "Sweep"), ball(0, "", "Cut"), ball(0, "", "Sweep"), ball(0, "", "Drive")}
	var got []string
	for _, r := range GroupStats(subset, nil, model.ColShotType) {
		got = append(got, r.Group)
	}
	assert.Equal(t, []string{"Sweep", "Cut", "Drive"}, got)
}

func pitched(length, line string, runs int) model.Delivery {
	d := ball(runs, "", "")
	d.Length, d.Line = length, line
	return d
}

func TestLineLengthStats(t *testing.T) {
	subset := []model.Delivery{
		pitched("short", "off", 4),
		pitched("yorker", "middle", 0),
		pitched("short", "off", 2),
		pitched("", "off", 6),
	}
	baseline := []model.Delivery{pitched("short", "leg", 1), pitched("yorker", "off", 1)}

	rows := LineLengthStats(subset, baseline)
	require.Len(t, rows, 2, "combinations with no deliveries are dropped")

	assert.Equal(t, "short", rows[0].Length)
	assert.Equal(t, "off", rows[0].Line)
	assert.Equal(t, 2, rows[0].Balls)
	assert.InDelta(t, 300.0-100.0, rows[0].Effective.ESR, 1e-9, "baseline is not partitioned")

	assert.Equal(t, "yorker", rows[1].Length)
	assert.Equal(t, "middle", rows[1].Line)
}
