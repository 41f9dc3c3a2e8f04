package expectancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
)

type faced struct {
	runs int
	out  bool
	shot string
}

// over builds one innings of F1 starting at over 1, ball numbers increasing.
func over(balls ...faced) []model.Delivery {
	out := make([]model.Delivery, 0, len(balls))
	for i, b := range balls {
		d := model.Delivery{
			FixtureID:  "F1",
			Innings:    1,
			Over:       1 + i/6,
			Ball:       1 + i%6,
			Batsman:    "X",
			RunsScored: b.runs,
			ShotType:   b.shot,
		}
		if b.out {
			d.DismissalType = "Bowled"
		}
		loader.Normalize(&d)
		out = append(out, d)
	}
	return out
}

func TestOverBucket(t *testing.T) {
	assert.Equal(t, "1-6", OverBucket(1))
	assert.Equal(t, "1-6", OverBucket(6))
	assert.Equal(t, "7-15", OverBucket(7))
	assert.Equal(t, "7-15", OverBucket(15))
	assert.Equal(t, "16-20", OverBucket(16))
	assert.Equal(t, "16-20", OverBucket(20))
}

func TestFutureRuns(t *testing.T) {
	ds := over(faced{runs: 0}, faced{runs: 1}, faced{runs: 0}, faced{runs: 4}, faced{runs: 0}, faced{runs: 6})

	var future []int
	for _, b := range Annotate(ds) {
		future = append(future, b.FutureRuns)
		assert.Equal(t, State{1, "1-6", 10}, b.State)
	}
	assert.Equal(t, []int{11, 11, 10, 10, 6, 6}, future)

	table := BuildTable(ds)
	require.Len(t, table, 1)
	assert.InDelta(t, 9.0, table.Lookup(State{1, "1-6", 10}), 1e-9)
}

func TestFutureRunsUnsortedInput(t *testing.T) {
	ds := over(faced{runs: 0}, faced{runs: 1}, faced{runs: 0}, faced{runs: 4}, faced{runs: 0}, faced{runs: 6})
	ds[0], ds[5] = ds[5], ds[0]

	var future []int
	for _, b := range Annotate(ds) {
		future = append(future, b.FutureRuns)
	}
	assert.Equal(t, []int{11, 11, 10, 10, 6, 6}, future)
}

func TestAllDotsFinalBall(t *testing.T) {
	ds := over(faced{}, faced{}, faced{})
	balls := Annotate(ds)
	assert.Equal(t, 0, balls[len(balls)-1].FutureRuns)
	assert.Zero(t, BuildTable(ds).Lookup(State{1, "1-6", 10}))
}

func TestWicketCountsAgainstPreBallState(t *testing.T) {
	ds := over(faced{runs: 1}, faced{out: true}, faced{runs: 2})
	balls := Annotate(ds)
	require.Len(t, balls, 3)

	assert.Equal(t, 10, balls[0].State.WicketsInHand)
	assert.Equal(t, 10, balls[1].State.WicketsInHand)
	assert.Equal(t, 9, balls[2].State.WicketsInHand)

	table := BuildTable(ds)
	assert.InDelta(t, 2.5, table.Lookup(State{1, "1-6", 10}), 1e-9)
	assert.InDelta(t, 2.0, table.Lookup(State{1, "1-6", 9}), 1e-9)
}

func TestWicketsInHandClipped(t *testing.T) {
	var all []faced
	for i := 0; i < 12; i++ {
		all = append(all, faced{out: true})
	}
	for _, b := range Annotate(over(all...)) {
		assert.GreaterOrEqual(t, b.State.WicketsInHand, 1)
		assert.LessOrEqual(t, b.State.WicketsInHand, 10)
	}
}

func TestLookupMissingState(t *testing.T) {
	assert.Zero(t, Table{}.Lookup(State{2, "16-20", 3}))
	assert.Empty(t, BuildTable(nil))
}

func TestEntriesOrder(t *testing.T) {
	table := Table{
		{2, "1-6", 10}:  {State: State{2, "1-6", 10}},
		{1, "16-20", 4}: {State: State{1, "16-20", 4}},
		{1, "1-6", 9}:   {State: State{1, "1-6", 9}},
		{1, "1-6", 10}:  {State: State{1, "1-6", 10}},
	}
	var got []State
	for _, e := range table.Entries() {
		got = append(got, e.State)
	}
	assert.Equal(t, []State{{1, "1-6", 10}, {1, "1-6", 9}, {1, "16-20", 4}, {2, "1-6", 10}}, got)
}

func TestRiskRewardByShot(t *testing.T) {
	ds := over(
		faced{runs: 1, shot: "Drive"},
		faced{out: true, shot: "Pull"},
		faced{runs: 2, shot: "Drive"},
	)
	rows := RiskRewardByShot(ds, ds)
	require.Len(t, rows, 2)

	drive, pull := rows[0], rows[1]
	assert.Equal(t, "Drive", drive.ShotType)
	assert.Equal(t, 2, drive.Balls)
	assert.InDelta(t, 1.5, drive.ExpectedRunValue, 1e-9)
	assert.Equal(t, 0.0, drive.WicketProbability)
	assert.InDelta(t, 200.0/3, drive.Frequency, 1e-9)

	assert.Equal(t, "Pull", pull.ShotType)
	assert.InDelta(t, -0.5, pull.ExpectedRunValue, 1e-9)
	assert.InDelta(t, 1.0, pull.WicketProbability, 1e-9)
	assert.InDelta(t, 100.0, drive.Frequency+pull.Frequency, 1e-9)
}

func TestRiskRewardSkipsEmptyShots(t *testing.T) {
	ds := over(faced{runs: 4, shot: "Sweep"}, faced{runs: 1})
	rows := RiskRewardByShot(ds, ds)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sweep", rows[0].ShotType)
	assert.InDelta(t, 50.0, rows[0].Frequency, 1e-9)
}

func TestRiskRewardEmpty(t *testing.T) {
	ds := over(faced{runs: 1, shot: "Drive"})
	assert.Empty(t, RiskRewardByShot(nil, ds))
	assert.Empty(t, RiskRewardByShot(ds, nil))
}

func TestRunValueMissingStates(t *testing.T) {
	b := Ball{Delivery: model.Delivery{RunsScored: 3, IsOut: true}, State: State{1, "7-15", 1}}
	assert.InDelta(t, 3.0, RunValue(b, Table{}), 1e-9)
}
