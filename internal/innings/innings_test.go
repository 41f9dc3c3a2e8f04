package innings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
)

func TestSplitOrdersByOverAndBall(t *testing.T) {
	ds := []model.Delivery{
		{FixtureID: "F2", Innings: 1, Over: 1, Ball: 1, RunsScored: 9},
		{FixtureID: "F1", Innings: 2, Over: 3, Ball: 2, RunsScored: 3},
		{FixtureID: "F1", Innings: 2, Over: 1, Ball: 4, RunsScored: 1},
		{FixtureID: "F1", Innings: 1, Over: 2, Ball: 1, RunsScored: 2},
		{FixtureID: "F1", Innings: 2, Over: 3, Ball: 1, RunsScored: 4},
	}
	parts := Split(ds)
	require.Len(t, parts, 3)

	assert.Equal(t, Key{"F1", 1}, parts[0].Key)
	assert.Equal(t, Key{"F1", 2}, parts[1].Key)
	assert.Equal(t, Key{"F2", 1}, parts[2].Key)

	var runs []int
	for _, b := range parts[1].Balls {
		runs = append(runs, b.RunsScored)
	}
	assert.Equal(t, []int{1, 4, 3}, runs)

	// input untouched
	assert.Equal(t, "F2", ds[0].FixtureID)
}

func TestSplitPrefersTimestamps(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	ds := []model.Delivery{
		{FixtureID: "F", Innings: 1, Over: 1, Ball: 1, Timestamp: base.Add(2 * time.Minute), RunsScored: 1},
		{FixtureID: "F", Innings: 1, Over: 1, Ball: 2, Timestamp: base, RunsScored: 2},
	}
	parts := Split(ds)
	require.Len(t, parts, 1)
	assert.Equal(t, 2, parts[0].Balls[0].RunsScored)
}

func TestSplitFallsBackWhenTimestampMissing(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	ds := []model.Delivery{
		{FixtureID: "F", Innings: 1, Over: 1, Ball: 1, Timestamp: base.Add(time.Minute), RunsScored: 1},
		{FixtureID: "F", Innings: 1, Over: 1, Ball: 2, RunsScored: 2},
	}
	parts := Split(ds)
	assert.Equal(t, 1, parts[0].Balls[0].RunsScored)
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(nil))
}
