package analysis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
)

func delivery(fixture, batter, team string, over, ball, runs int, dismissal, shot string) model.Delivery {
	d := model.Delivery{
		FixtureID:     fixture,
		Innings:       1,
		Over:          over,
		Ball:          ball,
		Batsman:       batter,
		BattingTeam:   team,
		Bowler:        "B1",
		RunsScored:    runs,
		DismissalType: dismissal,
		ShotType:      shot,
		BatsmanHand:   "Left",
	}
	loader.Normalize(&d)
	return d
}

func testStore() []model.Delivery {
	return []model.Delivery{
		delivery("F1", "X", "A", 1, 1, 4, "", "Drive"),
		delivery("F1", "X", "A", 1, 2, 0, "Caught", "Drive"),
		delivery("F1", "Y", "A", 1, 3, 1, "", "Cut"),
		delivery("F1", "Y", "A", 1, 4, 0, "", "Cut"),
		delivery("F2", "Y", "A", 1, 1, 6, "", "Pull"),
		delivery("F3", "X", "C", 2, 1, 1, "", "Cut"),
		delivery("F3", "Z", "C", 2, 2, 2, "RunOut", "Sweep"),
	}
}

func TestSummary(t *testing.T) {
	e := New(testStore())
	p := filter.Predicates{ForTeam: filter.Choice{"A"}}

	s := e.Summary("X", p)
	assert.Equal(t, "X", s.Batter)
	assert.Equal(t, "Left", s.Hand)
	assert.Equal(t, 2, s.Stats.Balls)
	assert.Equal(t, 4, s.Stats.Runs)
	assert.Equal(t, 1, s.Stats.Outs)

	// F1 only: X and Y's deliveries.
	assert.Equal(t, 4, s.Baseline.Balls)
	assert.Equal(t, s.Stats.SR()-s.Baseline.SR(), s.Effective.ESR)
}

func TestBaselineMemoized(t *testing.T) {
	e := New(testStore())
	p := filter.Predicates{}

	first := e.Baseline("X", p)
	second := e.Baseline("X", p)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])

	other := e.Baseline("Y", p)
	assert.Len(t, other, 5, "F1 and F2")
}

func TestBaselineCacheBounded(t *testing.T) {
	e := NewWithCacheSize(testStore(), 4)
	for i := 0; i < 1000; i++ {
		e.Baseline("X", filter.Predicates{Venue: filter.Choice{fmt.Sprintf("ground-%d", i)}})
	}
	assert.Equal(t, 4, e.baselines.Len())

	// Evicted keys are recomputed, not lost.
	assert.Len(t, e.Baseline("X", filter.Predicates{}), 6, "F1 and F3")
	assert.Equal(t, 4, e.baselines.Len())
}

func TestBaselineConcurrentMisses(t *testing.T) {
	e := New(testStore())
	var wg sync.WaitGroup
	got := make([][]model.Delivery, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = e.Baseline("Y", filter.Predicates{})
		}(i)
	}
	wg.Wait()
	for _, b := range got {
		assert.Len(t, b, 5)
	}
	assert.Equal(t, 1, e.baselines.Len())
}

func TestBaselineEmptyBatter(t *testing.T) {
	e := New(testStore())
	assert.Empty(t, e.Baseline("", filter.Predicates{}))
	assert.Empty(t, e.Subset("", filter.Predicates{}))
}

func TestGroupsAndLineLength(t *testing.T) {
	e := New(testStore())
	rows := e.Groups("X", filter.Predicates{}, model.ColShotType)
	require.Len(t, rows, 2)
	assert.Equal(t, "Drive", rows[0].Group)
	assert.Equal(t, "Cut", rows[1].Group)

	assert.Empty(t, e.LineLength("X", filter.Predicates{}), "no length or line recorded")
}

func TestDismissalsExcludeRunOuts(t *testing.T) {
	e := New(testStore())
	rows := e.Dismissals("Z", filter.Predicates{})
	assert.Empty(t, rows)

	rows = e.Dismissals("X", filter.Predicates{})
	require.Len(t, rows, 1)
	assert.Equal(t, "B1", rows[0].Group)
	require.Len(t, rows[0].Cells, 1)
	assert.Equal(t, "Caught Out", rows[0].Cells[0].Category)
}

func TestFrequencyByLineLength(t *testing.T) {
	e := New(testStore())
	rows := e.Frequency("X", filter.Predicates{}, "", model.ColShotType, aggregator.FrequencyOptions{})
	assert.Empty(t, rows)

	rows = e.Frequency("X", filter.Predicates{}, model.ColBowler, model.ColShotType, aggregator.FrequencyOptions{})
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Total)
}

func TestRiskRewardUsesWholeStore(t *testing.T) {
	e := New(testStore())
	require.NotEmpty(t, e.Table())

	rows := e.RiskReward("X", filter.Predicates{})
	require.Len(t, rows, 2)
	total := 0.0
	for _, r := range rows {
		total += r.Frequency
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestReport(t *testing.T) {
	e := New(testStore())
	r, err := e.Report(context.Background(), "X", filter.Predicates{})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Summary.Stats.Balls)
	assert.Len(t, r.Shots, 2)
	assert.Empty(t, r.Feet)
	assert.Len(t, r.RiskReward, 2)
	require.NotEmpty(t, r.Progression)
	assert.Equal(t, 1, r.Progression[0].BallNumber)
}

func TestReportCancelled(t *testing.T) {
	e := New(testStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Report(ctx, "X", filter.Predicates{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentQueries(t *testing.T) {
	e := New(testStore())
	want := e.Summary("Y", filter.Predicates{})

	var wg sync.WaitGroup
	results := make([]Summary, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Summary("Y", filter.Predicates{})
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
