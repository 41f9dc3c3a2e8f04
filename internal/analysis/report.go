package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Report bundles every section of a batter profile.
type Report struct {
	Summary     Summary
	Shots       []model.GroupStats
	Feet        []model.GroupStats
	LineLength  []model.LineLengthStats
	Dismissals  []model.FrequencyRow
	RiskReward  []model.RiskReward
	Progression []model.ProgressionPoint
}

// Report computes all profile sections concurrently. Sections only read the
// shared store, so the first error (a cancelled ctx) aborts the rest.
func (e *Engine) Report(ctx context.Context, batter string, p filter.Predicates) (*Report, error) {
	// Warm the shared inputs once so the sections don't serialize on the memo.
	e.Baseline(batter, p)
	e.Table()

	var r Report
	g, ctx := errgroup.WithContext(ctx)
	section := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	section(func() { r.Summary = e.Summary(batter, p) })
	section(func() { r.Shots = e.Groups(batter, p, model.ColShotType) })
	section(func() { r.Feet = e.Groups(batter, p, model.ColFoot) })
	section(func() { r.LineLength = e.LineLength(batter, p) })
	section(func() { r.Dismissals = e.Dismissals(batter, p) })
	section(func() { r.RiskReward = e.RiskReward(batter, p) })
	section(func() { r.Progression = e.Progression(batter, p, 1, 60) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &r, nil
}
