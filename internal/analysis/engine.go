// Package analysis answers batter queries over one loaded delivery store.
//
// The store is never mutated after New, so an Engine can be shared across
// goroutines. Baseline populations are memoized per (batter, predicates) in a
// bounded LRU and the run-expectancy table over the full store is built once.
package analysis

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/expectancy"
	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Engine is the query façade over a read-only store.
type Engine struct {
	store []model.Delivery

	baselines *lru.Cache[string, []model.Delivery]
	building  singleflight.Group

	reOnce sync.Once
	re     expectancy.Table
}

// DefaultBaselineCacheSize is the number of baseline populations New keeps.
const DefaultBaselineCacheSize = 128

// New wraps store. The caller must not modify store afterwards.
func New(store []model.Delivery) *Engine {
	return NewWithCacheSize(store, DefaultBaselineCacheSize)
}

// NewWithCacheSize is New with a custom baseline cache capacity. Sizes below
// one use the default.
func NewWithCacheSize(store []model.Delivery, size int) *Engine {
	if size < 1 {
		size = DefaultBaselineCacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []model.Delivery](size)
	return &Engine{store: store, baselines: cache}
}

// Len returns the number of deliveries in the store.
func (e *Engine) Len() int { return len(e.store) }

// Batters lists every batter in the store, sorted.
func (e *Engine) Batters() []string { return filter.Batters(e.store) }

// Options lists the sorted distinct values of col across the store.
func (e *Engine) Options(col model.Column) []string { return filter.Options(e.store, col) }

// Hand returns the batter's dominant batting hand.
func (e *Engine) Hand(batter string) string { return filter.BatterHand(e.store, batter) }

// Subset returns the batter's deliveries matching p.
func (e *Engine) Subset(batter string, p filter.Predicates) []model.Delivery {
	return filter.Apply(e.store, batter, p)
}

// Baseline returns every delivery, by any batter, in the fixtures where the
// batter played under p's match context. Results are memoized; concurrent
// misses on the same key share one computation.
func (e *Engine) Baseline(batter string, p filter.Predicates) []model.Delivery {
	key := batter + "\x00" + p.Key()
	if b, ok := e.baselines.Get(key); ok {
		return b
	}
	v, _, _ := e.building.Do(key, func() (any, error) {
		if b, ok := e.baselines.Get(key); ok {
			return b, nil
		}
		fixtures := filter.MatchContext(e.store, batter, p)
		b := filter.Population(e.store, fixtures)
		e.baselines.Add(key, b)
		log.Debug().Str("batter", batter).Int("fixtures", len(fixtures)).Int("balls", len(b)).Msg("baseline computed")
		return b, nil
	})
	return v.([]model.Delivery)
}

// Table returns the run-expectancy table over the whole store.
func (e *Engine) Table() expectancy.Table {
	e.reOnce.Do(func() {
		e.re = expectancy.BuildTable(e.store)
		log.Debug().Int("states", len(e.re)).Msg("run expectancy table built")
	})
	return e.re
}

// Summary is the headline view of a batter under a filter.
type Summary struct {
	Batter    string
	Hand      string
	Stats     model.BasicStats
	Baseline  model.BasicStats
	Effective model.EffectiveMetrics
}

// Summary computes the batter's overall stats against the match-context baseline.
func (e *Engine) Summary(batter string, p filter.Predicates) Summary {
	s := aggregator.Basic(e.Subset(batter, p))
	base := aggregator.Basic(e.Baseline(batter, p))
	return Summary{
		Batter:    batter,
		Hand:      e.Hand(batter),
		Stats:     s,
		Baseline:  base,
		Effective: aggregator.Effective(s, base),
	}
}

// Groups breaks the batter's subset down by col.
func (e *Engine) Groups(batter string, p filter.Predicates, col model.Column) []model.GroupStats {
	return aggregator.GroupStats(e.Subset(batter, p), e.Baseline(batter, p), col)
}

// LineLength breaks the batter's subset down by (length, line).
func (e *Engine) LineLength(batter string, p filter.Predicates) []model.LineLengthStats {
	return aggregator.LineLengthStats(e.Subset(batter, p), e.Baseline(batter, p))
}

// Frequency tabulates categoryCol within each value of groupCol. An empty
// groupCol groups by (length, line).
func (e *Engine) Frequency(batter string, p filter.Predicates, groupCol, categoryCol model.Column, opts aggregator.FrequencyOptions) []model.FrequencyRow {
	subset := e.Subset(batter, p)
	if groupCol == "" {
		return aggregator.LineLengthFrequency(subset, categoryCol, opts)
	}
	return aggregator.Frequency(subset, groupCol, categoryCol, opts)
}

// Dismissals is the per-bowler dismissal breakdown. Run outs are excluded as
// they are not credited to the bowler.
func (e *Engine) Dismissals(batter string, p filter.Predicates) []model.FrequencyRow {
	opts := aggregator.FrequencyOptions{SuppressZero: true, Exclude: []string{"Run Out"}}
	return aggregator.Frequency(e.Subset(batter, p), model.ColBowler, model.ColDismissalType, opts)
}

// RiskReward scores the batter's shots against the store-wide expectancy table.
func (e *Engine) RiskReward(batter string, p filter.Predicates) []model.RiskReward {
	return expectancy.RiskRewardWithTable(e.Subset(batter, p), e.Table())
}

// Progression reports how scoring evolves with balls faced in an innings.
func (e *Engine) Progression(batter string, p filter.Predicates, from, to int) []model.ProgressionPoint {
	return aggregator.Progression(e.Subset(batter, p), from, to)
}

// PitchMap evaluates metric on the canonical grid for the batter's hand.
func (e *Engine) PitchMap(batter string, p filter.Predicates, metric model.PitchMetric) []model.PitchCell {
	return aggregator.PitchGrid(e.Subset(batter, p), metric, e.Hand(batter))
}
