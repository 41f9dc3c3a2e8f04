// Package aggregator computes batting statistics over delivery subsets: the
// canonical per-subset stats, baseline-relative effective metrics, and
// group-wise breakdowns over categorical columns.
package aggregator

import (
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Basic computes the canonical statistics for any set of deliveries.
func Basic(ds []model.Delivery) model.BasicStats {
	var s model.BasicStats
	for i := range ds {
		add(&s, &ds[i])
	}
	return s
}

func add(s *model.BasicStats, d *model.Delivery) {
	s.Balls++
	s.Runs += d.RunsScored
	if d.IsOut {
		s.Outs++
	}
	if d.IsDot {
		s.Dots++
	}
	if d.IsBoundary {
		s.Boundaries++
	}
	if d.IsAerial {
		s.Aerials++
	}
	if d.WithControl {
		s.Controlled++
	}
}

// Effective subtracts the baseline rates from the subset rates. No rounding
// is applied; a zero baseline leaves the subset rates unchanged.
func Effective(s, base model.BasicStats) model.EffectiveMetrics {
	return model.EffectiveMetrics{
		ESR:      s.SR() - base.SR(),
		EControl: s.ControlPct() - base.ControlPct(),
		EAerial:  s.AerialPct() - base.AerialPct(),
	}
}

// tally accumulates BasicStats per non-null value of col. order lists the
// values by first occurrence in ds.
func tally(ds []model.Delivery, col model.Column) (order []string, by map[string]*model.BasicStats) {
	by = make(map[string]*model.BasicStats)
	for i := range ds {
		v := ds[i].Value(col)
		if v == "" {
			continue
		}
		s, ok := by[v]
		if !ok {
			s = &model.BasicStats{}
			by[v] = s
			order = append(order, v)
		}
		add(s, &ds[i])
	}
	return order, by
}

// distinct returns the non-null values of col in first-occurrence order.
func distinct(ds []model.Delivery, col model.Column) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range ds {
		v := ds[i].Value(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// GroupStats produces one row per distinct non-null value of col in subset,
// in first-occurrence order. Each row's effective metrics are measured
// against the baseline deliveries carrying the same value; a value absent
// from the baseline is compared against zero.
func GroupStats(subset, baseline []model.Delivery, col model.Column) []model.GroupStats {
	if len(subset) == 0 {
		return nil
	}
	order, bySubset := tally(subset, col)
	_, byBaseline := tally(baseline, col)

	out := make([]model.GroupStats, 0, len(order))
	for _, g := range order {
		s := *bySubset[g]
		var base model.BasicStats
		if b, ok := byBaseline[g]; ok {
			base = *b
		}
		out = append(out, model.GroupStats{
			Group:      g,
			BasicStats: s,
			Effective:  Effective(s, base),
			Share:      float64(s.Balls) / float64(len(subset)) * 100,
		})
	}
	return out
}

// LineLengthStats produces a row for every (length, line) combination present
// in subset. Lengths form the outer loop and lines the inner, both in
// first-occurrence order. The baseline is the whole population, not partitioned.
func LineLengthStats(subset, baseline []model.Delivery) []model.LineLengthStats {
	if len(subset) == 0 {
		return nil
	}
	type cell struct{ length, line string }
	cells := make(map[cell]*model.BasicStats)
	for i := range subset {
		d := &subset[i]
		if d.Length == "" || d.Line == "" {
			continue
		}
		k := cell{d.Length, d.Line}
		s := cells[k]
		if s == nil {
			s = &model.BasicStats{}
			cells[k] = s
		}
		add(s, d)
	}

	base := Basic(baseline)
	lines := distinct(subset, model.ColLine)
	var out []model.LineLengthStats
	for _, length := range distinct(subset, model.ColLength) {
		for _, line := range lines {
			s, ok := cells[cell{length, line}]
			if !ok {
				continue
			}
			out = append(out, model.LineLengthStats{
				Length:     length,
				Line:       line,
				BasicStats: *s,
				Effective:  Effective(*s, base),
			})
		}
	}
	return out
}
