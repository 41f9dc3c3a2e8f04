package aggregator

import (
	"github.com/pable/go-cricket-metrics/internal/model"
)

// FrequencyOptions tunes frequency-only breakdowns.
type FrequencyOptions struct {
	// SuppressZero omits cells whose category never occurs in the group.
	SuppressZero bool
	// Exclude removes categories from the output, e.g. "Run Out" for
	// per-bowler dismissal tables.
	Exclude []string
}

func (o FrequencyOptions) excluded(v string) bool {
	for _, e := range o.Exclude {
		if e == v {
			return true
		}
	}
	return false
}

// categories lists the non-null, non-excluded values of col in subset.
func (o FrequencyOptions) categories(subset []model.Delivery, col model.Column) []string {
	var out []string
	for _, c := range distinct(subset, col) {
		if !o.excluded(c) {
			out = append(out, c)
		}
	}
	return out
}

func (o FrequencyOptions) cells(balls []*model.Delivery, categoryCol model.Column, categories []string) []model.FrequencyCell {
	counts := make(map[string]int, len(categories))
	for _, d := range balls {
		counts[d.Value(categoryCol)]++
	}
	out := make([]model.FrequencyCell, 0, len(categories))
	for _, c := range categories {
		n := counts[c]
		if n == 0 && o.SuppressZero {
			continue
		}
		out = append(out, model.FrequencyCell{
			Category: c,
			Count:    n,
			Pct:      float64(n) / float64(len(balls)) * 100,
		})
	}
	return out
}

// Frequency reports, for each non-null value of groupCol, the share of the
// group's deliveries falling in each category of categoryCol. The percentage
// denominator is every delivery in the group, including those with a null
// category. Returns nil when the subset has no categories at all.
func Frequency(subset []model.Delivery, groupCol, categoryCol model.Column, opts FrequencyOptions) []model.FrequencyRow {
	categories := opts.categories(subset, categoryCol)
	if len(categories) == 0 {
		return nil
	}
	groups := make(map[string][]*model.Delivery)
	for i := range subset {
		if g := subset[i].Value(groupCol); g != "" {
			groups[g] = append(groups[g], &subset[i])
		}
	}

	var out []model.FrequencyRow
	for _, g := range distinct(subset, groupCol) {
		balls := groups[g]
		out = append(out, model.FrequencyRow{
			Group: g,
			Total: len(balls),
			Cells: opts.cells(balls, categoryCol, categories),
		})
	}
	return out
}

// LineLengthFrequency is Frequency keyed by (length, line) combinations,
// lengths outer and lines inner, dropping empty combinations.
func LineLengthFrequency(subset []model.Delivery, categoryCol model.Column, opts FrequencyOptions) []model.FrequencyRow {
	categories := opts.categories(subset, categoryCol)
	if len(categories) == 0 {
		return nil
	}
	type cell struct{ length, line string }
	cells := make(map[cell][]*model.Delivery)
	for i := range subset {
		d := &subset[i]
		if d.Length == "" || d.Line == "" {
			continue
		}
		k := cell{d.Length, d.Line}
		cells[k] = append(cells[k], d)
	}

	lines := distinct(subset, model.ColLine)
	var out []model.FrequencyRow
	for _, length := range distinct(subset, model.ColLength) {
		for _, line := range lines {
			balls := cells[cell{length, line}]
			if len(balls) == 0 {
				continue
			}
			out = append(out, model.FrequencyRow{
				Length: length,
				Line:   line,
				Total:  len(balls),
				Cells:  opts.cells(balls, categoryCol, categories),
			})
		}
	}
	return out
}
