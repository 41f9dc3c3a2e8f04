package filter

import (
	"sort"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// Options returns the sorted distinct non-null values of col.
func Options(ds []model.Delivery, col model.Column) []string {
	seen := make(map[string]struct{})
	for i := range ds {
		if v := ds[i].Value(col); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Batters returns every batter in the store, sorted.
func Batters(ds []model.Delivery) []string {
	return Options(ds, model.ColBatsman)
}

// BatterHand returns the most common batsmanHand recorded for batter, or
// "Right" when nothing is recorded. Ties go to the alphabetically first label.
func BatterHand(ds []model.Delivery, batter string) string {
	counts := make(map[string]int)
	for i := range ds {
		if ds[i].Batsman == batter && ds[i].BatsmanHand != "" {
			counts[ds[i].BatsmanHand]++
		}
	}
	best, bestN := "", 0
	for hand, n := range counts {
		if n > bestN || (n == bestN && hand < best) {
			best, bestN = hand, n
		}
	}
	if best == "" {
		return "Right"
	}
	return best
}
