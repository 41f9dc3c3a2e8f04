package expectancy

import (
	"github.com/pable/go-cricket-metrics/internal/model"
)

// RunValue scores one annotated ball: runs plus the change in expectancy from
// its state to the next. The next state keeps innings and over bucket and
// loses a wicket if one fell.
func RunValue(b Ball, t Table) float64 {
	next := b.State
	next.WicketsInHand = max(1, b.State.WicketsInHand-b.Wicket())
	return float64(b.RunsScored) + t.Lookup(next) - t.Lookup(b.State)
}

// RiskRewardByShot builds the expectancy table from ref and scores subset
// against it.
func RiskRewardByShot(subset, ref []model.Delivery) []model.RiskReward {
	if len(subset) == 0 {
		return nil
	}
	return RiskRewardWithTable(subset, BuildTable(ref))
}

// RiskRewardWithTable aggregates run value and wicket rate per shot type.
// States are taken from the subset's own innings partitions. Deliveries with
// no shot type still count toward the frequency denominator. Rows come in
// first-occurrence order of chronologically sorted deliveries.
func RiskRewardWithTable(subset []model.Delivery, t Table) []model.RiskReward {
	if len(subset) == 0 || len(t) == 0 {
		return nil
	}

	type acc struct {
		rv      float64
		wickets int
		balls   int
	}
	var order []string
	byShot := make(map[string]*acc)
	balls := Annotate(subset)
	for _, b := range balls {
		if b.ShotType == "" {
			continue
		}
		a := byShot[b.ShotType]
		if a == nil {
			a = &acc{}
			byShot[b.ShotType] = a
			order = append(order, b.ShotType)
		}
		a.rv += RunValue(b, t)
		a.wickets += b.Wicket()
		a.balls++
	}

	out := make([]model.RiskReward, 0, len(order))
	for _, shot := range order {
		a := byShot[shot]
		out = append(out, model.RiskReward{
			ShotType:          shot,
			ExpectedRunValue:  a.rv / float64(a.balls),
			WicketProbability: float64(a.wickets) / float64(a.balls),
			Frequency:         float64(a.balls) / float64(len(balls)) * 100,
			Balls:             a.balls,
		})
	}
	return out
}
