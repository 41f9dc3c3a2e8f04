// Package innings partitions deliveries into chronologically ordered innings.
package innings

import (
	"sort"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// Key identifies one innings of one fixture.
type Key struct {
	FixtureID string
	Innings   int
}

// Innings is the ordered sequence of deliveries in one (fixture, innings) partition.
type Innings struct {
	Key
	Balls []model.Delivery
}

// Split groups deliveries by (fixture, innings) and orders each group by
// timestamp when every ball in it carries one, otherwise by over then ball.
// Partitions are returned sorted by fixture then innings. The input is not modified.
func Split(ds []model.Delivery) []Innings {
	idx := make(map[Key]int)
	var out []Innings
	for _, d := range ds {
		k := Key{d.FixtureID, d.Innings}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Innings{Key: k})
		}
		out[i].Balls = append(out[i].Balls, d)
	}

	for i := range out {
		order(out[i].Balls)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FixtureID != out[j].FixtureID {
			return out[i].FixtureID < out[j].FixtureID
		}
		return out[i].Innings < out[j].Innings
	})
	return out
}

func order(balls []model.Delivery) {
	timed := true
	for _, b := range balls {
		if b.Timestamp.IsZero() {
			timed = false
			break
		}
	}
	sort.SliceStable(balls, func(i, j int) bool {
		if timed && !balls[i].Timestamp.Equal(balls[j].Timestamp) {
			return balls[i].Timestamp.Before(balls[j].Timestamp)
		}
		if balls[i].Over != balls[j].Over {
			return balls[i].Over < balls[j].Over
		}
		return balls[i].Ball < balls[j].Ball
	})
}
