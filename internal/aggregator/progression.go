package aggregator

import (
	"github.com/pable/go-cricket-metrics/internal/innings"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Progression numbers the subset's deliveries within each (fixture, innings)
// in chronological order and aggregates every ball number in [from, to].
// Ball number 0 is skipped and numbers with no deliveries are omitted.
func Progression(subset []model.Delivery, from, to int) []model.ProgressionPoint {
	byNumber := make(map[int]*model.BasicStats)
	for _, inn := range innings.Split(subset) {
		for i := range inn.Balls {
			n := i + 1
			if n < from || n > to {
				continue
			}
			s := byNumber[n]
			if s == nil {
				s = &model.BasicStats{}
				byNumber[n] = s
			}
			add(s, &inn.Balls[i])
		}
	}

	var out []model.ProgressionPoint
	for n := from; n <= to; n++ {
		if n == 0 {
			continue
		}
		s, ok := byNumber[n]
		if !ok {
			continue
		}
		out = append(out, model.ProgressionPoint{
			BallNumber:  n,
			SampleSize:  s.Balls,
			SR:          s.SR(),
			BoundaryPct: s.BoundaryPct(),
			DotPct:      s.DotPct(),
			AerialPct:   s.AerialPct(),
		})
	}
	return out
}
