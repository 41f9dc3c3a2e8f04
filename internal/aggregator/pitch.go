package aggregator

import (
	"github.com/pable/go-cricket-metrics/internal/model"
)

// PitchGrid evaluates metric over the canonical lengths × lines grid, lines
// ordered off-to-leg for the given batting hand ("Left" mirrors the lines).
// Every grid cell is returned; cells with no deliveries are undefined, as is
// an average with no dismissals. Labels outside the canonical set are ignored.
func PitchGrid(subset []model.Delivery, metric model.PitchMetric, hand string) []model.PitchCell {
	lines := model.LinesRHB
	if hand == "Left" {
		lines = model.LinesLHB
	}

	type cell struct{ length, line string }
	cells := make(map[cell]*model.BasicStats)
	for i := range subset {
		d := &subset[i]
		k := cell{d.Length, d.Line}
		s := cells[k]
		if s == nil {
			s = &model.BasicStats{}
			cells[k] = s
		}
		add(s, d)
	}

	out := make([]model.PitchCell, 0, len(model.Lengths)*len(lines))
	for _, length := range model.Lengths {
		for _, line := range lines {
			pc := model.PitchCell{Length: length, Line: line}
			if s, ok := cells[cell{length, line}]; ok {
				pc.Balls = s.Balls
				pc.Value, pc.Defined = pitchValue(*s, metric)
			}
			out = append(out, pc)
		}
	}
	return out
}

func pitchValue(s model.BasicStats, metric model.PitchMetric) (float64, bool) {
	switch metric {
	case model.PitchControl:
		return s.ControlPct(), true
	case model.PitchAverage:
		return s.Average()
	case model.PitchSR:
		return s.SR(), true
	}
	return 0, true
}
