// Package expectancy builds the run-expectancy table over game states and
// scores deliveries by run value.
package expectancy

import (
	"fmt"
	"sort"

	"github.com/pable/go-cricket-metrics/internal/innings"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Over buckets, the coarse phase of a T20 innings.
const (
	Powerplay = "1-6"
	Middle    = "7-15"
	Death     = "16-20"
)

// Buckets lists the over buckets in innings order.
var Buckets = []string{Powerplay, Middle, Death}

// OverBucket maps an over number to its phase bucket.
func OverBucket(over int) string {
	switch {
	case over <= 6:
		return Powerplay
	case over <= 15:
		return Middle
	default:
		return Death
	}
}

// State is the game situation at the start of a delivery.
type State struct {
	Innings       int
	Bucket        string
	WicketsInHand int
}

func (s State) String() string {
	return fmt.Sprintf("inns %d, overs %s, %d wkts", s.Innings, s.Bucket, s.WicketsInHand)
}

// Ball is a delivery annotated with its pre-ball state and the runs scored
// from it to the end of its innings, inclusive.
type Ball struct {
	model.Delivery
	State      State
	FutureRuns int
}

// Wicket is 1 when the batter was out on this ball, else 0.
func (b Ball) Wicket() int {
	if b.IsOut {
		return 1
	}
	return 0
}

// Annotate walks each (fixture, innings) partition in chronological order and
// attaches state and future runs to every delivery. The ball on which a
// wicket falls is still counted at its pre-ball wickets in hand.
func Annotate(ds []model.Delivery) []Ball {
	out := make([]Ball, 0, len(ds))
	for _, inn := range innings.Split(ds) {
		total := 0
		for i := range inn.Balls {
			total += inn.Balls[i].RunsScored
		}

		wickets, cumRuns := 0, 0
		for _, d := range inn.Balls {
			b := Ball{Delivery: d}
			wickets += b.Wicket()
			cumRuns += d.RunsScored
			b.State = State{
				Innings:       d.Innings,
				Bucket:        OverBucket(d.Over),
				WicketsInHand: clip(10-wickets+b.Wicket(), 1, 10),
			}
			b.FutureRuns = total - cumRuns + d.RunsScored
			out = append(out, b)
		}
	}
	return out
}

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Entry is one observed state and its mean future runs.
type Entry struct {
	State
	RE      float64
	Samples int
}

// Table maps game states to run expectancy. States never observed are absent.
type Table map[State]Entry

// BuildTable computes the mean future runs per state over the reference
// population. An empty population yields an empty table.
func BuildTable(ref []model.Delivery) Table {
	type acc struct{ sum, n int }
	sums := make(map[State]*acc)
	for _, b := range Annotate(ref) {
		a := sums[b.State]
		if a == nil {
			a = &acc{}
			sums[b.State] = a
		}
		a.sum += b.FutureRuns
		a.n++
	}

	t := make(Table, len(sums))
	for s, a := range sums {
		t[s] = Entry{State: s, RE: float64(a.sum) / float64(a.n), Samples: a.n}
	}
	return t
}

// Lookup returns RE for s, or 0 for a state with no observations.
func (t Table) Lookup(s State) float64 {
	return t[s].RE
}

// Entries returns the table ordered by innings, bucket, then wickets in hand
// descending.
func (t Table) Entries() []Entry {
	out := make([]Entry, 0, len(t))
	for _, e := range t {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Innings != b.Innings {
			return a.Innings < b.Innings
		}
		if a.Bucket != b.Bucket {
			return bucketIndex(a.Bucket) < bucketIndex(b.Bucket)
		}
		return a.WicketsInHand > b.WicketsInHand
	})
	return out
}

func bucketIndex(b string) int {
	for i, v := range Buckets {
		if v == b {
			return i
		}
	}
	return len(Buckets)
}
