// Package filter narrows the Ball Record Store to a batter and a set of
// categorical, over-range and date-range predicates.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// All is the sentinel choice meaning "no restriction".
const All = "All"

// Choice is a list of allowed values. An empty list, or one containing All,
// imposes no restriction.
type Choice []string

// Any reports whether the choice is unrestricted.
func (c Choice) Any() bool {
	if len(c) == 0 {
		return true
	}
	for _, v := range c {
		if v == All {
			return true
		}
	}
	return false
}

func (c Choice) match(v string) bool {
	if c.Any() {
		return true
	}
	for _, want := range c {
		if want == v {
			return true
		}
	}
	return false
}

// OverRange is an inclusive over window.
type OverRange struct {
	Min, Max int
}

// DateRange is an inclusive match-date window; bounds are compared by calendar day.
type DateRange struct {
	From, To time.Time
}

func (r DateRange) contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := calendarDay(t)
	return !day.Before(calendarDay(r.From)) && !day.After(calendarDay(r.To))
}

// calendarDay is midnight UTC of t's date in t's own location, so an offset
// timestamp keeps the day it was written with.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Predicates is the Filter Predicate Set. Every predicate is optional and they
// combine with logical AND.
type Predicates struct {
	ForTeam       Choice // battingTeam
	Opposition    Choice // bowlingTeam
	Competition   Choice
	Venue         Choice // ground
	HostCountry   Choice // country
	BowlerType    Choice
	AgainstBowler Choice // bowler
	Innings       Choice // inns, compared as decimal strings
	BowlerHand    Choice
	BowlingAngle  Choice
	Overs         *OverRange
	Dates         *DateRange
}

// Key is a stable string form of the predicate set, used to memoize baselines.
func (p Predicates) Key() string {
	var b strings.Builder
	for _, c := range []Choice{p.ForTeam, p.Opposition, p.Competition, p.Venue, p.HostCountry,
		p.BowlerType, p.AgainstBowler, p.Innings, p.BowlerHand, p.BowlingAngle} {
		if c.Any() {
			b.WriteString("*")
		} else {
			b.WriteString(strings.Join(c, "\x1f"))
		}
		b.WriteByte('|')
	}
	if p.Overs != nil {
		fmt.Fprintf(&b, "%d-%d", p.Overs.Min, p.Overs.Max)
	}
	b.WriteByte('|')
	if p.Dates != nil {
		b.WriteString(p.Dates.From.Format("2006-01-02") + ".." + p.Dates.To.Format("2006-01-02"))
	}
	return b.String()
}

// contextMatch applies the predicates that describe the match situation
// rather than the batter's own performance.
func (p Predicates) contextMatch(d *model.Delivery) bool {
	return p.ForTeam.match(d.BattingTeam) &&
		p.Opposition.match(d.BowlingTeam) &&
		p.Competition.match(d.Competition) &&
		p.Venue.match(d.Ground) &&
		p.HostCountry.match(d.Country) &&
		p.Innings.match(strconv.Itoa(d.Innings))
}

// Match reports whether d satisfies every predicate.
func (p Predicates) Match(d *model.Delivery) bool {
	if !p.contextMatch(d) {
		return false
	}
	if p.Overs != nil && (d.Over < p.Overs.Min || d.Over > p.Overs.Max) {
		return false
	}
	if p.Dates != nil && !p.Dates.contains(d.MatchDate) {
		return false
	}
	return p.BowlerType.match(d.BowlerType) &&
		p.AgainstBowler.match(d.Bowler) &&
		p.BowlerHand.match(d.BowlerHand) &&
		p.BowlingAngle.match(d.BowlingAngle)
}

// Apply returns the batter's deliveries satisfying p. An empty batter selects
// nothing. The result is a fresh slice; the store is never modified.
func Apply(ds []model.Delivery, batter string, p Predicates) []model.Delivery {
	if batter == "" {
		return nil
	}
	var out []model.Delivery
	for i := range ds {
		d := &ds[i]
		if d.Batsman == batter && p.Match(d) {
			out = append(out, *d)
		}
	}
	return out
}

// MatchContext returns the fixtures the batter appeared in, narrowed by the
// context predicates (team, opposition, competition, venue, host country,
// innings) applied to any delivery of the fixture. Fixture IDs are returned in
// first-occurrence order. An empty batter yields no fixtures.
func MatchContext(ds []model.Delivery, batter string, p Predicates) []string {
	if batter == "" {
		return nil
	}
	played := make(map[string]bool)
	for i := range ds {
		if ds[i].Batsman == batter {
			played[ds[i].FixtureID] = true
		}
	}

	seen := make(map[string]bool)
	var out []string
	for i := range ds {
		d := &ds[i]
		if !played[d.FixtureID] || seen[d.FixtureID] {
			continue
		}
		if p.contextMatch(d) {
			seen[d.FixtureID] = true
			out = append(out, d.FixtureID)
		}
	}
	return out
}

// Population returns every delivery, by any batter, in the given fixtures:
// the "average batter" baseline population.
func Population(ds []model.Delivery, fixtures []string) []model.Delivery {
	if len(fixtures) == 0 {
		return nil
	}
	want := make(map[string]bool, len(fixtures))
	for _, f := range fixtures {
		want[f] = true
	}
	var out []model.Delivery
	for i := range ds {
		if want[ds[i].FixtureID] {
			out = append(out, ds[i])
		}
	}
	return out
}
