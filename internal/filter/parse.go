package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid wraps every predicate parsing failure.
var ErrInvalid = errors.New("invalid filter")

// DateLayout is the accepted date format for range bounds.
const DateLayout = "2006-01-02"

// ParseChoice splits a comma-separated list, dropping blanks.
func ParseChoice(s string) Choice {
	var c Choice
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			c = append(c, v)
		}
	}
	return c
}

// ParseOverRange parses "min-max" or a single over. Overs run 1 to 20.
// An empty string means no restriction.
func ParseOverRange(s string) (*OverRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}
	first, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("%w: overs %q", ErrInvalid, s)
	}
	last, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return nil, fmt.Errorf("%w: overs %q", ErrInvalid, s)
	}
	if first < 1 || last > 20 || first > last {
		return nil, fmt.Errorf("%w: overs %q outside 1-20", ErrInvalid, s)
	}
	return &OverRange{Min: first, Max: last}, nil
}

// ParseDateRange parses optional from/to bounds. A missing side falls back to
// floor or ceil, and given dates are clamped to [floor, ceil] (a zero bound
// is open). With both sides missing there is no restriction.
func ParseDateRange(from, to string, floor, ceil time.Time) (*DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	r := &DateRange{From: floor, To: ceil}
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return nil, fmt.Errorf("%w: from date %q", ErrInvalid, from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return nil, fmt.Errorf("%w: to date %q", ErrInvalid, to)
		}
		r.To = t
	}
	if !floor.IsZero() && r.From.Before(floor) {
		r.From = floor
	}
	if !ceil.IsZero() && r.To.After(ceil) {
		r.To = ceil
	}
	if r.To.Before(r.From) {
		return nil, fmt.Errorf("%w: date range %s..%s is empty", ErrInvalid, from, to)
	}
	return r, nil
}

// Raw holds predicate values as typed by a user, one string per predicate.
type Raw struct {
	Team, Opposition, Competition, Venue, Country string
	BowlerType, Bowler, Innings                   string
	BowlerHand, BowlingAngle                      string
	Overs                                         string
	From, To                                      string
}

// Parse converts raw user input into a predicate set. floor and ceil bound
// an open-ended date range.
func (r Raw) Parse(floor, ceil time.Time) (Predicates, error) {
	p := Predicates{
		ForTeam:       ParseChoice(r.Team),
		Opposition:    ParseChoice(r.Opposition),
		Competition:   ParseChoice(r.Competition),
		Venue:         ParseChoice(r.Venue),
		HostCountry:   ParseChoice(r.Country),
		BowlerType:    ParseChoice(r.BowlerType),
		AgainstBowler: ParseChoice(r.Bowler),
		Innings:       ParseChoice(r.Innings),
		BowlerHand:    ParseChoice(r.BowlerHand),
		BowlingAngle:  ParseChoice(r.BowlingAngle),
	}
	for _, inn := range p.Innings {
		if _, err := strconv.Atoi(inn); err != nil && inn != All {
			return p, fmt.Errorf("%w: innings %q", ErrInvalid, inn)
		}
	}
	var err error
	if p.Overs, err = ParseOverRange(r.Overs); err != nil {
		return p, err
	}
	if p.Dates, err = ParseDateRange(r.From, r.To, floor, ceil); err != nil {
		return p, err
	}
	return p, nil
}
