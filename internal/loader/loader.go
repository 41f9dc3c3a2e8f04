// Package loader reads delivery-level CSV files into the normalized Ball Record Store.
package loader

import (
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ErrMissingColumn is returned when an identity column needed to key deliveries is absent.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns cannot be defaulted: without them no delivery can be attributed.
var requiredColumns = []string{"fixtureId", "batsman"}

// Options tunes CSV ingestion.
type Options struct {
	// Rename maps source header names to canonical column names.
	Rename map[string]string
}

// Dataset is the normalized, read-only Ball Record Store for one source file.
type Dataset struct {
	Hash       string
	Source     string
	Columns    map[string]bool // canonical columns present in the source
	Deliveries []model.Delivery
	Dropped    int // rows discarded because ball was outside 1–6
}

// HasColumn reports whether the source carried the canonical column name.
func (ds *Dataset) HasColumn(name string) bool {
	return ds.Columns[name]
}

// Summary counts the dataset's rows, fixtures and batters.
func (ds *Dataset) Summary() model.DatasetSummary {
	fixtures := make(map[string]bool)
	batters := make(map[string]bool)
	for i := range ds.Deliveries {
		fixtures[ds.Deliveries[i].FixtureID] = true
		if b := ds.Deliveries[i].Batsman; b != "" {
			batters[b] = true
		}
	}
	return model.DatasetSummary{
		Hash:     ds.Hash,
		Source:   ds.Source,
		Rows:     len(ds.Deliveries),
		Fixtures: len(fixtures),
		Batters:  len(batters),
	}
}

// LoadCSV reads and normalizes the CSV at path. The dataset hash is the sha256
// of the file contents and serves as the idempotency key for storage.
func LoadCSV(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	ds, err := Read(io.TeeReader(f, h), opts)
	if err != nil {
		return nil, err
	}
	ds.Hash = fmt.Sprintf("%x", h.Sum(nil))
	ds.Source = path
	log.Debug().Str("source", path).Int("rows", len(ds.Deliveries)).
		Int("dropped", ds.Dropped).Msg("loaded deliveries")
	return ds, nil
}

// Read parses CSV from r. The first record is the header row.
func Read(r io.Reader, opts Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if canon, ok := opts.Rename[name]; ok {
			name = canon
		}
		index[name] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	ds := &Dataset{Columns: make(map[string]bool, len(index))}
	for name := range index {
		ds.Columns[name] = true
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return nullable(rec[i])
		}

		d := model.Delivery{
			FixtureID:        get("fixtureId"),
			Innings:          parseInt(get("inns")),
			Over:             parseInt(get("over")),
			Ball:             parseInt(get("ball")),
			Timestamp:        parseTime(get("timestamp")),
			Batsman:          get("batsman"),
			Bowler:           get("bowler"),
			BattingTeam:      get("battingTeam"),
			BowlingTeam:      get("bowlingTeam"),
			BowlerType:       get("bowlerType"),
			BowlerHand:       get("bowlerHand"),
			BowlingAngle:     get("bowlingAngle"),
			BatsmanHand:      get("batsmanHand"),
			Competition:      get("competition"),
			Ground:           get("ground"),
			Country:          get("country"),
			MatchDate:        matchDay(parseTime(get("matchDate"))),
			RunsScored:       parseInt(get("runs_scored")),
			RunsUnknown:      !ds.Columns["runs_scored"],
			IsWicket:         get("is_wicket"),
			DismissalType:    get("dismissalType"),
			Length:           get("parsed_length"),
			Line:             get("parsed_line"),
			ParsedControl:    get("parsed_control"),
			Control:          get("control"),
			Elevation:        get("elevation"),
			ShotType:         get("shot_type"),
			FieldingPosition: get("fielding_position"),
			Foot:             get("foot"),
			Variation:        get("variation"),
			LenVar:           get("parsed_len.var"),
		}

		// Without a ball column every row is kept.
		if ds.Columns["ball"] && (d.Ball < 1 || d.Ball > 6) {
			ds.Dropped++
			continue
		}
		Normalize(&d)
		ds.Deliveries = append(ds.Deliveries, d)
	}
	return ds, nil
}

// nullable maps the null renderings pandas and spreadsheets emit to "".
func nullable(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "nan", "NaN", "NULL", "null", "None":
		return ""
	}
	return s
}

// parseInt accepts integer or float renderings ("3", "3.0"); anything else is 0.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// matchDay keeps only the calendar date as written, at midnight UTC, so the
// day survives storage and comparison regardless of the source offset.
func matchDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"01/02/2006",
	"1/2/2006",
}

// parseTime returns the zero time for empty or unparseable values. Bare
// numbers are treated as unix seconds, or milliseconds when too large for seconds.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > 1e11 {
			return time.UnixMilli(int64(f)).UTC()
		}
		return time.Unix(int64(f), 0).UTC()
	}
	return time.Time{}
}
