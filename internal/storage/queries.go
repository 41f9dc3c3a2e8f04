package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
)

const dateLayout = "2006-01-02"

// DatasetExists returns true if a dataset with the given hash is already stored.
func (db *DB) DatasetExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM datasets WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertDataset stores a dataset record and its deliveries in one
// transaction, so a failed import leaves nothing behind. Deliveries are keyed
// by their position: re-importing replaces rather than duplicates.
func (db *DB) InsertDataset(s model.DatasetSummary, ds []model.Delivery) error {
	if s.ImportedAt == "" {
		s.ImportedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO datasets(hash, source, imported_at, row_count, fixtures, batters)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Hash, s.Source, s.ImportedAt, s.Rows, s.Fixtures, s.Batters,
	)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO deliveries(
			dataset_hash, seq, fixture_id, inns, over_no, ball, ts,
			batsman, bowler, batting_team, bowling_team,
			bowler_type, bowler_hand, bowling_angle, batsman_hand,
			competition, ground, country, match_date,
			runs_scored, is_wicket, dismissal_type,
			parsed_length, parsed_line, parsed_control, control, elevation,
			shot_type, fielding_position, foot, variation, len_var
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, d := range ds {
		_, err = stmt.Exec(
			s.Hash, i, d.FixtureID, d.Innings, d.Over, d.Ball, formatTime(d.Timestamp, time.RFC3339Nano),
			d.Batsman, d.Bowler, d.BattingTeam, d.BowlingTeam,
			d.BowlerType, d.BowlerHand, d.BowlingAngle, d.BatsmanHand,
			d.Competition, d.Ground, d.Country, formatTime(d.MatchDate, dateLayout),
			runsValue(d), d.IsWicket, d.DismissalType,
			d.Length, d.Line, d.ParsedControl, d.Control, d.Elevation,
			d.ShotType, d.FieldingPosition, d.Foot, d.Variation, d.LenVar,
		)
		if err != nil {
			return fmt.Errorf("insert delivery %s/%d.%d: %w", d.FixtureID, d.Over, d.Ball, err)
		}
	}
	return tx.Commit()
}

// runsValue stores NULL when the source carried no runs column.
func runsValue(d model.Delivery) any {
	if d.RunsUnknown {
		return nil
	}
	return d.RunsScored
}

// LoadDeliveries returns a dataset's deliveries in import order with the
// derived flags recomputed.
func (db *DB) LoadDeliveries(hash string) ([]model.Delivery, error) {
	rows, err := db.conn.Query(`
		SELECT fixture_id, inns, over_no, ball, ts,
		       batsman, bowler, batting_team, bowling_team,
		       bowler_type, bowler_hand, bowling_angle, batsman_hand,
		       competition, ground, country, match_date,
		       runs_scored, is_wicket, dismissal_type,
		       parsed_length, parsed_line, parsed_control, control, elevation,
		       shot_type, fielding_position, foot, variation, len_var
		FROM deliveries WHERE dataset_hash = ?
		ORDER BY seq`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var ts, matchDate string
		var runs sql.NullInt64
		if err := rows.Scan(
			&d.FixtureID, &d.Innings, &d.Over, &d.Ball, &ts,
			&d.Batsman, &d.Bowler, &d.BattingTeam, &d.BowlingTeam,
			&d.BowlerType, &d.BowlerHand, &d.BowlingAngle, &d.BatsmanHand,
			&d.Competition, &d.Ground, &d.Country, &matchDate,
			&runs, &d.IsWicket, &d.DismissalType,
			&d.Length, &d.Line, &d.ParsedControl, &d.Control, &d.Elevation,
			&d.ShotType, &d.FieldingPosition, &d.Foot, &d.Variation, &d.LenVar,
		); err != nil {
			return nil, err
		}
		d.RunsScored = int(runs.Int64)
		d.RunsUnknown = !runs.Valid
		d.Timestamp = parseTime(ts, time.RFC3339Nano)
		d.MatchDate = parseTime(matchDate, dateLayout)
		loader.Normalize(&d)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDatasets returns all stored datasets, newest import first.
func (db *DB) ListDatasets() ([]model.DatasetSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, imported_at, row_count, fixtures, batters
		FROM datasets ORDER BY imported_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DatasetSummary
	for rows.Next() {
		var s model.DatasetSummary
		if err := rows.Scan(&s.Hash, &s.Source, &s.ImportedAt, &s.Rows, &s.Fixtures, &s.Batters); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDatasetByPrefix finds the first dataset whose hash starts with the given prefix.
func (db *DB) GetDatasetByPrefix(prefix string) (*model.DatasetSummary, error) {
	return db.getDataset(`
		SELECT hash, source, imported_at, row_count, fixtures, batters
		FROM datasets WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%")
}

// LatestDataset returns the most recently imported dataset, or nil when the
// store is empty.
func (db *DB) LatestDataset() (*model.DatasetSummary, error) {
	return db.getDataset(`
		SELECT hash, source, imported_at, row_count, fixtures, batters
		FROM datasets ORDER BY imported_at DESC, hash LIMIT 1`)
}

func (db *DB) getDataset(query string, args ...any) (*model.DatasetSummary, error) {
	var s model.DatasetSummary
	err := db.conn.QueryRow(query, args...).
		Scan(&s.Hash, &s.Source, &s.ImportedAt, &s.Rows, &s.Fixtures, &s.Batters)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteDataset removes a dataset and its deliveries.
func (db *DB) DeleteDataset(hash string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deliveries WHERE dataset_hash = ?", hash); err != nil {
		return fmt.Errorf("delete deliveries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM datasets WHERE hash = ?", hash); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and rows rendered
// as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch v := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(layout)
}

func parseTime(s, layout string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
