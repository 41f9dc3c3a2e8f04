package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/analysis"
	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/loader"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var errNoData = errors.New("no data: run 'crickmetrics import <file.csv>' or pass --data")

// filterRaw backs the filter flags shared by every analysis command.
var filterRaw filter.Raw

func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&filterRaw.Team, "team", "", "batting team")
	f.StringVar(&filterRaw.Opposition, "opposition", "", "bowling team")
	f.StringVar(&filterRaw.Competition, "competition", "", "competition")
	f.StringVar(&filterRaw.Venue, "venue", "", "venue")
	f.StringVar(&filterRaw.Country, "country", "", "host country")
	f.StringVar(&filterRaw.BowlerType, "bowler-type", "", "bowler type (e.g. RF, SLA)")
	f.StringVar(&filterRaw.Bowler, "bowler", "", "bowler name")
	f.StringVar(&filterRaw.Innings, "innings", "", "innings number")
	f.StringVar(&filterRaw.BowlerHand, "bowler-hand", "", "bowler hand (Left or Right)")
	f.StringVar(&filterRaw.BowlingAngle, "bowling-angle", "", "over or round the wicket")
	f.StringVar(&filterRaw.Overs, "overs", "", "over range, e.g. 1-6 or 20")
	f.StringVar(&filterRaw.From, "from", "", "first match date (YYYY-MM-DD)")
	f.StringVar(&filterRaw.To, "to", "", "last match date (YYYY-MM-DD)")
}

// predicates parses the filter flags against the configured date bounds.
func predicates() (filter.Predicates, error) {
	floor, ceil, err := cfg.DateRange()
	if err != nil {
		return filter.Predicates{}, err
	}
	p, err := filterRaw.Parse(floor, ceil)
	if err != nil {
		return p, fmt.Errorf("filters: %w", err)
	}
	return p, nil
}

// loadDeliveries reads the Ball Record Store, either straight from the --data
// CSV or from the selected stored dataset.
func loadDeliveries() ([]model.Delivery, error) {
	if dataPath != "" {
		ds, err := loader.LoadCSV(dataPath, loader.Options{Rename: cfg.Columns.Rename})
		if err != nil {
			return nil, fmt.Errorf("load csv: %w", err)
		}
		return ds.Deliveries, nil
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var summary *model.DatasetSummary
	if datasetHash != "" {
		summary, err = db.GetDatasetByPrefix(datasetHash)
	} else {
		summary, err = db.LatestDataset()
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if summary == nil {
		if datasetHash != "" {
			return nil, fmt.Errorf("no dataset found with prefix %q", datasetHash)
		}
		return nil, errNoData
	}

	ds, err := db.LoadDeliveries(summary.Hash)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}
	log.Debug().Str("dataset", shortHash(summary.Hash)).Int("rows", len(ds)).Msg("loaded dataset")
	return ds, nil
}

func loadEngine() (*analysis.Engine, error) {
	ds, err := loadDeliveries()
	if err != nil {
		return nil, err
	}
	return analysis.New(ds), nil
}

// batterArg checks that the batter has at least one delivery in the store.
func batterArg(e *analysis.Engine, name string) error {
	for _, b := range e.Batters() {
		if b == name {
			return nil
		}
	}
	return fmt.Errorf("unknown batter %q (see 'crickmetrics batters')", name)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// batterQuery loads the engine and parses the filter flags for a command
// that takes a batter argument.
func batterQuery(name string) (*analysis.Engine, filter.Predicates, error) {
	p, err := predicates()
	if err != nil {
		return nil, p, err
	}
	e, err := loadEngine()
	if err != nil {
		return nil, p, err
	}
	if err := batterArg(e, name); err != nil {
		return nil, p, err
	}
	return e, p, nil
}
