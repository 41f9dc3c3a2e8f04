package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/filter"
	"github.com/pable/go-cricket-metrics/internal/model"
)

const sampleCSV = `fixtureId,inns,over,ball,batsman,bowler,runs_scored,is_wicket,dismissalType,shot_type,matchDate
F1,1,1,1,X,B1,4,False,,Drive,2024-03-01
F1,1,1,2,X,B1,0,True,Caught,Drive,2024-03-01
F1,1,1,3,X,B1,1,False,,Cut,2024-03-01
F1,1,1,4,Y,B1,2,False,,Pull,2024-03-01
`

// workspace writes the sample CSV and returns paths for it, a config file
// that does not exist, and a database.
func workspace(t *testing.T) (csvPath, cfgPath, db string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "balls.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return csvPath, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "data", "deliveries.db")
}

// run executes the root command with fresh global flag state.
func run(t *testing.T, args ...string) error {
	t.Helper()
	dbPath, configPath, dataPath, datasetHash, logLevel = "", "", "", "", ""
	freqCategory, freqGroup = "", ""
	filterRaw = filter.Raw{}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestImportThenAnalyse(t *testing.T) {
	csvPath, cfgPath, db := workspace(t)
	base := []string{"--config", cfgPath, "--db", db, "--log-level", "error"}

	require.NoError(t, run(t, append(base, "import", csvPath)...))
	require.NoError(t, run(t, append(base, "import", csvPath)...), "second import is a no-op")

	ds, err := loadDeliveries()
	require.NoError(t, err)
	assert.Len(t, ds, 4)

	require.NoError(t, run(t, append(base, "summary", "X")...))
	require.NoError(t, run(t, append(base, "shots", "X", "--overs", "1-6")...))
	require.NoError(t, run(t, append(base, "frequency", "X", "--category", "dismissalType", "--group", "bowler")...))
	require.NoError(t, run(t, append(base, "expectancy")...))

	err = run(t, append(base, "summary", "Nobody")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown batter")

	err = run(t, append(base, "frequency", "X")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--category")
}

func TestLoadFromCSVFlag(t *testing.T) {
	csvPath, cfgPath, db := workspace(t)
	require.NoError(t, run(t, "--config", cfgPath, "--db", db, "--data", csvPath, "--log-level", "error", "batters"))

	ds, err := loadDeliveries()
	require.NoError(t, err)
	assert.Len(t, ds, 4)
}

func TestNoDatasetStored(t *testing.T) {
	_, cfgPath, db := workspace(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(db), 0o755))

	err := run(t, "--config", cfgPath, "--db", db, "--log-level", "error", "expectancy")
	assert.ErrorIs(t, err, errNoData)

	err = run(t, "--config", cfgPath, "--db", db, "--dataset", "abc", "--log-level", "error", "expectancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `prefix "abc"`)
}

func TestParsePitchMetric(t *testing.T) {
	m, err := parsePitchMetric("average")
	require.NoError(t, err)
	assert.Equal(t, model.PitchAverage, m)

	_, err = parsePitchMetric("economy")
	assert.Error(t, err)
}

func TestParseColumnFlag(t *testing.T) {
	col, err := parseColumnFlag("group", "")
	require.NoError(t, err)
	assert.Empty(t, col)

	col, err = parseColumnFlag("group", "shot_type")
	require.NoError(t, err)
	assert.Equal(t, model.ColShotType, col)

	_, err = parseColumnFlag("group", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--group")
}
