package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	from, to, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Equal(t, "2019-07-26", from.Format(dateLayout))
	assert.Equal(t, "2025-10-30", to.Format(dateLayout))
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data: /srv/balls.csv
log_level: debug
columns:
  rename:
    Batter: batsman
    MatchID: fixtureId
server:
  addr: 127.0.0.1:9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/balls.csv", cfg.Data)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, map[string]string{"Batter": "batsman", "MatchID": "fixtureId"}, cfg.Columns.Rename)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().DB, cfg.DB)
	assert.Equal(t, "2019-07-26", cfg.Dates.Min)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRejectsInvertedDates(t *testing.T) {
	_, err := Load(writeConfig(t, "dates:\n  min: 2024-01-01\n  max: 2023-01-01\n"))
	assert.ErrorContains(t, err, "before")
}
