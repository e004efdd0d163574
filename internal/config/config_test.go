package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "armcalc.yaml")
	raw := `
log_level: debug
source: postgres
workers: 8
data_dir: /srv/gamedata
files:
  correction_graph: /srv/curves.json
database:
  host: db
  port: 6432
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourcePostgres, cfg.Source)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "armcalc", cfg.Database.User, "unset fields keep defaults")
	assert.Equal(t, "postgres://armcalc:armcalc@db:6432/armcalc?sslmode=disable", cfg.Database.DSN())

	files := cfg.DataFiles()
	assert.Equal(t, "/srv/curves.json", files.CorrectionGraph)
	assert.Equal(t, filepath.Join("/srv/gamedata", "armaments.json"), files.Armaments)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"unknown source", "source: redis\n"},
		{"zero workers", "workers: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "armcalc.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0o644))

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "armcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_ShippedConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", "config", "armcalc.yaml"))
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, Default().Database, cfg.Database)
	assert.Equal(t, "internal/data/testdata", cfg.DataDir)
}
