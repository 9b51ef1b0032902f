package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/statenet/pkg/errors"
	"github.com/matzehuels/statenet/pkg/pipeline"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const tomlConfig = `
[columns]
scheme = "custom"

[columns.custom]
itin_id = "id"
mkt_id = "market"
seq_num = "seq"
origin = "from"
dest = "to"

[states]
order = 3
min_weight = 0

[multilayer]
relax_rate = 0.0
parallelism = 2

[filter]
split = 0.25
seed = 7
`

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(write(t, "config.toml", tomlConfig))
	require.NoError(t, err)

	opts := pipeline.DefaultOptions()
	cfg.Apply(&opts)

	assert.Equal(t, "custom", opts.Columns)
	assert.Equal(t, "market", opts.CustomColumns.MktID)
	assert.Equal(t, 3, opts.Order)
	assert.Equal(t, 0, opts.MinWeight)
	assert.Equal(t, 0.0, opts.RelaxRate)
	assert.Equal(t, 2, opts.Parallelism)
	assert.Equal(t, 0.25, opts.Split)
	assert.Equal(t, uint64(7), opts.Seed)

	// Absent keys keep their defaults.
	assert.Equal(t, pipeline.DefaultDataDir, opts.DataDir)
	assert.Equal(t, 0.0, opts.WeightThreshold)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "config.yaml", `
states:
  order: 2
  data_dir: /srv/data
multilayer:
  relax_rate: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	opts := pipeline.DefaultOptions()
	cfg.Apply(&opts)
	assert.Equal(t, 2, opts.Order)
	assert.Equal(t, "/srv/data", opts.DataDir)
	assert.Equal(t, 0.5, opts.RelaxRate)
	assert.Equal(t, pipeline.DefaultMinWeight, opts.MinWeight)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(write(t, "config.yml", ""))
	require.NoError(t, err)

	opts := pipeline.DefaultOptions()
	cfg.Apply(&opts)
	assert.Equal(t, pipeline.DefaultOptions(), opts)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"order out of range", "c.toml", "[states]\norder = 4\n", errors.ErrCodeInvalidConfig},
		{"order zero", "c.toml", "[states]\norder = 0\n", errors.ErrCodeInvalidConfig},
		{"relax rate", "c.yaml", "multilayer:\n  relax_rate: 1.5\n", errors.ErrCodeInvalidConfig},
		{"unknown scheme", "c.toml", "[columns]\nscheme = \"wide\"\n", errors.ErrCodeInvalidConfig},
		{"unknown toml key", "c.toml", "[states]\nordr = 2\n", errors.ErrCodeInvalidConfig},
		{"unknown yaml key", "c.yaml", "states:\n  ordr: 2\n", errors.ErrCodeInvalidConfig},
		{"bad toml", "c.toml", "[states\n", errors.ErrCodeInvalidConfig},
		{"bad extension", "c.json", "{}", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, path, err := LoadDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, &Config{}, cfg)

	dir := filepath.Join(home, appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[states]\norder = 2\n"), 0o644))

	cfg, path, err = LoadDefault("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	require.NotNil(t, cfg.States.Order)
	assert.Equal(t, 2, *cfg.States.Order)

	_, _, err = LoadDefault(filepath.Join(home, "explicit.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/config", appName), dir)
}
