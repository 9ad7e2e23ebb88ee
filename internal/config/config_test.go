package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/venvx/internal/config"
	"github.com/hbjs97/venvx/internal/testutil"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "venv", cfg.VenvDir)
	assert.Equal(t, ">=3.8", cfg.Python)
	assert.True(t, cfg.IsPrompt())
	assert.False(t, cfg.AutoInstallRequirements)
	assert.Equal(t, 7, cfg.CacheTTLDays)
}

func TestLoad_FullFile(t *testing.T) {
	path := testutil.TempConfigFile(t, `version = 1
venv_dir = ".venv"
python = ">=3.10"
python_bin = "/opt/python/bin/python3"
prompt = false
auto_install_requirements = true
cache_ttl_days = 30
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".venv", cfg.VenvDir)
	assert.Equal(t, ">=3.10", cfg.Python)
	assert.Equal(t, "/opt/python/bin/python3", cfg.PythonBin)
	assert.False(t, cfg.IsPrompt())
	assert.True(t, cfg.AutoInstallRequirements)
	assert.Equal(t, 30, cfg.CacheTTLDays)
}

func TestLoad_InvalidVenvDir(t *testing.T) {
	path := testutil.TempConfigFile(t, `venv_dir = "nested/venv"`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_AbsoluteVenvDir(t *testing.T) {
	path := testutil.TempConfigFile(t, `venv_dir = "/tmp/venv"`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_InvalidConstraint(t *testing.T) {
	path := testutil.TempConfigFile(t, `python = "newest please"`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoad_MalformedToml(t *testing.T) {
	path := testutil.TempConfigFile(t, `venv_dir = `)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestConstraint(t *testing.T) {
	cfg := config.Default()

	cons, err := cfg.Constraint()
	require.NoError(t, err)
	assert.NotNil(t, cons)
}

func TestConfigHash_StableAndDistinct(t *testing.T) {
	a := config.Default()
	b := config.Default()
	assert.Equal(t, a.ConfigHash(), b.ConfigHash())
	assert.Len(t, a.ConfigHash(), 12)

	b.Python = ">=3.12"
	assert.NotEqual(t, a.ConfigHash(), b.ConfigHash())
}
