package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/alloycomp/internal/config"
)

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	t.Setenv(config.EnvConfig, "/etc/alloycomp.yaml")
	path, err = config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/alloycomp.yaml", path)
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(config.ResetGlobalConfigForTest)

	config.ResetGlobalConfigForTest()
	assert.Equal(t, 6, config.GetMassTable().Len(), "defaults are used before a config is installed")

	cfg := config.New()
	cfg.Output.DefaultFormat = config.FormatJSON
	cfg.Output.Precision = 7
	config.SetGlobalConfig(cfg)

	assert.Same(t, cfg, config.GetGlobalConfig())
	assert.Equal(t, config.FormatJSON, config.GetDefaultOutputFormat())
	assert.Equal(t, 7, config.GetOutputPrecision())
	assert.Equal(t, cfg.Logging, config.GetLoggingConfig())
}

func TestEnsureLogDir(t *testing.T) {
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.New()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "deep", "alloycomp.log")
	config.SetGlobalConfig(cfg)

	require.NoError(t, config.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(cfg.Logging.File))
}
