package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/alloycomp/internal/config"
)

func TestLogFileAnnounced(t *testing.T) {
	setupCLITest(t)
	logPath := filepath.Join(t.TempDir(), "alloycomp.log")
	t.Setenv(config.EnvLogFile, logPath)
	t.Setenv(config.EnvLogLevel, "debug")

	_, stderr, err := runCLI(t, nil, "convert", "point", "Al=100")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Logging to "+logPath)
	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "command started")
}

func TestDebugLogsCaller(t *testing.T) {
	setupCLITest(t)

	_, stderr, err := runCLI(t, nil, "--debug", "convert", "point", "Al=100")
	require.NoError(t, err)

	assert.Contains(t, stderr, "command started")
	assert.Contains(t, stderr, "logging_setup.go")
	assert.NotContains(t, stderr, "Logging to")
}
