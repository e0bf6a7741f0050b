package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/alloycomp/internal/composition"
)

// Environment variables read by the configuration layer.
const (
	EnvHome      = "ALLOYCOMP_HOME"
	EnvConfig    = "ALLOYCOMP_CONFIG"
	EnvLogLevel  = "ALLOYCOMP_LOG_LEVEL"
	EnvLogFormat = "ALLOYCOMP_LOG_FORMAT"
	EnvLogFile   = "ALLOYCOMP_LOG_FILE"
)

// GlobalConfig holds the process-wide configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetGlobalConfig returns the global configuration. When none has been
// installed, it falls back to the defaults with environment overrides.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := GlobalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	cfg = New()
	cfg.applyEnvOverrides()
	return cfg
}

// GetMassTable returns the element table of the global configuration.
func GetMassTable() *composition.MassTable {
	return GetGlobalConfig().Elements
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetOutputPrecision returns the configured output precision.
func GetOutputPrecision() int {
	return GetGlobalConfig().Output.Precision
}

// GetConfigDir returns the alloycomp configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".alloycomp"), nil
}

// DefaultConfigPath returns the configuration file path: $ALLOYCOMP_CONFIG
// when set, otherwise config.yaml in the configuration directory.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureLogDir creates the parent directory of the configured log file.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
