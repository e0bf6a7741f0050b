// Package config loads and validates the alloycomp configuration file.
//
// The file lives at $ALLOYCOMP_HOME/config.yaml (default ~/.alloycomp/config.yaml)
// and holds the atomic mass table along with output, logging and batch settings.
// Sections missing from the file keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/alloycomp/internal/composition"
	"github.com/rshade/alloycomp/internal/logging"
)

// Output formats for single-point results.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Batch limits.
const (
	DefaultChunkSize = 100
	MaxChunkSize     = 1000
	DefaultWorkers   = 1
	MaxWorkers       = 64
	MaxPrecision     = 15
)

// Config is the full alloycomp configuration.
type Config struct {
	Elements *composition.MassTable `yaml:"elements" json:"elements"`
	Output   OutputConfig           `yaml:"output"   json:"output"`
	Logging  LoggingConfig          `yaml:"logging"  json:"logging"`
	Batch    BatchConfig            `yaml:"batch"    json:"batch"`

	configPath string
}

// OutputConfig controls how results are displayed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// BatchConfig tunes CSV conversion.
type BatchConfig struct {
	ChunkSize int  `yaml:"chunk_size" json:"chunk_size"`
	Workers   int  `yaml:"workers"    json:"workers"`
	BOM       bool `yaml:"bom"        json:"bom"`
}

// New returns a configuration populated with defaults and the stock element
// table. The config path is the default path; nothing is read from disk.
func New() *Config {
	path, err := DefaultConfigPath()
	if err != nil {
		path = ""
	}
	return &Config{
		Elements: composition.DefaultMassTable(),
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     composition.DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Batch: BatchConfig{
			ChunkSize: DefaultChunkSize,
			Workers:   DefaultWorkers,
			BOM:       true,
		},
		configPath: path,
	}
}

// Load reads the configuration file at path on top of the defaults and applies
// environment overrides. The file must exist.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.configPath = path
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults, with environment
// overrides applied, when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := New()
		cfg.configPath = path
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(path)
}

// ConfigPath returns the file this configuration is read from and saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Elements == nil || c.Elements.Len() == 0 {
		errs = append(errs, errors.New("elements: at least one element is required"))
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format: %q is not one of table, json", c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("output.precision: %d is outside 0-%d", c.Output.Precision, MaxPrecision))
	}

	if !isValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format: %q is not one of console, json", c.Logging.Format))
	}

	if c.Batch.ChunkSize < 1 || c.Batch.ChunkSize > MaxChunkSize {
		errs = append(errs, fmt.Errorf("batch.chunk_size: %d is outside 1-%d", c.Batch.ChunkSize, MaxChunkSize))
	}
	if c.Batch.Workers < 1 || c.Batch.Workers > MaxWorkers {
		errs = append(errs, fmt.Errorf("batch.workers: %d is outside 1-%d", c.Batch.Workers, MaxWorkers))
	}

	return errors.Join(errs...)
}

// Save writes the configuration as YAML to its config path, creating the
// parent directory when needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing configuration %s: %w", c.configPath, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
}

func isValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return true
	default:
		return false
	}
}
