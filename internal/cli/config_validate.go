package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/alloycomp/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax and unknown sections
- Element table: symbols present and unique, masses positive
- Output format and precision
- Logging level and format
- Batch chunk size and worker count`,
		Example: `  # Validate current configuration
  alloycomp config validate

  # Validate and show detailed information
  alloycomp config validate --verbose`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate loads the configuration file directly so that problems
// are reported instead of replaced by the defaults.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path := config.GetGlobalConfig().ConfigPath()
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	load := config.LoadOrDefault
	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		load = config.Load
	}

	cfg, err := load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Configuration file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Elements: %d (%v)\n", cfg.Elements.Len(), cfg.Elements.Symbols())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Batch chunk size: %d\n", cfg.Batch.ChunkSize)
	cmd.Printf("  Batch workers: %d\n", cfg.Batch.Workers)
	cmd.Printf("  Byte order mark: %t\n", cfg.Batch.BOM)
}
