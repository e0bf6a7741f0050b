package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/alloycomp/internal/config"
	"github.com/rshade/alloycomp/internal/logging"
)

// annotationConfigOptional marks commands that still run when the config
// file cannot be loaded, falling back to the defaults.
const annotationConfigOptional = "alloycomp/config-optional"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isWriterTerminal reports whether w is a terminal. Non-file writers such as
// buffers in tests are never terminals.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// NewRootCmd creates the root Cobra command for the alloycomp CLI.
// It loads the configuration, wires up logging and registers the convert,
// elements and config command groups.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "alloycomp",
		Short:        "Convert alloy compositions between wt% and at%",
		Long:         "alloycomp: convert alloy compositions between weight percent and atomic percent, one at a time or for a whole CSV file",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $ALLOYCOMP_HOME/config.yaml)")
	cmd.AddCommand(newConvertCmd(), NewElementsCmd(), newConfigCmd())

	return cmd
}

// loadConfig reads the configuration selected by --config (or the default
// path) and installs it as the global config.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""

	var (
		cfg *config.Config
		err error
	)
	if explicit {
		cfg, err = config.Load(path)
	} else {
		if path, err = config.DefaultConfigPath(); err == nil {
			cfg, err = config.LoadOrDefault(path)
		}
	}
	if err == nil {
		err = cfg.Validate()
	}

	if err != nil {
		if cmd.Annotations[annotationConfigOptional] != "true" {
			return err
		}
		cmd.PrintErrf("Warning: using default configuration: %v\n", err)
		cfg = config.New()
		if path != "" {
			cfg.SetConfigPath(path)
		}
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Convert a single composition from wt% to at%
  alloycomp convert point --direction wt2at Al=90 Cu=10

  # Enter a composition element by element
  alloycomp convert point --interactive

  # Convert the Al and Cu columns of a CSV file from at% to wt%
  alloycomp convert batch alloys.csv --direction at2wt --columns Al,Cu

  # Convert columns 2 through 5 (1-based)
  alloycomp convert batch alloys.csv --start-col 2 --end-col 5

  # List the configured elements
  alloycomp elements

  # Write a default configuration file
  alloycomp config init`

// newConvertCmd creates the convert command group.
func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "convert", Short: "Composition conversion commands"}
	cmd.AddCommand(NewConvertPointCmd(), NewConvertBatchCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
