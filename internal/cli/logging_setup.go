package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/alloycomp/internal/config"
	"github.com/rshade/alloycomp/internal/logging"
)

// setupLogging configures logging based on the config file, environment and
// CLI flags, and stores the logger in the command context.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	lc := loggingCfg.ToLoggingConfig()
	lc.Writer = cmd.ErrOrStderr()
	lc.Caller = debug
	result := logging.NewLoggerWithPath(lc)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}
	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := result.Logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", config.GetGlobalConfig().ConfigPath()).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
