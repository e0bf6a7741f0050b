package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/alloycomp/internal/config"
)

// NewElementsCmd creates the elements command, which lists the configured
// element table in canonical order.
func NewElementsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the elements and atomic masses in use",
		Example: `  alloycomp elements
  alloycomp elements --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output
			if format == "" {
				format = config.GetDefaultOutputFormat()
			}
			if format != config.FormatTable && format != config.FormatJSON {
				return fmt.Errorf("invalid output format %q (want table or json)", format)
			}
			return renderElements(cmd.OutOrStdout(), config.GetMassTable(), format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}
