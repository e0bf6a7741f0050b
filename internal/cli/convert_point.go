package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/alloycomp/internal/composition"
	"github.com/rshade/alloycomp/internal/config"
)

// ErrNoComposition is returned when convert point has neither arguments nor --interactive.
var ErrNoComposition = errors.New("no composition given: pass Symbol=value arguments or use --interactive")

// pointParams holds the flags of the convert point command.
type pointParams struct {
	direction   string
	interactive bool
	output      string
	precision   int
}

// NewConvertPointCmd creates the convert point command, which converts one
// composition given as Symbol=value arguments or entered interactively.
func NewConvertPointCmd() *cobra.Command {
	var params pointParams

	cmd := &cobra.Command{
		Use:   "point [Symbol=value ...]",
		Short: "Convert a single composition",
		Long: `Converts a single composition between weight percent and atomic percent.

Values are given as Symbol=value pairs, or entered one element at a time with
--interactive. Every symbol must be in the element table and every value must
be a non-negative number. A warning is printed when the input does not add up
to 100.`,
		Example: `  # wt% to at%
  alloycomp convert point Al=90 Cu=10

  # at% to wt% as JSON
  alloycomp convert point --direction at2wt --output json Al=95 Cu=5

  # Prompt for the direction and each element
  alloycomp convert point --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertPoint(cmd, args, params)
		},
	}

	cmd.Flags().StringVarP(&params.direction, "direction", "d", composition.WtToAt.String(),
		"conversion direction: wt2at or at2wt")
	cmd.Flags().BoolVarP(&params.interactive, "interactive", "i", false,
		"prompt for the direction and each element")
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: table or json (default from config)")
	cmd.Flags().IntVar(&params.precision, "precision", -1,
		"decimal places in table output (default from config)")

	return cmd
}

func runConvertPoint(cmd *cobra.Command, args []string, params pointParams) error {
	cfg := config.GetGlobalConfig()
	table := cfg.Elements

	format := params.output
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if format != config.FormatTable && format != config.FormatJSON {
		return fmt.Errorf("invalid output format %q (want table or json)", format)
	}

	precision := params.precision
	if precision < 0 {
		precision = config.GetOutputPrecision()
	}
	if precision > config.MaxPrecision {
		return fmt.Errorf("precision %d is outside 0-%d", precision, config.MaxPrecision)
	}

	direction, err := composition.ParseDirection(params.direction)
	if err != nil {
		return err
	}

	var input composition.Composition
	switch {
	case len(args) > 0:
		if params.interactive {
			return errors.New("--interactive cannot be combined with Symbol=value arguments")
		}
		if input, err = parsePointArgs(args); err != nil {
			return err
		}
	case params.interactive:
		p := NewPrompter(cmd.ErrOrStderr(), cmd.InOrStdin())
		if !cmd.Flags().Changed("direction") {
			if direction, err = p.Direction(); err != nil {
				return err
			}
		}
		if input, err = p.Composition(table, direction.From()); err != nil {
			return err
		}
	default:
		return ErrNoComposition
	}

	warn, err := composition.ValidatePoint(input, table, direction.From())
	if err != nil {
		return err
	}
	if warn != nil {
		logger.Warn().Float64("total", warn.Total).Str("unit", string(warn.Unit)).Msg("input does not sum to 100")
		renderWarning(cmd.ErrOrStderr(), warn.String())
	}

	output := composition.Convert(direction, input, table)
	logger.Debug().
		Str("direction", direction.String()).
		Int("elements", len(input)).
		Int("converted", len(output)).
		Msg("point conversion complete")

	res := newPointResult(direction, input, output, table, warn)
	return renderPointResult(cmd.OutOrStdout(), res, format, precision)
}

// parsePointArgs parses Symbol=value arguments. Symbols are case-sensitive
// and may appear only once.
func parsePointArgs(args []string) (composition.Composition, error) {
	c := make(composition.Composition, len(args))
	for _, arg := range args {
		sym, raw, ok := strings.Cut(arg, "=")
		sym = strings.TrimSpace(sym)
		if !ok || sym == "" {
			return nil, fmt.Errorf("invalid argument %q (want Symbol=value)", arg)
		}
		if _, dup := c[sym]; dup {
			return nil, fmt.Errorf("%w: %s given more than once", composition.ErrDuplicateElement, sym)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", composition.ErrInvalidValue, sym, raw)
		}
		c[sym] = v
	}
	return c, nil
}
