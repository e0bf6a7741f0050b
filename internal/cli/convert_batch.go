package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/alloycomp/internal/batch"
	"github.com/rshade/alloycomp/internal/composition"
	"github.com/rshade/alloycomp/internal/config"
)

// defaultPreviewRows is the number of converted rows shown after a batch run.
const defaultPreviewRows = 5

// ErrNoColumnSelection is returned when convert batch is given neither
// --columns nor a column range.
var ErrNoColumnSelection = errors.New("select element columns with --columns or --start-col/--end-col")

// batchParams holds the flags of the convert batch command.
type batchParams struct {
	direction   string
	columns     []string
	startCol    int
	endCol      int
	outputFile  string
	noBOM       bool
	dryRun      bool
	preview     int
	listColumns bool
	workers     int
	chunkSize   int
	precision   int
}

// NewConvertBatchCmd creates the convert batch command, which converts the
// element columns of every row of a CSV file and writes the source table with
// the converted columns appended.
func NewConvertBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Convert the element columns of a CSV file",
		Long: `Converts every row of a CSV file between weight percent and atomic percent.

Element columns are chosen by name with --columns or by a 1-based inclusive
range with --start-col and --end-col. Columns whose header is not a known
element are skipped with a warning. The source table is written to
FILE-at.csv or FILE-wt.csv with one Symbol(unit%) column appended per converted
element. Rows whose element values are all zero or missing keep zeros; cells
a row could not use are left empty.

Any non-numeric element cell aborts the run and no output file is written.`,
		Example: `  # Convert the Al, Cu and Mg columns from wt% to at%
  alloycomp convert batch alloys.csv --columns Al,Cu,Mg

  # Convert columns 3 to 8 from at% to wt%
  alloycomp convert batch alloys.csv --direction at2wt --start-col 3 --end-col 8

  # Show the columns of a file
  alloycomp convert batch alloys.csv --list-columns

  # Convert without writing, previewing 10 rows
  alloycomp convert batch alloys.csv --columns Al,Cu --dry-run --preview 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertBatch(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.direction, "direction", "d", composition.WtToAt.String(),
		"conversion direction: wt2at or at2wt")
	cmd.Flags().StringSliceVarP(&params.columns, "columns", "c", nil,
		"element column names (comma-separated)")
	cmd.Flags().IntVar(&params.startCol, "start-col", 0, "first element column, 1-based")
	cmd.Flags().IntVar(&params.endCol, "end-col", 0, "last element column, 1-based and inclusive")
	cmd.Flags().StringVar(&params.outputFile, "output-file", "",
		"output path (default FILE-at.csv or FILE-wt.csv)")
	cmd.Flags().BoolVar(&params.noBOM, "no-bom", false, "do not write a UTF-8 byte order mark")
	cmd.Flags().BoolVar(&params.dryRun, "dry-run", false, "convert without writing the output file")
	cmd.Flags().IntVar(&params.preview, "preview", defaultPreviewRows, "converted rows to display (0 to disable)")
	cmd.Flags().BoolVar(&params.listColumns, "list-columns", false, "list the columns of FILE and exit")
	cmd.Flags().IntVar(&params.workers, "workers", 0, "concurrent chunk workers (default from config)")
	cmd.Flags().IntVar(&params.chunkSize, "chunk-size", 0, "rows per chunk (default from config)")
	cmd.Flags().IntVar(&params.precision, "precision", -1,
		"decimal places of converted values (default full precision)")

	cmd.MarkFlagsMutuallyExclusive("columns", "start-col")
	cmd.MarkFlagsMutuallyExclusive("columns", "end-col")
	cmd.MarkFlagsRequiredTogether("start-col", "end-col")

	return cmd
}

func runConvertBatch(cmd *cobra.Command, path string, params batchParams) error {
	cfg := config.GetGlobalConfig()

	if params.listColumns {
		header, err := batch.LoadHeader(path)
		if err != nil {
			return err
		}
		renderColumns(cmd.OutOrStdout(), header, cfg.Elements)
		return nil
	}

	direction, err := composition.ParseDirection(params.direction)
	if err != nil {
		return err
	}
	if len(params.columns) == 0 && !cmd.Flags().Changed("start-col") {
		return ErrNoColumnSelection
	}
	if params.precision > config.MaxPrecision {
		return fmt.Errorf("precision %d is outside 0-%d", params.precision, config.MaxPrecision)
	}

	workers := params.workers
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}
	chunkSize := params.chunkSize
	if chunkSize <= 0 {
		chunkSize = cfg.Batch.ChunkSize
	}

	pipeline := batch.NewPipeline(cfg.Elements,
		batch.WithWorkers(workers),
		batch.WithChunkSize(chunkSize),
		batch.WithPrecision(params.precision),
	).WithWriteOptions(batch.WithBOM(cfg.Batch.BOM && !params.noBOM))

	req := batch.Request{
		InputPath:  path,
		Columns:    trimColumns(params.columns),
		StartCol:   params.startCol,
		EndCol:     params.endCol,
		Direction:  direction,
		OutputPath: params.outputFile,
		DryRun:     params.dryRun,
	}

	result, err := pipeline.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings() {
		renderWarning(cmd.ErrOrStderr(), w.Error())
	}

	out := cmd.OutOrStdout()
	if result.Written {
		fmt.Fprintf(out, "Converted %d rows (%s) from %s to %s\n",
			result.Rows(), strings.Join(result.Known, ", "),
			direction.From().Label(), direction.To().Label())
		fmt.Fprintf(out, "Output written to %s\n", result.OutputPath)
	} else {
		fmt.Fprintf(out, "Dry run: converted %d rows (%s); %s was not written\n",
			result.Rows(), strings.Join(result.Known, ", "), result.OutputPath)
	}

	renderDatasetPreview(out, result.Dataset, params.preview)
	return nil
}

// trimColumns drops surrounding whitespace and empty names from a --columns list.
func trimColumns(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
