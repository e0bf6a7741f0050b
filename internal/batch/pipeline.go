package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rshade/alloycomp/internal/composition"
	"github.com/rshade/alloycomp/internal/logging"
)

// Request describes one batch conversion.
type Request struct {
	// InputPath is the source CSV file.
	InputPath string

	// Columns are the candidate element columns. When empty, StartCol and
	// EndCol select a 1-based inclusive column range instead.
	Columns  []string
	StartCol int
	EndCol   int

	Direction composition.Direction

	// OutputPath overrides DeriveOutputPath(InputPath, Direction.To()).
	OutputPath string

	// DryRun converts without writing the output file.
	DryRun bool
}

// Result is the outcome of a successful batch conversion.
type Result struct {
	OutputPath string
	Known      []string
	Unknown    []string
	Dataset    *Dataset
	Written    bool
	Duration   time.Duration
}

// Rows returns the number of converted rows.
func (r *Result) Rows() int {
	if r == nil || r.Dataset == nil {
		return 0
	}
	return r.Dataset.Len()
}

// Warnings returns one composition.ErrUnknownElement per selected column that
// was skipped because it is not in the mass table.
func (r *Result) Warnings() []error {
	if r == nil {
		return nil
	}
	out := make([]error, 0, len(r.Unknown))
	for _, col := range r.Unknown {
		out = append(out, fmt.Errorf("%w: column %q skipped", composition.ErrUnknownElement, col))
	}
	return out
}

// Pipeline runs batch conversions against a fixed mass table.
type Pipeline struct {
	table     *composition.MassTable
	options   []Option
	writeOpts []WriteOption
}

// NewPipeline creates a pipeline. opts are passed to ConvertDataset on every run.
func NewPipeline(table *composition.MassTable, opts ...Option) *Pipeline {
	return &Pipeline{table: table, options: opts}
}

// WithWriteOptions sets the options used when writing the output table.
func (p *Pipeline) WithWriteOptions(opts ...WriteOption) *Pipeline {
	p.writeOpts = opts
	return p
}

// Run loads the source table, selects element columns, converts every row
// and writes the augmented table. Unknown columns are skipped with a warning;
// every other failure aborts the run before the output file is written.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	log := logging.FromContext(ctx).With().
		Str("component", "batch").
		Str("operation", "Run").
		Str("input", req.InputPath).
		Str("direction", req.Direction.String()).
		Logger()

	if req.Direction != composition.WtToAt && req.Direction != composition.AtToWt {
		return nil, fmt.Errorf("%w: %s", composition.ErrInvalidDirection, req.Direction)
	}

	ds, err := LoadDataset(req.InputPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load source table")
		return nil, err
	}
	log.Debug().Int("rows", ds.Len()).Int("columns", len(ds.Header)).Msg("source table loaded")

	candidates := req.Columns
	if len(candidates) == 0 {
		if candidates, err = ColumnRange(ds.Header, req.StartCol, req.EndCol); err != nil {
			return nil, err
		}
	}

	known, unknown := SelectElementColumns(candidates, p.table)
	for _, col := range unknown {
		log.Warn().Str("column", col).Msg("column is not a known element, skipping")
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("%w: none of %v are in the element table", ErrNoElementColumns, candidates)
	}

	converted, err := ConvertDataset(ctx, ds, known, req.Direction, p.table, p.options...)
	if err != nil {
		log.Error().Err(err).Msg("conversion aborted")
		return nil, err
	}

	result := &Result{
		OutputPath: req.OutputPath,
		Known:      known,
		Unknown:    unknown,
		Dataset:    converted,
	}
	if result.OutputPath == "" {
		result.OutputPath = DeriveOutputPath(req.InputPath, req.Direction.To())
	}
	if samePath(result.OutputPath, req.InputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, result.OutputPath)
	}

	if !req.DryRun {
		if err = WriteDataset(converted, result.OutputPath, p.writeOpts...); err != nil {
			log.Error().Err(err).Str("output", result.OutputPath).Msg("failed to write output table")
			return nil, err
		}
		result.Written = true
	}

	result.Duration = time.Since(start)
	log.Info().
		Str("output", result.OutputPath).
		Int("rows", converted.Len()).
		Strs("columns", known).
		Bool("written", result.Written).
		Dur("duration", result.Duration).
		Msg("batch conversion complete")

	return result, nil
}

// samePath reports whether a and b name the same file, either lexically after
// making both absolute or on disk through links.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
