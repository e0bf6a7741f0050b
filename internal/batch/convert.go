package batch

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/alloycomp/internal/composition"
	"github.com/rshade/alloycomp/internal/logging"
)

var errInfiniteValue = errors.New("infinite value")

// convertOptions tunes ConvertDataset.
type convertOptions struct {
	chunkSize  int
	workers    int
	precision  int
	onProgress ProgressCallback
}

// Option configures ConvertDataset and Pipeline.
type Option func(*convertOptions)

// WithChunkSize sets the number of rows converted per chunk.
func WithChunkSize(n int) Option {
	return func(o *convertOptions) { o.chunkSize = n }
}

// WithWorkers sets how many chunks may be converted concurrently.
// Values below 2 convert sequentially.
func WithWorkers(n int) Option {
	return func(o *convertOptions) { o.workers = n }
}

// WithPrecision rounds synthesized values to n decimals. A negative n keeps
// the shortest exact representation, which is the default.
func WithPrecision(n int) Option {
	return func(o *convertOptions) { o.precision = n }
}

// WithProgress registers a callback invoked after each converted chunk.
func WithProgress(cb ProgressCallback) Option {
	return func(o *convertOptions) { o.onProgress = cb }
}

func newConvertOptions(opts []Option) convertOptions {
	o := convertOptions{chunkSize: DefaultChunkSize, workers: 1, precision: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ConvertDataset converts the known element columns of every row of ds in
// direction d and returns a new dataset with one "{symbol}({unit}%)" column
// appended per symbol that appears in any row's result. Cells for symbols a
// row's result dropped are left empty. ds is not modified.
//
// Every name in known must be a column of ds. Cells are parsed as float64
// after trimming whitespace; an empty cell counts as missing and does not
// qualify for the conversion. Any other unparsable cell aborts the whole
// conversion with a *ValueCoercionError.
func ConvertDataset(
	ctx context.Context,
	ds *Dataset,
	known []string,
	d composition.Direction,
	t *composition.MassTable,
	opts ...Option,
) (*Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if len(known) == 0 {
		return nil, ErrNoElementColumns
	}

	o := newConvertOptions(opts)
	log := logging.FromContext(ctx)

	indexes := make([]int, len(known))
	for i, col := range known {
		idx := ds.ColumnIndex(col)
		if idx < 0 {
			return nil, &MissingColumnError{Column: col}
		}
		indexes[i] = idx
	}

	proc, err := NewProcessor[[]string](o.chunkSize)
	if err != nil {
		return nil, err
	}
	proc.WithProgressCallback(func(s ProgressSnapshot) {
		log.Debug().
			Int("rows_done", s.ProcessedItems).
			Int("rows_total", s.TotalItems).
			Float64("percent", s.PercentComplete).
			Msg("converting rows")
		if o.onProgress != nil {
			o.onProgress(s)
		}
	})

	results := make([]composition.Composition, len(ds.Rows))
	convertChunk := func(_ context.Context, rows [][]string, offset int) error {
		for i, row := range rows {
			input, parseErr := rowComposition(row, known, indexes, offset+i+1)
			if parseErr != nil {
				return parseErr
			}
			results[offset+i] = composition.Convert(d, input, t)
		}
		return nil
	}

	if err = proc.ProcessConcurrent(ctx, ds.Rows, convertChunk, o.workers); err != nil {
		return nil, err
	}

	// Result symbols are always drawn from the selected columns, so the
	// selection order is the column order.
	present := make(map[string]bool, len(known))
	for _, res := range results {
		for sym := range res {
			present[sym] = true
		}
	}
	var symbols []string
	for _, col := range known {
		if present[col] {
			symbols = append(symbols, col)
			delete(present, col)
		}
	}

	out := &Dataset{
		Header: make([]string, 0, len(ds.Header)+len(symbols)),
		Rows:   make([][]string, len(ds.Rows)),
	}
	out.Header = append(out.Header, ds.Header...)
	for _, sym := range symbols {
		out.Header = append(out.Header, composition.ColumnName(sym, d.To()))
	}

	for i, row := range ds.Rows {
		cells := make([]string, 0, len(out.Header))
		cells = append(cells, row...)
		for len(cells) < len(ds.Header) {
			cells = append(cells, "")
		}
		for _, sym := range symbols {
			v, ok := results[i][sym]
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, formatValue(v, o.precision))
		}
		out.Rows[i] = cells
	}

	return out, nil
}

// rowComposition extracts the element cells of one row. rowNum is 1-based.
func rowComposition(row, columns []string, indexes []int, rowNum int) (composition.Composition, error) {
	c := make(composition.Composition, len(columns))
	for i, col := range columns {
		var raw string
		if indexes[i] < len(row) {
			raw = row[indexes[i]]
		}
		v, err := parseCell(raw)
		if err != nil {
			return nil, &ValueCoercionError{Row: rowNum, Column: col, Value: raw, Err: err}
		}
		c[col] = v
	}
	return c, nil
}

// parseCell parses a numeric cell. Blank cells are missing values and parse
// as NaN, which never qualifies for conversion.
func parseCell(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, errInfiniteValue
	}
	return v, nil
}

func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
