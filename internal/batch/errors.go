package batch

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the pipeline. Compare with errors.Is.
var (
	// ErrNoElementColumns indicates no usable element column remained after selection.
	ErrNoElementColumns = constError("no element columns selected")

	// ErrMissingColumn indicates a selected column is absent from the dataset.
	ErrMissingColumn = constError("column not found in dataset")

	// ErrValueCoercion indicates an element cell that is not a number.
	ErrValueCoercion = constError("value is not a number")

	// ErrSourceFile indicates the source could not be opened or parsed as CSV.
	ErrSourceFile = constError("cannot read source table")

	// ErrInvalidColumnRange indicates a 1-based column range outside the header.
	ErrInvalidColumnRange = constError("invalid column range")

	// ErrNilDataset indicates a nil dataset was passed to the pipeline.
	ErrNilDataset = constError("dataset cannot be nil")

	// ErrOutputIsInput indicates the output path names the source file.
	ErrOutputIsInput = constError("output path must differ from the input path")
)

// MissingColumnError reports a selected column that the dataset does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// ValueCoercionError reports an element cell that could not be parsed.
// Row is the 1-based data row, not counting the header.
type ValueCoercionError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ValueCoercionError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot convert %q to a number", e.Row, e.Column, e.Value)
}

func (e *ValueCoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValueCoercion}
	}
	return []error{ErrValueCoercion, e.Err}
}

// SourceFileError reports a source table that could not be read.
type SourceFileError struct {
	Path string
	Err  error
}

func (e *SourceFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot read source table: %v", e.Err)
	}
	return fmt.Sprintf("cannot read source table %s: %v", e.Path, e.Err)
}

func (e *SourceFileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSourceFile}
	}
	return []error{ErrSourceFile, e.Err}
}
