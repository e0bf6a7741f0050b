package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Dataset is an in-memory table: an ordered header and rows of cells aligned
// with it.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the first column called name, or -1.
// Names are matched exactly.
func (d *Dataset) ColumnIndex(name string) int {
	for i, h := range d.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Header: append([]string(nil), d.Header...),
		Rows:   make([][]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// ReadDataset parses CSV from r. The first record is the header. A leading
// byte order mark is stripped. Rows shorter than the header are padded with
// empty cells; rows longer than the header are rejected.
func ReadDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SourceFileError{Err: errors.New("empty file, expected a header row")}
	}
	if err != nil {
		return nil, &SourceFileError{Err: fmt.Errorf("reading header: %w", err)}
	}

	ds := &Dataset{Header: header}
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, &SourceFileError{Err: readErr}
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &SourceFileError{
				Err: fmt.Errorf("line %d: %d fields, header has %d", line, len(record), len(header)),
			}
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		ds.Rows = append(ds.Rows, record)
	}

	return ds, nil
}

// LoadDataset reads the CSV file at path.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceFileError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	ds, err := ReadDataset(f)
	if err != nil {
		var srcErr *SourceFileError
		if errors.As(err, &srcErr) {
			srcErr.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// LoadHeader reads only the header row of the CSV file at path.
func LoadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceFileError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, &SourceFileError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}
	return header, nil
}
