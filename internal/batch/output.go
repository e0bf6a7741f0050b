package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rshade/alloycomp/internal/composition"
)

// outputFileMode is the permission of written tables.
const outputFileMode = 0o644

// DeriveOutputPath replaces the final extension of src with "-{unit}.csv",
// e.g. "alloys.csv" becomes "alloys-at.csv". It does not touch the filesystem.
func DeriveOutputPath(src string, unit composition.Unit) string {
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(src, ext)
	return base + "-" + string(unit) + ".csv"
}

type writeOptions struct {
	bom bool
}

// WriteOption configures WriteDataset.
type WriteOption func(*writeOptions)

// WithBOM controls whether a UTF-8 byte order mark is written. It is on by
// default so spreadsheet applications detect the encoding of non-ASCII headers.
func WithBOM(enabled bool) WriteOption {
	return func(o *writeOptions) { o.bom = enabled }
}

// EncodeDataset writes ds to w as CSV.
func EncodeDataset(w io.Writer, ds *Dataset, opts ...WriteOption) error {
	o := writeOptions{bom: true}
	for _, opt := range opts {
		opt(&o)
	}

	var tw io.WriteCloser = nopWriteCloser{w}
	if o.bom {
		tw = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	}

	cw := csv.NewWriter(tw)
	if err := cw.Write(ds.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(ds.Rows); err != nil {
		return err
	}
	return tw.Close()
}

// WriteDataset writes ds as CSV to path, replacing any existing file. The
// table is written to a temporary file in the same directory and renamed into
// place, so a failed write never leaves a partial file at path.
func WriteDataset(ds *Dataset, path string, opts ...WriteOption) (err error) {
	if ds == nil {
		return ErrNilDataset
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = EncodeDataset(tmp, ds, opts...); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Chmod(outputFileMode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
