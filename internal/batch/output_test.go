package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/alloycomp/internal/composition"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		src  string
		unit composition.Unit
		want string
	}{
		{src: "alloys.csv", unit: composition.UnitAtomic, want: "alloys-at.csv"},
		{src: "batch.csv", unit: composition.UnitAtomic, want: "batch-at.csv"},
		{src: "batch.csv", unit: composition.UnitWeight, want: "batch-wt.csv"},
		{src: "data", unit: composition.UnitAtomic, want: "data-at.csv"},
		{src: "data.tsv.txt", unit: composition.UnitWeight, want: "data.tsv-wt.csv"},
		{src: filepath.Join("dir.v1", "x"), unit: composition.UnitAtomic, want: filepath.Join("dir.v1", "x-at.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOutputPath(tt.src, tt.unit))
		})
	}
}

func TestEncodeDataset(t *testing.T) {
	ds := &Dataset{Header: []string{"名称", "Al(at%)"}, Rows: [][]string{{"a,b", "1.5"}}}

	var withBOM bytes.Buffer
	require.NoError(t, EncodeDataset(&withBOM, ds))
	assert.Equal(t, "\ufeff名称,Al(at%)\n\"a,b\",1.5\n", withBOM.String())

	var plain bytes.Buffer
	require.NoError(t, EncodeDataset(&plain, ds, WithBOM(false)))
	assert.Equal(t, "名称,Al(at%)\n\"a,b\",1.5\n", plain.String())

	back, err := ReadDataset(&withBOM)
	require.NoError(t, err)
	assert.Equal(t, ds, back, "non-ASCII headers round-trip")
}

func TestWriteDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	ds := &Dataset{Header: []string{"Al"}, Rows: [][]string{{"1"}}}
	require.NoError(t, WriteDataset(ds, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffAl\n1\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteDataset_Errors(t *testing.T) {
	require.ErrorIs(t, WriteDataset(nil, filepath.Join(t.TempDir(), "x.csv")), ErrNilDataset)

	ds := &Dataset{Header: []string{"Al"}}
	err := WriteDataset(ds, filepath.Join(t.TempDir(), "missing-dir", "x.csv"))
	require.Error(t, err)
}
