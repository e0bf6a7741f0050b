package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/alloycomp/internal/batch"
	"github.com/rshade/alloycomp/internal/composition"
)

func TestNewTable_KeepsHeaderCase(t *testing.T) {
	tbl := newTable()
	require.NotNil(t, tbl)

	tbl.AppendHeader([]interface{}{"Al", "Atomic mass"})
	tbl.AppendRow([]interface{}{"x", "y"})
	out := tbl.Render()

	assert.Contains(t, out, "Al")
	assert.Contains(t, out, "Atomic mass")
	assert.NotContains(t, out, "ATOMIC MASS")
}

func TestRenderPointResult_Table(t *testing.T) {
	mt := composition.DefaultMassTable()
	input := composition.Composition{"Al": 90, "Cu": 10}
	output := composition.Convert(composition.WtToAt, input, mt)
	res := newPointResult(composition.WtToAt, input, output, mt, nil)

	var buf bytes.Buffer
	require.NoError(t, renderPointResult(&buf, res, "table", 2))

	out := buf.String()
	assert.Contains(t, out, "Al")
	assert.Contains(t, out, "Cu")
	assert.Contains(t, out, "95.49")
	assert.NotContains(t, out, "\x1b[", "no styling for non-terminal writers")
}

func TestRenderElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderElements(&buf, composition.DefaultMassTable(), "table"))

	out := buf.String()
	assert.Contains(t, out, "Atomic mass")
	assert.Contains(t, out, "Al")
	assert.Contains(t, out, "26.9815")
}

func TestRenderColumns(t *testing.T) {
	var buf bytes.Buffer
	renderColumns(&buf, []string{"Name", "Al"}, composition.DefaultMassTable())

	out := buf.String()
	assert.Contains(t, out, "Column")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "yes")
}

func TestRenderDatasetPreview(t *testing.T) {
	ds := &batch.Dataset{
		Header: []string{"Name", "Al"},
		Rows:   [][]string{{"A1", "90"}, {"A2", "95"}, {"A3", "99"}},
	}

	var buf bytes.Buffer
	renderDatasetPreview(&buf, ds, 2)
	out := buf.String()
	assert.Contains(t, out, "A2")
	assert.NotContains(t, out, "A3")
	assert.Contains(t, out, "(1 more rows)")

	buf.Reset()
	renderDatasetPreview(&buf, ds, 0)
	assert.Empty(t, buf.String())
}
