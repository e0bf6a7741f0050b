package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rshade/alloycomp/internal/batch"
	"github.com/rshade/alloycomp/internal/composition"
)

// Result box colors.
const (
	boxBorderColor = lipgloss.Color("63")
	boxTitleColor  = lipgloss.Color("86")
	warnColor      = lipgloss.Color("214")
)

// PointResult is the JSON form of a single-point conversion.
type PointResult struct {
	Direction string              `json:"direction"`
	From      string              `json:"from"`
	To        string              `json:"to"`
	Input     []composition.Entry `json:"input"`
	Result    []composition.Entry `json:"result"`
	Warning   string              `json:"warning,omitempty"`
}

// newPointResult builds the display model of a conversion. Every input symbol
// is listed in the result; symbols the conversion dropped show as zero.
func newPointResult(
	d composition.Direction,
	input, output composition.Composition,
	mt *composition.MassTable,
	warn *composition.SumWarning,
) PointResult {
	res := PointResult{
		Direction: d.String(),
		From:      string(d.From()),
		To:        string(d.To()),
		Input:     input.Ordered(mt),
	}
	for _, e := range res.Input {
		res.Result = append(res.Result, composition.Entry{Symbol: e.Symbol, Value: output[e.Symbol]})
	}
	if warn != nil {
		res.Warning = warn.String()
	}
	return res
}

// newTable returns a light-style table writer that keeps header case, since
// element symbols are case-sensitive.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}

// renderPointResult writes res in the requested format. Table output is boxed
// with Lip Gloss when w is a terminal.
func renderPointResult(w io.Writer, res PointResult, format string, precision int) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tbl := pointTable(res, precision)
	if !isWriterTerminal(w) {
		_, err := fmt.Fprintln(w, tbl)
		return err
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor).
		Render(fmt.Sprintf("%s → %s", composition.Unit(res.From).Label(), composition.Unit(res.To).Label()))
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor).
		Padding(0, 1)

	_, err := fmt.Fprintln(w, box.Render(title+"\n\n"+tbl))
	return err
}

// pointTable renders the input and converted values side by side, one
// column per element.
func pointTable(res PointResult, precision int) string {
	t := newTable()

	header := table.Row{""}
	inRow := table.Row{composition.Unit(res.From).Label()}
	outRow := table.Row{composition.Unit(res.To).Label()}
	for i, e := range res.Input {
		header = append(header, e.Symbol)
		inRow = append(inRow, composition.FormatPercent(e.Value, precision))
		outRow = append(outRow, composition.FormatPercent(res.Result[i].Value, precision))
	}
	t.AppendHeader(header)
	t.AppendRow(inRow)
	t.AppendRow(outRow)
	return t.Render()
}

// renderWarning writes a highlighted warning line.
func renderWarning(w io.Writer, msg string) {
	line := "Warning: " + msg
	if isWriterTerminal(w) {
		line = lipgloss.NewStyle().Foreground(warnColor).Render(line)
	}
	_, _ = fmt.Fprintln(w, line)
}

// renderDatasetPreview writes the header and up to limit rows of ds.
func renderDatasetPreview(w io.Writer, ds *batch.Dataset, limit int) {
	if ds == nil || limit <= 0 {
		return
	}

	t := newTable()
	t.SetOutputMirror(w)

	header := make(table.Row, len(ds.Header))
	for i, h := range ds.Header {
		header[i] = h
	}
	t.AppendHeader(header)

	for i, row := range ds.Rows {
		if i == limit {
			break
		}
		r := make(table.Row, len(row))
		for j, cell := range row {
			r[j] = cell
		}
		t.AppendRow(r)
	}
	t.Render()
	if ds.Len() > limit {
		_, _ = fmt.Fprintf(w, "(%d more rows)\n", ds.Len()-limit)
	}
}

// renderElements writes the mass table as a table or JSON.
func renderElements(w io.Writer, mt *composition.MassTable, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(mt.Elements())
	}

	t := newTable()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Symbol", "Atomic mass"})
	for i, e := range mt.Elements() {
		t.AppendRow(table.Row{i + 1, e.Symbol, strconv.FormatFloat(e.Mass, 'f', -1, 64)})
	}
	t.Render()
	return nil
}

// renderColumns writes a numbered list of column names, marking element columns.
func renderColumns(w io.Writer, header []string, mt *composition.MassTable) {
	t := newTable()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Column", "Element"})
	for i, h := range header {
		mark := ""
		if mt.Has(h) {
			mark = "yes"
		}
		t.AppendRow(table.Row{i + 1, h, mark})
	}
	t.Render()
}
