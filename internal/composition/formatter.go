package composition

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatPercent formats v with the given number of decimals.
// A negative precision falls back to DefaultPrecision.
func FormatPercent(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), v)
}

// ColumnName returns the synthesized column header for sym in unit u,
// e.g. "Al(at%)".
func ColumnName(sym string, u Unit) string {
	return sym + "(" + u.Label() + ")"
}
