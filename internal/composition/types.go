package composition

import (
	"fmt"
	"sort"
	"strings"
)

// Composition maps element symbols to percentages. Whether the values are
// weight or atomic percent is tracked by the caller.
type Composition map[string]float64

// Entry is one symbol/value pair of a Composition.
type Entry struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// Sum returns the total of all values.
func (c Composition) Sum() float64 {
	var total float64
	for _, v := range c {
		total += v
	}
	return total
}

// Ordered returns the entries of c in the canonical order of t. Symbols not
// in t follow in lexical order.
func (c Composition) Ordered(t *MassTable) []Entry {
	out := make([]Entry, 0, len(c))
	for _, sym := range t.Symbols() {
		if v, ok := c[sym]; ok {
			out = append(out, Entry{Symbol: sym, Value: v})
		}
	}

	var unknown []string
	for sym := range c {
		if !t.Has(sym) {
			unknown = append(unknown, sym)
		}
	}
	sort.Strings(unknown)
	for _, sym := range unknown {
		out = append(out, Entry{Symbol: sym, Value: c[sym]})
	}
	return out
}

// Unit is a composition unit.
type Unit string

// Supported units.
const (
	UnitWeight Unit = "wt"
	UnitAtomic Unit = "at"
)

// Label returns the display form of u, e.g. "wt%".
func (u Unit) Label() string { return string(u) + "%" }

// Direction selects which conversion to apply.
type Direction int

// Conversion directions.
const (
	WtToAt Direction = iota + 1
	AtToWt
)

// From returns the unit of the input composition.
func (d Direction) From() Unit {
	if d == AtToWt {
		return UnitAtomic
	}
	return UnitWeight
}

// To returns the unit of the converted composition.
func (d Direction) To() Unit {
	if d == AtToWt {
		return UnitWeight
	}
	return UnitAtomic
}

// String returns the canonical flag form of d.
func (d Direction) String() string {
	switch d {
	case WtToAt:
		return "wt2at"
	case AtToWt:
		return "at2wt"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses a direction name. Accepted forms (case-insensitive):
// "wt2at", "wt-to-at", "wt", "1" and "at2wt", "at-to-wt", "at", "2".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wt2at", "wt-to-at", "wt", "1":
		return WtToAt, nil
	case "at2wt", "at-to-wt", "at", "2":
		return AtToWt, nil
	default:
		return 0, fmt.Errorf("%w: %q (want wt2at or at2wt)", ErrInvalidDirection, s)
	}
}
