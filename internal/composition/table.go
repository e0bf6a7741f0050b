package composition

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Element is a single atomic mass table entry.
type Element struct {
	Symbol string  `yaml:"symbol" json:"symbol"`
	Mass   float64 `yaml:"mass"   json:"mass"`
}

// MassTable is an ordered, read-only mapping of element symbol to atomic mass.
// Insertion order is the canonical display and iteration order.
//
// A MassTable is safe for concurrent reads. The zero value is an empty table.
type MassTable struct {
	elements []Element
	index    map[string]int
}

// NewMassTable builds a table from entries, preserving their order.
// Symbols are trimmed of surrounding whitespace and must be unique and
// non-empty; masses must be positive finite numbers.
func NewMassTable(entries []Element) (*MassTable, error) {
	t := &MassTable{
		elements: make([]Element, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		sym := strings.TrimSpace(e.Symbol)
		if sym == "" {
			return nil, ErrEmptySymbol
		}
		if _, dup := t.index[sym]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateElement, sym)
		}
		if e.Mass <= 0 || math.IsNaN(e.Mass) || math.IsInf(e.Mass, 0) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidMass, sym, e.Mass)
		}
		t.index[sym] = len(t.elements)
		t.elements = append(t.elements, Element{Symbol: sym, Mass: e.Mass})
	}

	return t, nil
}

// DefaultMassTable returns the stock table shipped with the tool.
func DefaultMassTable() *MassTable {
	t, err := NewMassTable(DefaultElements())
	if err != nil {
		// DefaultElements is a compile-time constant list.
		panic(err)
	}
	return t
}

// DefaultElements returns the entries of the stock table in canonical order.
func DefaultElements() []Element {
	return []Element{
		{Symbol: "Al", Mass: MassAl},
		{Symbol: "Li", Mass: MassLi},
		{Symbol: "Cu", Mass: MassCu},
		{Symbol: "Mg", Mass: MassMg},
		{Symbol: "Zr", Mass: MassZr},
		{Symbol: "Mn", Mass: MassMn},
	}
}

// Mass returns the atomic mass of sym and whether sym is in the table.
func (t *MassTable) Mass(sym string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[sym]
	if !ok {
		return 0, false
	}
	return t.elements[i].Mass, true
}

// Has reports whether sym is in the table.
func (t *MassTable) Has(sym string) bool {
	_, ok := t.Mass(sym)
	return ok
}

// Len returns the number of elements in the table.
func (t *MassTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.elements)
}

// Symbols returns the element symbols in canonical order.
func (t *MassTable) Symbols() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.elements))
	for i, e := range t.elements {
		out[i] = e.Symbol
	}
	return out
}

// Elements returns a copy of the table entries in canonical order.
func (t *MassTable) Elements() []Element {
	if t == nil {
		return nil
	}
	out := make([]Element, len(t.elements))
	copy(out, t.elements)
	return out
}

// MarshalYAML encodes the table as an ordered mapping of symbol to mass.
func (t *MassTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if t == nil {
		return node, nil
	}
	for _, e := range t.elements {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Symbol},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(e.Mass, 'f', -1, 64)},
		)
	}
	return node, nil
}

// MarshalJSON encodes the table as an array of elements in canonical order.
func (t *MassTable) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Elements())
}

// UnmarshalYAML decodes an ordered mapping of symbol to mass. The mapping
// order in the document becomes the canonical order of the table.
func (t *MassTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: elements must be a mapping of symbol to atomic mass", value.Line)
	}

	entries := make([]Element, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var mass float64
		if err := valNode.Decode(&mass); err != nil {
			return fmt.Errorf("line %d: atomic mass of %q: %w", valNode.Line, keyNode.Value, err)
		}
		entries = append(entries, Element{Symbol: keyNode.Value, Mass: mass})
	}

	built, err := NewMassTable(entries)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = *built
	return nil
}
