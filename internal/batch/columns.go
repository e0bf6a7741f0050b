package batch

import (
	"fmt"

	"github.com/rshade/alloycomp/internal/composition"
)

// SelectElementColumns partitions candidates into columns whose names are
// element symbols in t and columns that are not. Order is preserved within
// each group and repeated names keep only their first occurrence.
func SelectElementColumns(candidates []string, t *composition.MassTable) ([]string, []string) {
	var known, unknown []string
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if t.Has(c) {
			known = append(known, c)
		} else {
			unknown = append(unknown, c)
		}
	}
	return known, unknown
}

// ColumnRange returns header[start-1:end], the columns between the 1-based
// positions start and end inclusive.
func ColumnRange(header []string, start, end int) ([]string, error) {
	if start < 1 || end < start || end > len(header) {
		return nil, fmt.Errorf("%w: %d-%d (table has %d columns)", ErrInvalidColumnRange, start, end, len(header))
	}
	out := make([]string, end-start+1)
	copy(out, header[start-1:end])
	return out, nil
}
