package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/alloycomp/internal/composition"
)

func TestSelectElementColumns(t *testing.T) {
	tbl := composition.DefaultMassTable()

	tests := []struct {
		name        string
		candidates  []string
		wantKnown   []string
		wantUnknown []string
	}{
		{
			name:        "unknown element reported",
			candidates:  []string{"Al", "Cu", "Fe"},
			wantKnown:   []string{"Al", "Cu"},
			wantUnknown: []string{"Fe"},
		},
		{
			name:        "order preserved in both groups",
			candidates:  []string{"Name", "Mn", "Notes", "Al", "al"},
			wantKnown:   []string{"Mn", "Al"},
			wantUnknown: []string{"Name", "Notes", "al"},
		},
		{
			name:       "duplicates collapse",
			candidates: []string{"Cu", "Cu", "Al"},
			wantKnown:  []string{"Cu", "Al"},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known, unknown := SelectElementColumns(tt.candidates, tbl)
			assert.Equal(t, tt.wantKnown, known)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestColumnRange(t *testing.T) {
	header := []string{"Name", "Al", "Cu", "Notes"}

	got, err := ColumnRange(header, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Al", "Cu"}, got)

	got, err = ColumnRange(header, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"Notes"}, got)

	for _, r := range [][2]int{{0, 2}, {3, 2}, {1, 5}} {
		_, err = ColumnRange(header, r[0], r[1])
		require.ErrorIs(t, err, ErrInvalidColumnRange, "range %v", r)
	}
}
