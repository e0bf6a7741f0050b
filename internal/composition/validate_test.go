package composition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePoint(t *testing.T) {
	tbl := DefaultMassTable()

	tests := []struct {
		name        string
		input       Composition
		wantErrs    []error
		wantWarning bool
	}{
		{name: "sums to 100", input: Composition{"Al": 90, "Cu": 10}},
		{name: "zeros are allowed", input: Composition{"Al": 100, "Cu": 0}},
		{name: "low total warns", input: Composition{"Al": 50, "Cu": 10}, wantWarning: true},
		{name: "high total warns", input: Composition{"Al": 95, "Cu": 10}, wantWarning: true},
		{name: "negative rejected", input: Composition{"Al": 101, "Cu": -1}, wantErrs: []error{ErrNegativeValue}},
		{name: "unknown rejected", input: Composition{"Al": 90, "Fe": 10}, wantErrs: []error{ErrUnknownElement}},
		{name: "NaN rejected", input: Composition{"Al": math.NaN()}, wantErrs: []error{ErrInvalidValue}},
		{
			name:     "all violations reported",
			input:    Composition{"Cu": -2, "Fe": 1},
			wantErrs: []error{ErrNegativeValue, ErrUnknownElement},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn, err := ValidatePoint(tt.input, tbl, UnitWeight)
			if len(tt.wantErrs) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrs {
					assert.ErrorIs(t, err, want)
				}
				assert.Nil(t, warn)
				return
			}
			require.NoError(t, err)
			if tt.wantWarning {
				require.NotNil(t, warn)
				assert.Contains(t, warn.String(), "wt%")
			} else {
				assert.Nil(t, warn)
			}
		})
	}
}
