package composition

import (
	"errors"
	"fmt"
	"math"
)

// SumWarning reports an input composition whose total is not close to 100.
// It is informational: the conversion still runs.
type SumWarning struct {
	Total float64
	Unit  Unit
}

func (w SumWarning) String() string {
	return fmt.Sprintf("input total is %.2f%s, not close to 100; results may be inaccurate", w.Total, w.Unit.Label())
}

// ValidatePoint checks a single-point composition before conversion.
//
// Every symbol must be in t and every value must be finite and non-negative.
// All violations are collected and returned joined. A total outside
// (SumLowerBound, SumUpperBound) yields a non-nil *SumWarning without error.
func ValidatePoint(c Composition, t *MassTable, unit Unit) (*SumWarning, error) {
	var errs []error
	for _, e := range c.Ordered(t) {
		switch {
		case !t.Has(e.Symbol):
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownElement, e.Symbol))
		case math.IsNaN(e.Value) || math.IsInf(e.Value, 0):
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrInvalidValue, e.Symbol, e.Value))
		case e.Value < 0:
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrNegativeValue, e.Symbol, e.Value))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	total := c.Sum()
	if !(total > SumLowerBound && total < SumUpperBound) {
		return &SumWarning{Total: total, Unit: unit}, nil
	}
	return nil, nil
}
