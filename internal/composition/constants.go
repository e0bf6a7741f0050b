package composition

// Standard atomic weights (IUPAC) of the stock element table.
const (
	MassAl = 26.9815385
	MassLi = 6.94
	MassCu = 63.546
	MassMg = 24.305
	MassZr = 91.224
	MassMn = 54.938044
)

// Percent is the total every non-degenerate conversion result sums to.
const Percent = 100.0

// Tolerances for the single-point input sanity check. A composition whose sum
// falls outside (SumLowerBound, SumUpperBound) still converts but produces a
// SumWarning.
const (
	SumLowerBound = 99.9
	SumUpperBound = 100.1
)

// DefaultPrecision is the number of decimals used when displaying percentages.
const DefaultPrecision = 4
