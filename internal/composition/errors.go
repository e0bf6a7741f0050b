package composition

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for table construction and input validation.
// Compare with errors.Is; call sites wrap them with the offending symbol.
var (
	// ErrEmptySymbol indicates a mass table entry without a symbol.
	ErrEmptySymbol = constError("empty element symbol")

	// ErrDuplicateElement indicates the same symbol appears twice in a mass table.
	ErrDuplicateElement = constError("duplicate element")

	// ErrInvalidMass indicates an atomic mass that is zero, negative, NaN or infinite.
	ErrInvalidMass = constError("atomic mass must be a positive finite number")

	// ErrUnknownElement indicates a symbol that is not present in the mass table.
	ErrUnknownElement = constError("unknown element")

	// ErrNegativeValue indicates a negative percentage entered for a single-point calculation.
	ErrNegativeValue = constError("percentage cannot be negative")

	// ErrInvalidValue indicates a percentage that is NaN or infinite.
	ErrInvalidValue = constError("percentage must be a finite number")

	// ErrInvalidDirection indicates an unrecognized conversion direction.
	ErrInvalidDirection = constError("invalid conversion direction")
)
