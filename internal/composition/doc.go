// Package composition converts alloy compositions between weight percent (wt%)
// and atomic percent (at%).
//
// The conversions are pure functions over a Composition and a MassTable:
//   - WeightToAtomic divides every positive weight fraction by the element's
//     atomic mass and renormalizes the mole counts to 100.
//   - AtomicToWeight multiplies every positive atomic fraction by the element's
//     atomic mass and renormalizes the mass contributions to 100.
//
// Symbols missing from the table and non-positive values are excluded from the
// result. When nothing qualifies, the result maps every input symbol to zero so
// callers keep the key set they supplied. Strict validation (negative input,
// unknown elements) is left to callers; see ValidatePoint.
package composition
