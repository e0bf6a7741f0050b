// Package batch converts the element columns of a CSV dataset between wt% and
// at% in one pass and writes the augmented table next to the source.
//
// The pipeline is all-or-nothing:
//   - selected columns unknown to the mass table are reported and skipped
//   - a missing column, an unparsable cell or an unreadable source aborts the
//     run before anything is written
//   - output is written to a temporary file and renamed into place
//
// Rows are converted in fixed-size chunks by a Processor, either sequentially
// or with a bounded number of workers. Results are stored by row index, so the
// output order always matches the input order.
package batch
