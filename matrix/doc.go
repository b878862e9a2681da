// Package matrix provides the dense primitives the factorization routines
// build on.
//
// The matrix package provides:
//
//   - Matrix, a small bounds-checked interface over two-dimensional float64 data,
//     and Dense, its row-major implementation.
//   - Products and reductions used by decompositions and their checks
//     (Mul, Transpose, RowMaxAbs, ColMaxAbs, Diagonal, AllClose).
//   - Permutation, a row/column reordering that can be viewed either as an
//     index mapping or as a 0/1 permutation matrix.
//   - Validators returning package sentinels (ErrNilMatrix, ErrDimensionMismatch, ...).
//
// Every operation allocates its result; inputs are never mutated.
//
// See matrix/decomp for the LU, Cholesky and LDLᵗ factorizations.
package matrix
