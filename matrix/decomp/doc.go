// Package decomp factorizes dense real matrices into triangular products.
//
// Decompositions:
//
//   - LU, Doolittle, Crout: A = L·U without pivoting (elimination, and two
//     direct-summation variants with the unit diagonal on L or on U).
//   - LUPartialPivot: A = P·L·U with a row order chosen once from scaled
//     first-column ratios.
//   - LUCompletePivot: A = P·L·U·Q with row and column orders chosen once from
//     the first column and first row.
//   - LUStepwisePivot: A = P·L·U with the textbook row search at every step.
//   - Cholesky: A = L·Lᵀ for symmetric positive-definite A.
//   - LDLT: A = L·D·Lᵀ for symmetric A.
//
// On top of those, Solve, Inverse, Det and IsPositiveDefinite answer the usual
// questions a factorization is computed for.
//
// Error model:
//
// By default every entry point validates its input and reports numeric
// breakdown through sentinels: ErrDimensionMismatch, ErrSingularPivot,
// ErrNotPositiveDefinite, ErrNotSymmetric and matrix.ErrNaNInf. With
// WithStrictCompat the numeric checks are switched off and zero pivots or
// negative radicands propagate as ±Inf/NaN through the factors, which is what
// the classic textbook formulations do. Shape checks stay on in both modes.
//
// Every function is pure: the input is read once into a private working buffer
// and all returned factors are freshly allocated.
package decomp
