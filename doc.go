// Package lufact is a small dense-matrix factorization library: it splits a
// real matrix into triangular, permuted-triangular and symmetric-triangular
// products that make linear solves, determinants and definiteness checks
// cheap.
//
// What is inside?
//
//	matrix/        : Dense storage, Mul/Transpose, row/column reductions,
//	                 validators, AllClose and Permutation
//	matrix/decomp/ : LU, Doolittle, Crout, LUPartialPivot, LUCompletePivot,
//	                 LUStepwisePivot, Cholesky, LDLT, Solve, Inverse, Det,
//	                 IsPositiveDefinite
//	cmd/lucheck/   : runs every factorization over a catalogue of demo
//	                 matrices and reports PASS/FAIL/REFUSED per product
//
// Two modes:
//
//   - Hardened (default): singular pivots, non positive definite input and
//     asymmetric input come back as sentinel errors.
//   - Strict compatibility (decomp.WithStrictCompat): no numeric checks; zero
//     pivots and negative radicands propagate as ±Inf/NaN, the way textbook
//     formulations behave.
//
// Quick example:
//
//	a, _ := matrix.NewDenseFrom([][]float64{{4, 12, -16}, {12, 37, -43}, {-16, -43, 98}})
//	L, err := decomp.Cholesky(a) // L = [[2,0,0],[6,1,0],[-8,5,3]]
//
//	go get github.com/katalvlaran/lufact
package lufact
