// SPDX-License-Identifier: MIT

// Package decomp - consumers of the factorizations: linear solves, inverses,
// determinants and definiteness checks.
package decomp

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lufact/matrix"
)

// Solve returns x with A·x = b, using LUStepwisePivot followed by forward and
// back substitution.
// Implementation:
//   - Stage 1: validate A square and len(b) == n.
//   - Stage 2: factor order·A = L·U; y = L⁻¹·(order·b); x = U⁻¹·y.
//
// Behavior highlights:
//   - The last diagonal entry of U is a divisor here as well, so in hardened
//     mode every pivot is checked against the pivot tolerance.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch (shape or len(b)),
//     matrix.ErrNaNInf (hardened, A or b), ErrSingularPivot (hardened).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Solve(a matrix.Matrix, b []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := validateInput(a, o, true); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	n := a.Rows()
	if len(b) != n {
		return nil, decompErrorf(opSolve, fmt.Errorf("len(b)=%d, n=%d: %w", len(b), n, ErrDimensionMismatch))
	}
	if !o.strict {
		for i, v := range b {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, decompErrorf(opSolve, fmt.Errorf("b[%d]: %w", i, matrix.ErrNaNInf))
			}
		}
	}

	f, err := newSubstitution(a, o)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	x := make([]float64, n)
	if err = f.solve(b, x); err != nil {
		return nil, decompErrorf(opSolve, err)
	}

	return x, nil
}

// Inverse returns A⁻¹, solving A·x = e_j for every column j against a single
// LUStepwisePivot factorization.
// Implementation:
//   - Stage 1: validate A square (finite in hardened mode).
//   - Stage 2: factor once.
//   - Stage 3: for each basis vector e_j, forward then back substitution;
//     write x into column j.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, matrix.ErrNaNInf (hardened),
//     ErrSingularPivot (hardened).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(a matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	if err := validateInput(a, o, true); err != nil {
		return nil, decompErrorf(opInverse, err)
	}
	n := a.Rows()

	f, err := newSubstitution(a, o)
	if err != nil {
		return nil, decompErrorf(opInverse, err)
	}
	inv := make([]float64, n*n)
	e := make([]float64, n)
	x := make([]float64, n)
	var i, col int
	for col = 0; col < n; col++ {
		clear(e)
		e[col] = 1
		if err = f.solve(e, x); err != nil {
			return nil, decompErrorf(opInverse, err)
		}
		for i = 0; i < n; i++ {
			inv[i*n+col] = x[i]
		}
	}

	return matrix.NewDenseData(n, n, inv)
}

// substitution holds one step-wise pivoted factorization of a square matrix,
// ready for repeated solves.
type substitution struct {
	n     int
	order []int     // order[i] = original row at position i
	l, u  []float64 // row-major n×n
	g     guard[float64]
}

func newSubstitution(a matrix.Matrix, o Options) (*substitution, error) {
	P, L, U, err := factorStepwise(a, o)
	if err != nil {
		return nil, err
	}

	return &substitution{
		n:     a.Rows(),
		order: P.Inverse().Order(),
		l:     L.RawCopy(),
		u:     U.RawCopy(),
		g:     newGuard[float64](o),
	}, nil
}

// solve writes the solution of A·x = b into x (len n). b is not modified.
func (s *substitution) solve(b, x []float64) error {
	n := s.n
	// Forward substitution, L has a unit diagonal; y is built in x.
	var i, j int
	for i = 0; i < n; i++ {
		x[i] = b[s.order[i]]
		for j = 0; j < i; j++ {
			x[i] -= s.l[i*n+j] * x[j]
		}
	}
	// Back substitution.
	for i = n - 1; i >= 0; i-- {
		if err := s.g.pivot(s.u[i*n+i], i); err != nil {
			return err
		}
		for j = i + 1; j < n; j++ {
			x[i] -= s.u[i*n+j] * x[j]
		}
		x[i] /= s.u[i*n+i]
	}

	return nil
}

// Det returns det(A) = sign(P)·Π U[i][i] from LUStepwisePivot.
// A singular pivot (hardened mode) means the remaining column vanished, and
// the determinant is reported as exactly 0 instead of an error.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, matrix.ErrNaNInf (hardened).
func Det(a matrix.Matrix, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	if err := validateInput(a, o, true); err != nil {
		return 0, decompErrorf(opDet, err)
	}

	P, _, U, err := factorStepwise(a, o)
	if errors.Is(err, ErrSingularPivot) {
		return 0, nil
	}
	if err != nil {
		return 0, decompErrorf(opDet, err)
	}
	diag, err := matrix.Diagonal(U)
	if err != nil {
		return 0, decompErrorf(opDet, err)
	}

	det := float64(P.Sign())
	for _, d := range diag {
		det *= d
	}

	return det, nil
}

// IsPositiveDefinite reports whether A is symmetric (within eps) and
// positive definite, by attempting a hardened Cholesky factorization.
// WithStrictCompat is ignored: the answer needs the checks.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, matrix.ErrNaNInf.
func IsPositiveDefinite(a matrix.Matrix, opts ...Option) (bool, error) {
	_, err := Cholesky(a, append(slices.Clone(opts), WithHardened())...)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotPositiveDefinite), errors.Is(err, ErrNotSymmetric):
		return false, nil
	default:
		return false, decompErrorf(opPosDef, err)
	}
}
