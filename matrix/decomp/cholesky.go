// SPDX-License-Identifier: MIT

package decomp

import (
	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/lufact/matrix"
)

// Cholesky computes lower-triangular L with A = L·Lᵀ.
// Implementation:
//   - Stage 1: validate square; in hardened mode also finite and symmetric within eps.
//   - Stage 2: row by row,
//     L[i][j] = (A[i][j] - Σ_{k<j} L[i][k]·L[j][k]) / L[j][j]   (j < i)
//     L[i][i] = sqrt(A[i][i] - Σ_{k<i} L[i][k]²)
//
// Behavior highlights:
//   - Only the lower triangle of A is read by the recurrence.
//   - Strict mode takes the square root of a negative radicand as is, leaving
//     NaN on the diagonal and everywhere it is used afterwards.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, matrix.ErrNaNInf (hardened),
//     ErrNotSymmetric (hardened), ErrNotPositiveDefinite (hardened).
//
// Complexity:
//   - Time O(n³/6), Space O(n²).
func Cholesky(a matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	if err := validateSymmetricInput(a, o); err != nil {
		return nil, decompErrorf(opCholesky, err)
	}

	var (
		L   *matrix.Dense
		err error
	)
	switch o.precision {
	case Float32:
		L, err = runCholesky[float32](a, o)
	default:
		L, err = runCholesky[float64](a, o)
	}
	if err != nil {
		return nil, decompErrorf(opCholesky, err)
	}

	return L, nil
}

func runCholesky[T constraints.Float](a matrix.Matrix, o Options) (*matrix.Dense, error) {
	w, err := loadGrid[T](a)
	if err != nil {
		return nil, err
	}
	l, err := cholesky(w, newGuard[T](o))
	if err != nil {
		return nil, err
	}

	return l.dense()
}

func cholesky[T constraints.Float](a grid[T], g guard[T]) (grid[T], error) {
	n := a.rows
	l := newGrid[T](n, n)

	var (
		i, j, k int
		s       T
	)
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			s = a.at(i, j)
			for k = 0; k < j; k++ {
				s -= l.at(i, k) * l.at(j, k)
			}
			l.set(i, j, s/l.at(j, j))
		}
		s = a.at(i, i)
		for k = 0; k < i; k++ {
			s -= l.at(i, k) * l.at(i, k)
		}
		if err := g.radicand(s, i); err != nil {
			return grid[T]{}, err
		}
		l.set(i, i, sqrt(s))
	}

	return l, nil
}

// LDLT computes A = L·D·Lᵀ for symmetric A: L is the unit-lower-triangular
// factor of LU(A) and D the diagonal matrix built from diag(U).
//
// Symmetry is what makes U = D·Lᵀ hold. In hardened mode a non-symmetric input
// is rejected with ErrNotSymmetric; in strict mode it is factored anyway and
// the returned L, D do not reconstruct A.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDimensionMismatch, matrix.ErrNaNInf (hardened),
//     ErrNotSymmetric (hardened), ErrSingularPivot (hardened).
func LDLT(a matrix.Matrix, opts ...Option) (L, D *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateSymmetricInput(a, o); err != nil {
		return nil, nil, decompErrorf(opLDLT, err)
	}

	L, U, err := factorLU(a, o)
	if err != nil {
		return nil, nil, decompErrorf(opLDLT, err)
	}
	d, err := matrix.Diagonal(U)
	if err != nil {
		return nil, nil, decompErrorf(opLDLT, err)
	}
	if D, err = matrix.NewDiagonal(d); err != nil {
		return nil, nil, decompErrorf(opLDLT, err)
	}

	return L, D, nil
}

// validateSymmetricInput: square always; finite and symmetric within eps in
// hardened mode.
func validateSymmetricInput(a matrix.Matrix, o Options) error {
	if err := validateInput(a, o, true); err != nil {
		return err
	}
	if o.strict {
		return nil
	}

	return matrix.ValidateSymmetric(a, o.eps)
}
