// SPDX-License-Identifier: MIT

package decomp

import (
	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/lufact/matrix"
)

// LU computes A = L·U by row-wise Gaussian elimination without pivoting.
// Implementation:
//   - Stage 1: validate (non-nil; finite in hardened mode). Copy A into U, L = I.
//   - Stage 2: for i = 1..r-1 and j = 0..min(i,c)-1 eliminate U[i][j] with the
//     multiplier U[i][j]/U[j][j], recorded in L[i][j].
//
// Behavior highlights:
//   - Rectangular input is accepted: L is r×r unit-lower-triangular, U is r×c
//     upper-triangular.
//   - A pivot is checked only when it is about to be used as a divisor, so a
//     zero in the last diagonal slot of U is not an error.
//
// Inputs:
//   - a: r×c matrix (any Matrix).
//   - opts: WithStrictCompat, WithPivotTolerance, WithPrecision.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNaNInf (hardened), ErrSingularPivot (hardened).
//
// Complexity:
//   - Time O(r²·c), Space O(r² + r·c).
func LU(a matrix.Matrix, opts ...Option) (L, U *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, decompErrorf(opLU, err)
	}
	if L, U, err = factorLU(a, o); err != nil {
		return nil, nil, decompErrorf(opLU, err)
	}

	return L, U, nil
}

// factorLU dispatches the elimination kernel on the configured precision.
// Shared by LU, the pivoted variants and LDLT.
func factorLU(a matrix.Matrix, o Options) (*matrix.Dense, *matrix.Dense, error) {
	switch o.precision {
	case Float32:
		return runPair(a, o, eliminate[float32])
	default:
		return runPair(a, o, eliminate[float64])
	}
}

// runPair loads a into a grid[T], runs kernel and widens its two factors.
func runPair[T constraints.Float](
	a matrix.Matrix, o Options, kernel func(grid[T], guard[T]) (grid[T], grid[T], error),
) (*matrix.Dense, *matrix.Dense, error) {
	w, err := loadGrid[T](a)
	if err != nil {
		return nil, nil, err
	}
	l, u, err := kernel(w, newGuard[T](o))
	if err != nil {
		return nil, nil, err
	}

	return densePair(l, u)
}

// eliminate is the in-place elimination on a private copy of a.
func eliminate[T constraints.Float](a grid[T], g guard[T]) (grid[T], grid[T], error) {
	n, m := a.rows, a.cols
	l := identityGrid[T](n)
	u := newGrid[T](n, m)
	copy(u.data, a.data)

	var (
		i, j, k       int
		pivot, factor T
		rowI, rowJ    int
	)
	for i = 1; i < n; i++ {
		rowI = i * m
		for j = 0; j < min(i, m); j++ {
			rowJ = j * m
			pivot = u.data[rowJ+j]
			if err := g.pivot(pivot, j); err != nil {
				return grid[T]{}, grid[T]{}, err
			}
			factor = u.data[rowI+j] / pivot
			l.data[i*n+j] = factor
			u.data[rowI+j] = 0
			for k = j + 1; k < m; k++ {
				u.data[rowI+k] -= u.data[rowJ+k] * factor
			}
		}
	}

	return l, u, nil
}

// Doolittle computes A = L·U with unit diagonal on L by direct summation:
// row i of U, then column i of L, for increasing i.
//
//	U[i][k] = A[i][k] - Σ_{p<i} L[i][p]·U[p][k]          (k ≥ i)
//	L[k][i] = (A[k][i] - Σ_{p<i} L[k][p]·U[p][i]) / U[i][i]   (k > i)
//
// Mathematically equal to LU; rounding differs because the sums are formed in
// a different order. Shapes and errors as LU. For tall input (r > c) rows ≥ c
// of U are zero and the matching columns of L are identity columns.
func Doolittle(a matrix.Matrix, opts ...Option) (L, U *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, decompErrorf(opDoolittle, err)
	}
	switch o.precision {
	case Float32:
		L, U, err = runPair(a, o, doolittle[float32])
	default:
		L, U, err = runPair(a, o, doolittle[float64])
	}
	if err != nil {
		return nil, nil, decompErrorf(opDoolittle, err)
	}

	return L, U, nil
}

func doolittle[T constraints.Float](a grid[T], g guard[T]) (grid[T], grid[T], error) {
	n, m := a.rows, a.cols
	l := newGrid[T](n, n)
	u := newGrid[T](n, m)

	var (
		i, k, p int
		sum     T
	)
	for i = 0; i < n; i++ {
		// Row i of U.
		for k = i; k < m; k++ {
			sum = 0
			for p = 0; p < i; p++ {
				sum += l.at(i, p) * u.at(p, k)
			}
			u.set(i, k, a.at(i, k)-sum)
		}
		l.set(i, i, 1)
		if i >= m || i+1 >= n {
			continue // no pivot column, or no rows left below
		}
		if err := g.pivot(u.at(i, i), i); err != nil {
			return grid[T]{}, grid[T]{}, err
		}
		// Column i of L.
		for k = i + 1; k < n; k++ {
			sum = 0
			for p = 0; p < i; p++ {
				sum += l.at(k, p) * u.at(p, i)
			}
			l.set(k, i, (a.at(k, i)-sum)/u.at(i, i))
		}
	}

	return l, u, nil
}

// Crout computes A = L·U with unit diagonal on U by direct summation:
// column j of L, then row j of U, for increasing j.
//
//	L[i][j] = A[i][j] - Σ_{p<j} L[i][p]·U[p][j]              (i ≥ j)
//	U[j][k] = (A[j][k] - Σ_{p<j} L[j][p]·U[p][k]) / L[j][j]   (k > j)
//
// L carries the pivots on its diagonal. Shapes and errors as LU. For tall
// input (r > c) rows ≥ c of U are zero and L[j][j] = 1 for j ≥ c.
func Crout(a matrix.Matrix, opts ...Option) (L, U *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, decompErrorf(opCrout, err)
	}
	switch o.precision {
	case Float32:
		L, U, err = runPair(a, o, crout[float32])
	default:
		L, U, err = runPair(a, o, crout[float64])
	}
	if err != nil {
		return nil, nil, decompErrorf(opCrout, err)
	}

	return L, U, nil
}

func crout[T constraints.Float](a grid[T], g guard[T]) (grid[T], grid[T], error) {
	n, m := a.rows, a.cols
	l := newGrid[T](n, n)
	u := newGrid[T](n, m)

	var (
		i, j, k, p int
		sum        T
	)
	for j = 0; j < n; j++ {
		if j >= m {
			l.set(j, j, 1) // U row j is zero; keep L unit here
			continue
		}
		// Column j of L.
		for i = j; i < n; i++ {
			sum = 0
			for p = 0; p < j; p++ {
				sum += l.at(i, p) * u.at(p, j)
			}
			l.set(i, j, a.at(i, j)-sum)
		}
		u.set(j, j, 1)
		if j+1 >= m {
			continue // nothing right of the diagonal to divide
		}
		if err := g.pivot(l.at(j, j), j); err != nil {
			return grid[T]{}, grid[T]{}, err
		}
		// Row j of U.
		for k = j + 1; k < m; k++ {
			sum = 0
			for p = 0; p < j; p++ {
				sum += l.at(j, p) * u.at(p, k)
			}
			u.set(j, k, (a.at(j, k)-sum)/l.at(j, j))
		}
	}

	return l, u, nil
}
