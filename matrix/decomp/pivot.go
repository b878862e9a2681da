// SPDX-License-Identifier: MIT

// Package decomp - pivoted LU.
//
// LUPartialPivot and LUCompletePivot pick their permutations ONCE, before any
// elimination, from scaled magnitudes of the first column (rows) and first
// row (columns) of the input. The order is then fixed for every step. This is
// weaker than textbook pivoting, which re-searches the reduced column at each
// step; that behavior lives in LUStepwisePivot under its own name.
package decomp

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/lufact/matrix"
)

// LUPartialPivot computes A = P·L·U with scaled partial pivoting.
// Implementation:
//   - Stage 1: scale[i] = max_j |A[i][j]|; ratio[i] = |A[i][0]| / scale[i]
//     (a zero row gets ratio 0).
//   - Stage 2: order = row indices stably sorted by descending ratio.
//   - Stage 3: run LU on the rows of A gathered by order.
//
// Returns:
//   - P: inverse of the row order, so A = P·L·U and Pᵀ·A = L·U.
//     P.Inverse().Index(i) is the original row placed at position i.
//   - L (r×r unit lower), U (r×c upper).
//
// Errors:
//   - As LU.
//
// Complexity:
//   - Time O(r²·c + r log r), Space O(r² + r·c).
func LUPartialPivot(a matrix.Matrix, opts ...Option) (P *matrix.Permutation, L, U *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, nil, decompErrorf(opPartial, err)
	}

	rowOrder, err := scaledRowOrder(a)
	if err != nil {
		return nil, nil, nil, decompErrorf(opPartial, err)
	}
	pa, err := rowOrder.PermuteRows(a)
	if err != nil {
		return nil, nil, nil, decompErrorf(opPartial, err)
	}
	if L, U, err = factorLU(pa, o); err != nil {
		return nil, nil, nil, decompErrorf(opPartial, err)
	}

	return rowOrder.Inverse(), L, U, nil
}

// LUCompletePivot computes A = P·L·U·Q with scaled complete pivoting.
// Implementation:
//   - Stage 1: row order as in LUPartialPivot.
//   - Stage 2: colScale[j] = max_i |A[i][j]|; column order = column indices
//     stably sorted by descending |A[0][j]| / colScale[j] (first row of A).
//   - Stage 3: run LU on R·A·C, where R and C are the permutation matrices of
//     the two orders (M[i][order[i]] = 1, multiplied left and right).
//
// Returns:
//   - P = R⁻¹ and Q = C⁻¹, so A = P·L·U·Q.
//
// Notes:
//   - Multiplying by C on the right scatters column k to position
//     colOrder[k]; the returned Q undoes exactly that, whatever the order.
//
// Errors:
//   - As LU.
func LUCompletePivot(a matrix.Matrix, opts ...Option) (P *matrix.Permutation, L, U *matrix.Dense, Q *matrix.Permutation, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}

	rowOrder, err := scaledRowOrder(a)
	if err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}
	colOrder, err := scaledColOrder(a)
	if err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}

	pa, err := rowOrder.PermuteRows(a)
	if err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}
	paq, err := colOrder.PermuteCols(pa)
	if err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}
	if L, U, err = factorLU(paq, o); err != nil {
		return nil, nil, nil, nil, decompErrorf(opComplete, err)
	}

	return rowOrder.Inverse(), L, U, colOrder.Inverse(), nil
}

// scaledRowOrder ranks rows by |A[i][0]| / max_j |A[i][j]|, descending, stable.
func scaledRowOrder(a matrix.Matrix) (*matrix.Permutation, error) {
	scales, err := matrix.RowMaxAbs(a)
	if err != nil {
		return nil, err
	}
	firstCol := make([]float64, a.Rows())
	for i := range firstCol {
		if firstCol[i], err = a.At(i, 0); err != nil {
			return nil, err
		}
	}

	return matrix.NewPermutation(descendingByRatio(firstCol, scales))
}

// scaledColOrder ranks columns by |A[0][j]| / max_i |A[i][j]|, descending, stable.
func scaledColOrder(a matrix.Matrix) (*matrix.Permutation, error) {
	scales, err := matrix.ColMaxAbs(a)
	if err != nil {
		return nil, err
	}
	firstRow := make([]float64, a.Cols())
	for j := range firstRow {
		if firstRow[j], err = a.At(0, j); err != nil {
			return nil, err
		}
	}

	return matrix.NewPermutation(descendingByRatio(firstRow, scales))
}

// descendingByRatio returns indices 0..n-1 stably sorted by |v[i]|/scale[i],
// largest first. Ties keep ascending index order. A zero scale yields ratio 0
// and a NaN ratio sorts last.
func descendingByRatio(v, scale []float64) []int {
	ratio := make([]float64, len(v))
	idx := make([]int, len(v))
	for i := range v {
		idx[i] = i
		if scale[i] != 0 {
			ratio[i] = math.Abs(v[i]) / scale[i]
		}
	}
	slices.SortStableFunc(idx, func(x, y int) int {
		// cmp.Compare orders NaN first; reversing the operands puts it last.
		return cmp.Compare(ratio[y], ratio[x])
	})

	return idx
}

// LUStepwisePivot computes A = P·L·U with textbook partial pivoting: before
// eliminating column k the row with the largest |U[i][k]| (i ≥ k) is swapped
// into position k. Ties keep the upper row.
//
// Returns and errors as LUPartialPivot. In hardened mode a zero pivot here
// means the whole remaining column is (numerically) zero.
func LUStepwisePivot(a matrix.Matrix, opts ...Option) (P *matrix.Permutation, L, U *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if err = validateInput(a, o, false); err != nil {
		return nil, nil, nil, decompErrorf(opStepwise, err)
	}
	if P, L, U, err = factorStepwise(a, o); err != nil {
		return nil, nil, nil, decompErrorf(opStepwise, err)
	}

	return P, L, U, nil
}

func factorStepwise(a matrix.Matrix, o Options) (*matrix.Permutation, *matrix.Dense, *matrix.Dense, error) {
	switch o.precision {
	case Float32:
		return runStepwise[float32](a, o)
	default:
		return runStepwise[float64](a, o)
	}
}

func runStepwise[T constraints.Float](a matrix.Matrix, o Options) (*matrix.Permutation, *matrix.Dense, *matrix.Dense, error) {
	w, err := loadGrid[T](a)
	if err != nil {
		return nil, nil, nil, err
	}
	order, l, u, err := stepwise(w, newGuard[T](o))
	if err != nil {
		return nil, nil, nil, err
	}
	rowOrder, err := matrix.NewPermutation(order)
	if err != nil {
		return nil, nil, nil, err
	}
	L, U, err := densePair(l, u)
	if err != nil {
		return nil, nil, nil, err
	}

	return rowOrder.Inverse(), L, U, nil
}

// stepwise returns order (order[i] = original row at position i) with
// order·A = L·U.
func stepwise[T constraints.Float](a grid[T], g guard[T]) ([]int, grid[T], grid[T], error) {
	n, m := a.rows, a.cols
	l := newGrid[T](n, n)
	u := newGrid[T](n, m)
	copy(u.data, a.data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	var (
		i, j, k, best int
		pivot, factor T
	)
	for k = 0; k < min(n-1, m); k++ {
		best = k
		for i = k + 1; i < n; i++ {
			if abs(u.at(i, k)) > abs(u.at(best, k)) {
				best = i
			}
		}
		if best != k {
			u.swapRows(k, best, m)
			l.swapRows(k, best, k) // multipliers already recorded for columns < k
			order[k], order[best] = order[best], order[k]
		}

		pivot = u.at(k, k)
		if err := g.pivot(pivot, k); err != nil {
			return nil, grid[T]{}, grid[T]{}, err
		}
		for i = k + 1; i < n; i++ {
			factor = u.at(i, k) / pivot
			l.set(i, k, factor)
			u.set(i, k, 0)
			for j = k + 1; j < m; j++ {
				u.data[i*m+j] -= u.at(k, j) * factor
			}
		}
	}
	for i = 0; i < n; i++ {
		l.set(i, i, 1)
	}

	return order, l, u, nil
}
