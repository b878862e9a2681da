// SPDX-License-Identifier: MIT
// Package decomp_test contains tests for the pivoted LU variants.

package decomp_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/lufact/matrix"
	"github.com/katalvlaran/lufact/matrix/decomp"
	"github.com/stretchr/testify/require"
)

// pivotCatalogue lists inputs every pivoted variant must reconstruct.
func pivotCatalogue() map[string][][]float64 {
	return map[string][][]float64{
		"low rank vandermonde": vandermonde3(),
		"single element":       {{-1}},
		"wide 2x3":             wide2x3(),
		"tall 3x2":             tall3x2(),
		"symmetric":            symmetric3(),
		"positive definite":    posDef3(),
		"bad naive LU":         badNaive(),
	}
}

func TestLUPartialPivot_Reconstructs(t *testing.T) {
	t.Parallel()

	for name, rows := range pivotCatalogue() {
		name, rows := name, rows
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			a := mustFrom(t, rows)
			r, c := a.Shape()

			P, L, U, err := decomp.LUPartialPivot(a)
			require.NoError(t, err)
			require.Equal(t, r, P.Len())
			propOrthogonal(t, P)
			propUnitLowerTriangular(t, L, r)
			propUpperTriangular(t, U, r, c, false)
			requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-12, 1e-12)

			// Pᵀ·A = L·U.
			pa, err := P.Inverse().PermuteRows(a)
			require.NoError(t, err)
			requireClose(t, pa, mul(t, L, U), 1e-12, 1e-12)
		})
	}
}

func TestLUCompletePivot_Reconstructs(t *testing.T) {
	t.Parallel()

	for name, rows := range pivotCatalogue() {
		name, rows := name, rows
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			a := mustFrom(t, rows)
			r, c := a.Shape()

			P, L, U, Q, err := decomp.LUCompletePivot(a)
			require.NoError(t, err)
			require.Equal(t, r, P.Len())
			require.Equal(t, c, Q.Len())
			propOrthogonal(t, P)
			propOrthogonal(t, Q)
			propUnitLowerTriangular(t, L, r)
			propUpperTriangular(t, U, r, c, false)
			requireClose(t, a, mul(t, P.Matrix(), L, U, Q.Matrix()), 1e-12, 1e-12)
		})
	}
}

// TestLUPartialPivot_RowOrder pins the single-pass first-column ranking.
func TestLUPartialPivot_RowOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rows  [][]float64
		order []int
	}{
		// ratios 1/3, 2/7, 1
		{"bad naive LU", badNaive(), []int{2, 0, 1}},
		// ratios 1, 1/4, 1/9
		{"vandermonde keeps order", vandermonde3(), []int{0, 1, 2}},
		// ratios 1/2, 1/2, 1: ties keep ascending index
		{"stable ties", [][]float64{{1, 2}, {2, 4}, {3, 1}}, []int{2, 0, 1}},
		// zero row has ratio 0
		{"zero row last", [][]float64{{0, 0}, {1, 2}}, []int{1, 0}},
		// ratios 1/2, 1, 0
		{"symmetric", symmetric3(), []int{1, 0, 2}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := mustFrom(t, tc.rows)

			P, L, U, err := decomp.LUPartialPivot(a)
			require.NoError(t, err)
			require.Equal(t, tc.order, P.Inverse().Order())
			requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-12, 1e-12)
		})
	}
}

func TestLUCompletePivot_ColumnOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rows     [][]float64
		rowOrder []int
		colOrder []int
	}{
		// column ratios 1/3, 1/2, 3/7
		{"bad naive LU", badNaive(), []int{2, 0, 1}, []int{1, 2, 0}},
		// column ratios 1/4, 12/43, 16/98
		{"positive definite", posDef3(), []int{1, 0, 2}, []int{1, 0, 2}},
		// column ratios 1, 1/2, 1
		{"wide 2x3", wide2x3(), []int{0, 1}, []int{0, 2, 1}},
		// row ratios 1/2, 1, 1; column ratios 1/2, 1
		{"tall 3x2", tall3x2(), []int{1, 2, 0}, []int{1, 0}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			P, _, _, Q, err := decomp.LUCompletePivot(mustFrom(t, tc.rows))
			require.NoError(t, err)
			require.Equal(t, tc.rowOrder, P.Inverse().Order())
			require.Equal(t, tc.colOrder, Q.Inverse().Order())
		})
	}
}

// TestLUPartialPivot_SinglePassLimit: the order is fixed before elimination,
// so a zero that appears in the reduced column is not avoided.
// The last row is scaled by a power of two so the cancellation is exact.
func TestLUPartialPivot_SinglePassLimit(t *testing.T) {
	a := mustFrom(t, [][]float64{{1, 9, 3}, {2, 2, 7}, {4, 4, 4}})

	_, _, _, err := decomp.LUPartialPivot(a)
	require.ErrorIs(t, err, decomp.ErrSingularPivot)
	require.Contains(t, err.Error(), "LUPartialPivot")

	_, L, U, err := decomp.LUPartialPivot(a, decomp.WithStrictCompat())
	require.NoError(t, err)
	require.True(t, hasNonFinite(L) || hasNonFinite(U))

	// Step-wise re-pivoting handles the same input.
	P, L, U, err := decomp.LUStepwisePivot(a)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-12, 1e-12)

	// So does the column reordering of complete pivoting.
	P, L, U, Q, err := decomp.LUCompletePivot(a)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U, Q.Matrix()), 1e-12, 1e-12)
}

func TestLUPartialPivot_FixesNaiveBreakdown(t *testing.T) {
	a := mustFrom(t, badNaive())

	_, _, err := decomp.LU(a)
	require.ErrorIs(t, err, decomp.ErrSingularPivot)

	L, U, err := decomp.LU(a, decomp.WithStrictCompat())
	require.NoError(t, err)
	ok, err := matrix.AllClose(a, mul(t, L, U), 0, 1e-8)
	require.NoError(t, err)
	require.False(t, ok, "strict naive LU must not reconstruct")

	_, _, _, err = decomp.LUPartialPivot(a)
	require.NoError(t, err)
}

func TestPivoted_Singular(t *testing.T) {
	a := mustFrom(t, rankOne())

	_, _, _, err := decomp.LUPartialPivot(a)
	require.ErrorIs(t, err, decomp.ErrSingularPivot)
	_, _, _, _, err = decomp.LUCompletePivot(a)
	require.ErrorIs(t, err, decomp.ErrSingularPivot)
	// Powers of two keep every multiplier exact after the row swap.
	_, _, _, err = decomp.LUStepwisePivot(mustFrom(t, [][]float64{{1, 1, 1}, {2, 2, 2}, {4, 4, 4}}))
	require.ErrorIs(t, err, decomp.ErrSingularPivot)

	_, _, U, _, err := decomp.LUCompletePivot(a, decomp.WithStrictCompat())
	require.NoError(t, err)
	require.True(t, hasNonFinite(U))
}

func TestPivoted_HighRankVandermonde(t *testing.T) {
	a := mustFrom(t, vandermonde16())

	P, L, U, err := decomp.LUPartialPivot(a)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-8, 1e-8)

	P, L, U, Q, err := decomp.LUCompletePivot(a)
	require.NoError(t, err)
	propOrthogonal(t, P)
	propOrthogonal(t, Q)
	requireClose(t, a, mul(t, P.Matrix(), L, U, Q.Matrix()), 1e-8, 1e-8)
}

func TestPivoted_InputValidation(t *testing.T) {
	_, _, _, err := decomp.LUPartialPivot(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, _, _, _, err = decomp.LUCompletePivot(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, _, _, err = decomp.LUStepwisePivot(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	a := mustFrom(t, [][]float64{{1, 2}, {math.Inf(-1), 4}})
	_, _, _, err = decomp.LUPartialPivot(a)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, _, _, _, err = decomp.LUCompletePivot(a)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, _, _, err = decomp.LUStepwisePivot(a)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestPivoted_GenericPathMatchesDense(t *testing.T) {
	a := mustFrom(t, badNaive())

	P1, L1, U1, Q1, err := decomp.LUCompletePivot(a)
	require.NoError(t, err)
	P2, L2, U2, Q2, err := decomp.LUCompletePivot(hide{a})
	require.NoError(t, err)
	require.Equal(t, P1.Order(), P2.Order())
	require.Equal(t, Q1.Order(), Q2.Order())
	require.Equal(t, L1.RawCopy(), L2.RawCopy())
	require.Equal(t, U1.RawCopy(), U2.RawCopy())
}

func TestLUStepwisePivot_Random(t *testing.T) {
	t.Parallel()

	shapes := []struct{ r, c int }{{1, 1}, {2, 2}, {5, 5}, {8, 8}, {4, 6}, {6, 4}}
	for idx, sh := range shapes {
		idx, sh := idx, sh
		t.Run(fmt.Sprintf("%dx%d", sh.r, sh.c), func(t *testing.T) {
			t.Parallel()
			a := randDense(t, sh.r, sh.c, int64(100+idx))

			P, L, U, err := decomp.LUStepwisePivot(a)
			require.NoError(t, err)
			propOrthogonal(t, P)
			propUnitLowerTriangular(t, L, sh.r)
			propUpperTriangular(t, U, sh.r, sh.c, false)
			requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-12, 1e-12)

			// Every multiplier is bounded by the pivot it was divided by.
			for _, v := range L.RawCopy() {
				require.LessOrEqual(t, math.Abs(v), 1.0)
			}
		})
	}
}

func TestLUStepwisePivot_SwapsOnZeroLead(t *testing.T) {
	a := mustFrom(t, [][]float64{{0, 1}, {2, 3}})

	_, _, err := decomp.LU(a)
	require.ErrorIs(t, err, decomp.ErrSingularPivot)

	P, L, U, err := decomp.LUStepwisePivot(a)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, P.Inverse().Order())
	requireRows(t, [][]float64{{1, 0}, {0, 1}}, L)
	requireRows(t, [][]float64{{2, 3}, {0, 1}}, U)
}

func TestPivoted_Float32(t *testing.T) {
	a := mustFrom(t, badNaive())
	f32 := decomp.WithPrecision(decomp.Float32)

	P, L, U, err := decomp.LUPartialPivot(a, f32)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-5, 1e-4)

	P, L, U, Q, err := decomp.LUCompletePivot(a, f32)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U, Q.Matrix()), 1e-5, 1e-4)

	P, L, U, err = decomp.LUStepwisePivot(a, f32)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-5, 1e-4)
}

func TestPivoted_BadPartialDemo(t *testing.T) {
	a := mustFrom(t, badPartial())

	P, L, U, Q, err := decomp.LUCompletePivot(a)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0}, Q.Inverse().Order())
	requireClose(t, a, mul(t, P.Matrix(), L, U, Q.Matrix()), 1e-12, 1e-12)

	P, L, U, err = decomp.LUStepwisePivot(a)
	require.NoError(t, err)
	requireClose(t, a, mul(t, P.Matrix(), L, U), 1e-12, 1e-12)
}
