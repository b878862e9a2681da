// SPDX-License-Identifier: MIT
// Package decomp_test contains shared fixtures and property checks for the
// factorization tests.
//
// Purpose:
//   • Name the demo matrices once so every test reads the same inputs.
//   • Keep reconstruction and shape checks in one place.

package decomp_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lufact/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix so the kernels take the generic At path.
type hide struct{ matrix.Matrix }

// mustFrom BUILDS a *Dense from a row literal or fails the test.
func mustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// mul MULTIPLIES left to right or fails the test.
func mul(t *testing.T, a, b matrix.Matrix, rest ...matrix.Matrix) *matrix.Dense {
	t.Helper()
	acc, err := matrix.Mul(a, b)
	require.NoError(t, err)
	for _, m := range rest {
		acc, err = matrix.Mul(acc, m)
		require.NoError(t, err)
	}

	return acc
}

func identityFor(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	id, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return id
}

// transpose RETURNS mᵀ or fails the test.
func transpose(t *testing.T, m matrix.Matrix) *matrix.Dense {
	t.Helper()
	out, err := matrix.Transpose(m)
	require.NoError(t, err)

	return out
}

// requireClose ASSERTS want ≈ got within rtol/atol.
func requireClose(t *testing.T, want, got matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ (rtol=%g atol=%g):\nwant:\n%vgot:\n%v", rtol, atol, want, got)
}

// requireRows ASSERTS m equals rows exactly.
func requireRows(t *testing.T, rows [][]float64, m *matrix.Dense) {
	t.Helper()
	require.Equal(t, rows, m.ToRows())
}

// propUnitLowerTriangular ASSERTS L is r×r lower triangular with ones on the diagonal.
func propUnitLowerTriangular(t *testing.T, L *matrix.Dense, r int) {
	t.Helper()
	require.Equal(t, r, L.Rows())
	require.Equal(t, r, L.Cols())
	ok, err := matrix.IsLowerTriangular(L, 0, true)
	require.NoError(t, err)
	require.Truef(t, ok, "not unit lower triangular:\n%v", L)
}

// propUpperTriangular ASSERTS U is r×c upper triangular.
func propUpperTriangular(t *testing.T, U *matrix.Dense, r, c int, unitDiag bool) {
	t.Helper()
	require.Equal(t, r, U.Rows())
	require.Equal(t, c, U.Cols())
	ok, err := matrix.IsUpperTriangular(U, 0, unitDiag)
	require.NoError(t, err)
	require.Truef(t, ok, "not upper triangular:\n%v", U)
}

// propOrthogonal ASSERTS P·Pᵀ = I for a permutation.
func propOrthogonal(t *testing.T, p *matrix.Permutation) {
	t.Helper()
	pm := p.Matrix()
	requireRows(t, identityFor(t, p.Len()).ToRows(), mul(t, pm, transpose(t, pm)))
}

// hasNonFinite REPORTS whether any entry of m is NaN or ±Inf.
func hasNonFinite(m matrix.Matrix) bool {
	return matrix.ValidateFinite(m) != nil
}

// randDense RETURNS an r×c matrix with entries in [-1,1) from a fixed seed.
func randDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	m, err := matrix.NewDenseData(r, c, data)
	require.NoError(t, err)

	return m
}

// randSPD RETURNS B·Bᵀ + n·I, symmetric positive definite.
func randSPD(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	b := randDense(t, n, n, seed)
	a := mul(t, b, transpose(t, b))
	for i := 0; i < n; i++ {
		v, err := a.At(i, i)
		require.NoError(t, err)
		require.NoError(t, a.Set(i, i, v+float64(n)))
	}
	// Force exact symmetry; the product may differ in the last bit.
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v, err := a.At(i, j)
			require.NoError(t, err)
			require.NoError(t, a.Set(j, i, v))
		}
	}

	return a
}

// ---------- demo catalogue ----------

func vandermonde3() [][]float64 {
	return [][]float64{{1, 1, 1}, {1, 2, 4}, {1, 3, 9}}
}

func wide2x3() [][]float64 { return [][]float64{{3, 2, 4}, {2, 4, 3}} }

func tall3x2() [][]float64 { return [][]float64{{2, 4}, {3, 3}, {4, 2}} }

func symmetric3() [][]float64 {
	return [][]float64{{1, -2, 0}, {-2, 1, -2}, {0, -2, 1}}
}

func posDef3() [][]float64 {
	return [][]float64{{4, 12, -16}, {12, 37, -43}, {-16, -43, 98}}
}

func badNaive() [][]float64 { return [][]float64{{1, 2, 3}, {2, 4, 7}, {3, 3, 3}} }

func badPartial() [][]float64 { return [][]float64{{1, 9, 3}, {2, 2, 7}, {3, 3, 3}} }

func rankOne() [][]float64 { return [][]float64{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}} }

// vandermonde16 RETURNS A[i][j] = (i+1)^j for i, j < 16.
func vandermonde16() [][]float64 {
	const n = 16
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		v := 1.0
		for j := 0; j < n; j++ {
			rows[i][j] = v
			v *= float64(i + 1)
		}
	}

	return rows
}
