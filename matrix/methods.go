// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose, row/column magnitude reductions, diagonal
// extraction and tolerance comparison. All functions perform strict fail-fast
// validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every function has a *Dense fast path over the flat buffer and a generic
//     At-based fallback with the same loop order, so both produce identical bits.
//   - Results are always freshly allocated; operands are never mutated.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opFlatten   = "Flatten"
	opRowMax    = "RowMaxAbs"
	opColMax    = "ColMaxAbs"
	opDiagonal  = "Diagonal"
	opAllClose  = "AllClose"
	opTriangle  = "Triangular"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Flatten returns a row-major copy of m's elements.
// Implementation:
//   - Stage 1: ValidateNotNil(m).
//   - Stage 2: *Dense → RawCopy; otherwise read every cell via At in i→j order.
//
// Behavior highlights:
//   - The returned slice never aliases m's storage, so callers may use it as a
//     private working buffer.
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange only if an implementation misreports its shape.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Flatten(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opFlatten, err)
	}
	if dm, ok := m.(*Dense); ok {
		return dm.RawCopy(), nil
	}

	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows*cols)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opFlatten, err)
			}
			out[i*cols+j] = v
		}
	}

	return out, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Flatten both operands, then run i→k→j over row-major strides.
//
// Behavior highlights:
//   - Deterministic triple loop; one allocation for C plus operand copies
//     for non-Dense inputs.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - *Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// Notes:
//   - Zero entries of A are NOT skipped: 0·Inf must yield NaN so that products
//     of strict-mode factors expose non-finite values instead of hiding them.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := Flatten(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := Flatten(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                          int
		av                               float64
		rowOffsetA, rowOffsetB, rowOffsR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsR = i * bCols
		for k = 0; k < aCols; k++ {
			av = ad[rowOffsetA+k]
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsR+j] += av * bd[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Implementation:
//   - Stage 1: ValidateNotNil(m). Allocate Dense(cols, rows).
//   - Stage 2: copy data[i*cols+j] → res[j*rows+i].
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j, base int
	for i = 0; i < rows; i++ {
		base = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = src[base+j]
		}
	}

	return res, nil
}

// RowMaxAbs returns max_j |m[i][j]| for every row i.
// A row of zeros reports 0; a NaN anywhere in the row propagates.
// Complexity: O(r*c).
func RowMaxAbs(m Matrix) ([]float64, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opRowMax, err)
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i] = math.Max(out[i], math.Abs(src[i*cols+j]))
		}
	}

	return out, nil
}

// ColMaxAbs returns max_i |m[i][j]| for every column j.
// Complexity: O(r*c).
func ColMaxAbs(m Matrix) ([]float64, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opColMax, err)
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j] = math.Max(out[j], math.Abs(src[i*cols+j]))
		}
	}

	return out, nil
}

// Diagonal returns the main diagonal m[i][i], i < min(rows, cols).
func Diagonal(m Matrix) ([]float64, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	rows, cols := m.Rows(), m.Cols()
	n := min(rows, cols)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = src[i*cols+i]
	}

	return out, nil
}

// AllClose reports whether every pair a[i][j], b[i][j] is equal within
// atol absolutely or rtol relatively (gonum scalar.EqualWithinAbsOrRel).
// Implementation:
//   - Stage 1: reject non-finite tolerances (ErrNaNInf); negative values are abs-ed.
//   - Stage 2: validate both operands present and of identical shape.
//   - Stage 3: compare flat buffers; early-exit on the first violation.
//
// Behavior highlights:
//   - A NaN on either side never compares close, so strict-mode factors that
//     picked up NaN/Inf fail reconstruction checks.
//
// Errors:
//   - ErrNaNInf (bad tolerance), ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for non-Dense operands.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	ad, err := Flatten(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	bd, err := Flatten(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	for idx := range ad {
		if !scalar.EqualWithinAbsOrRel(ad[idx], bd[idx], atol, rtol) {
			return false, nil
		}
	}

	return true, nil
}

// IsLowerTriangular reports whether every entry above the main diagonal is
// within tol of zero. When unitDiag is set, diagonal entries must also be
// within tol of 1.
func IsLowerTriangular(m Matrix, tol float64, unitDiag bool) (bool, error) {
	return triangular(m, tol, unitDiag, func(i, j int) bool { return j > i })
}

// IsUpperTriangular reports whether every entry below the main diagonal is
// within tol of zero. When unitDiag is set, diagonal entries must also be
// within tol of 1.
func IsUpperTriangular(m Matrix, tol float64, unitDiag bool) (bool, error) {
	return triangular(m, tol, unitDiag, func(i, j int) bool { return i > j })
}

// triangular is the shared scan behind IsLowerTriangular/IsUpperTriangular;
// mustBeZero selects the strict triangle that has to vanish.
func triangular(m Matrix, tol float64, unitDiag bool, mustBeZero func(i, j int) bool) (bool, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return false, matrixErrorf(opTriangle, ErrNaNInf)
	}
	src, err := Flatten(m)
	if err != nil {
		return false, matrixErrorf(opTriangle, err)
	}
	tol = math.Abs(tol)
	rows, cols := m.Rows(), m.Cols()
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v = src[i*cols+j]
			switch {
			case mustBeZero(i, j):
				if !scalar.EqualWithinAbs(v, 0, tol) {
					return false, nil
				}
			case i == j && unitDiag:
				if !scalar.EqualWithinAbs(v, 1, tol) {
					return false, nil
				}
			}
		}
	}

	return true, nil
}
