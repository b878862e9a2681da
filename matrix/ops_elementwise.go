// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise difference and the max-norm, used to measure how far a
//     product of factors is from the matrix it should reconstruct.
//
// Determinism & Performance:
//   - Fixed flat loop order 0..n-1 over row-major buffers.
//   - Dense fast-path reads the backing slice directly; other Matrix values
//     go through Flatten once.

package matrix

import "math"

const (
	opSub     = "Sub"
	opNormMax = "NormMax"
)

// Sub returns a - b element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	ad, err := Flatten(a)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	bd, err := Flatten(b)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	for idx := range ad {
		ad[idx] -= bd[idx] // ad is a private copy
	}

	return &Dense{r: a.Rows(), c: a.Cols(), data: ad}, nil
}

// NormMax returns max |m[i,j]|. Any NaN entry makes the result NaN, so a
// broken factorization never reports a small residual.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func NormMax(m Matrix) (float64, error) {
	var src []float64
	if d, ok := m.(*Dense); ok && d != nil {
		src = d.data
	} else {
		flat, err := Flatten(m)
		if err != nil {
			return 0, matrixErrorf(opNormMax, err)
		}
		src = flat
	}

	norm := 0.0
	for _, v := range src {
		if math.IsNaN(v) {
			return math.NaN(), nil
		}
		norm = math.Max(norm, math.Abs(v))
	}

	return norm, nil
}
