// SPDX-License-Identifier: MIT
// Package decomp: sentinel error set.
// Algorithms return these sentinels wrapped with an operation tag
// ("LU: step 1: ..."); callers match them with errors.Is.

package decomp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lufact/matrix"
)

var (
	// ErrDimensionMismatch is returned when the input shape does not fit the
	// decomposition (e.g. a non-square input to Cholesky or LDLT). It is the
	// same sentinel as matrix.ErrDimensionMismatch.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrSingularPivot is returned when a pivot about to be used as a divisor
	// is zero or within the configured pivot tolerance of zero.
	ErrSingularPivot = errors.New("decomp: singular pivot")

	// ErrNotPositiveDefinite is returned by Cholesky when a diagonal radicand
	// is not strictly positive.
	ErrNotPositiveDefinite = errors.New("decomp: matrix is not positive definite")

	// ErrNotSymmetric is returned by Cholesky and LDLT when the input is not
	// symmetric within eps. Same sentinel as matrix.ErrAsymmetry.
	ErrNotSymmetric = matrix.ErrAsymmetry
)

// Operation tags for error wrapping.
const (
	opLU        = "LU"
	opDoolittle = "Doolittle"
	opCrout     = "Crout"
	opPartial   = "LUPartialPivot"
	opComplete  = "LUCompletePivot"
	opStepwise  = "LUStepwisePivot"
	opCholesky  = "Cholesky"
	opLDLT      = "LDLT"
	opSolve     = "Solve"
	opInverse   = "Inverse"
	opDet       = "Det"
	opPosDef    = "IsPositiveDefinite"
)

// decompErrorf wraps err with an operation tag, preserving it for errors.Is.
func decompErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
