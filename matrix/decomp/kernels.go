// SPDX-License-Identifier: MIT

// Package decomp - precision-generic working storage shared by all kernels.
//
// Every public entry point copies its input once into a grid[T] (T = float32 or
// float64, per WithPrecision), runs a kernel on private grids and widens the
// resulting grids back into fresh *matrix.Dense values. Nothing here aliases
// caller memory.
package decomp

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/lufact/matrix"
)

// grid is a row-major working buffer (offset = i*cols + j).
type grid[T constraints.Float] struct {
	rows, cols int
	data       []T
}

func newGrid[T constraints.Float](rows, cols int) grid[T] {
	return grid[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

func identityGrid[T constraints.Float](n int) grid[T] {
	g := newGrid[T](n, n)
	for i := 0; i < n; i++ {
		g.data[i*n+i] = 1
	}

	return g
}

// loadGrid narrows (or copies) m into a private buffer of type T.
func loadGrid[T constraints.Float](m matrix.Matrix) (grid[T], error) {
	src, err := matrix.Flatten(m)
	if err != nil {
		return grid[T]{}, err
	}
	g := newGrid[T](m.Rows(), m.Cols())
	for idx, v := range src {
		g.data[idx] = T(v)
	}

	return g, nil
}

func (g grid[T]) at(i, j int) T { return g.data[i*g.cols+j] }

func (g grid[T]) set(i, j int, v T) { g.data[i*g.cols+j] = v }

// swapRows exchanges rows a and b over columns [0, upTo).
func (g grid[T]) swapRows(a, b, upTo int) {
	ra, rb := a*g.cols, b*g.cols
	for j := 0; j < upTo; j++ {
		g.data[ra+j], g.data[rb+j] = g.data[rb+j], g.data[ra+j]
	}
}

// dense widens g into a fresh *matrix.Dense.
func (g grid[T]) dense() (*matrix.Dense, error) {
	buf := make([]float64, len(g.data))
	for idx, v := range g.data {
		buf[idx] = float64(v)
	}

	return matrix.NewDenseData(g.rows, g.cols, buf)
}

func abs[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}

	return v
}

func sqrt[T constraints.Float](v T) T { return T(math.Sqrt(float64(v))) }

// guard decides whether a divisor may be used. In strict mode it never objects.
type guard[T constraints.Float] struct {
	strict bool
	tol    T
}

func newGuard[T constraints.Float](o Options) guard[T] {
	return guard[T]{strict: o.strict, tol: T(o.pivotTol)}
}

// pivot returns ErrSingularPivot when |p| <= tol (or p is NaN) in hardened mode.
func (g guard[T]) pivot(p T, step int) error {
	if g.strict {
		return nil
	}
	if !(abs(p) > g.tol) {
		return fmt.Errorf("step %d: pivot %g: %w", step, float64(p), ErrSingularPivot)
	}

	return nil
}

// radicand returns ErrNotPositiveDefinite when r <= 0 (or NaN) in hardened mode.
func (g guard[T]) radicand(r T, row int) error {
	if g.strict {
		return nil
	}
	if !(r > 0) {
		return fmt.Errorf("row %d: radicand %g: %w", row, float64(r), ErrNotPositiveDefinite)
	}

	return nil
}

// densePair widens two grids; used by every (L, U) style result.
func densePair[T constraints.Float](a, b grid[T]) (*matrix.Dense, *matrix.Dense, error) {
	ad, err := a.dense()
	if err != nil {
		return nil, nil, err
	}
	bd, err := b.dense()
	if err != nil {
		return nil, nil, err
	}

	return ad, bd, nil
}

// validateInput runs the structural checks (always) and the finiteness check
// (hardened mode only) shared by every entry point.
func validateInput(a matrix.Matrix, o Options, square bool) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return err
	}
	if square {
		if err := matrix.ValidateSquare(a); err != nil {
			return err
		}
	}
	if o.strict {
		return nil
	}

	return matrix.ValidateFinite(a)
}
