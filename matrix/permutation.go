// SPDX-License-Identifier: MIT

// Package matrix - Permutation: row/column reorderings.
//
// Purpose:
//   - Represent a reordering once, as an index mapping, and derive the 0/1
//     permutation matrix on demand.
//   - Apply reorderings without materializing the permutation matrix.
//
// Convention:
//   - order[i] is the original row (or column) that now occupies position i.
//   - The matrix form M has M[i][order[i]] = 1, so M·A gathers the rows of A
//     by order and A·M scatters column k of A to position order[k].
//   - M·Mᵀ = I; the matrix form of Inverse() is Mᵀ.

package matrix

import "fmt"

const (
	opPermutation = "Permutation"
	opPermuteRows = "PermuteRows"
	opPermuteCols = "PermuteCols"
	opCompose     = "Compose"
)

// Permutation is an immutable bijection on 0..n-1.
type Permutation struct {
	order []int // order[i] = source index placed at position i
}

// NewPermutation validates order and returns the permutation it describes.
// The slice is copied.
// Implementation:
//   - Stage 1: reject empty input (ErrInvalidDimensions).
//   - Stage 2: check every entry is in range and seen exactly once.
//
// Errors:
//   - ErrInvalidDimensions, ErrInvalidPermutation (wrapped with the offending position).
//
// Complexity:
//   - Time O(n), Space O(n).
func NewPermutation(order []int) (*Permutation, error) {
	n := len(order)
	if n == 0 {
		return nil, matrixErrorf(opPermutation, ErrInvalidDimensions)
	}
	seen := make([]bool, n)
	for i, src := range order {
		if src < 0 || src >= n || seen[src] {
			return nil, matrixErrorf(fmt.Sprintf("%s[%d]=%d", opPermutation, i, src), ErrInvalidPermutation)
		}
		seen[src] = true
	}
	cp := make([]int, n)
	copy(cp, order)

	return &Permutation{order: cp}, nil
}

// IdentityPermutation returns the permutation that keeps every index in place.
// Errors: ErrInvalidDimensions when n<=0.
func IdentityPermutation(n int) (*Permutation, error) {
	if n <= 0 {
		return nil, matrixErrorf(opPermutation, ErrInvalidDimensions)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return &Permutation{order: order}, nil
}

// Len returns n.
func (p *Permutation) Len() int { return len(p.order) }

// Index returns the source index placed at position i.
// Errors: ErrOutOfRange when i is outside 0..n-1.
func (p *Permutation) Index(i int) (int, error) {
	if i < 0 || i >= len(p.order) {
		return 0, matrixErrorf(fmt.Sprintf("%s.Index(%d)", opPermutation, i), ErrOutOfRange)
	}

	return p.order[i], nil
}

// Order returns a copy of the index mapping.
func (p *Permutation) Order() []int {
	cp := make([]int, len(p.order))
	copy(cp, p.order)

	return cp
}

// Matrix returns the n×n 0/1 matrix M with M[i][order[i]] = 1.
// Complexity: O(n²) for the zero fill.
func (p *Permutation) Matrix() *Dense {
	n := len(p.order)
	m := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i, src := range p.order {
		m.data[i*n+src] = 1
	}

	return m
}

// Inverse returns the permutation undoing p; its matrix form is p.Matrix()ᵀ.
// Complexity: O(n).
func (p *Permutation) Inverse() *Permutation {
	inv := make([]int, len(p.order))
	for i, src := range p.order {
		inv[src] = i
	}

	return &Permutation{order: inv}
}

// Compose returns r whose matrix form equals p.Matrix()·q.Matrix().
// Since (P·Q)[i][j] = Q[order_p[i]][j], r.order[i] = q.order[p.order[i]].
//
// Errors: ErrNilMatrix when q is nil, ErrInvalidPermutation on length mismatch.
func (p *Permutation) Compose(q *Permutation) (*Permutation, error) {
	if q == nil {
		return nil, matrixErrorf(opCompose, ErrNilMatrix)
	}
	if len(p.order) != len(q.order) {
		return nil, matrixErrorf(opCompose, ErrInvalidPermutation)
	}
	out := make([]int, len(p.order))
	for i, src := range p.order {
		out[i] = q.order[src]
	}

	return &Permutation{order: out}, nil
}

// Sign returns +1 for an even permutation and -1 for an odd one, i.e. the
// determinant of the matrix form. Computed by cycle decomposition in O(n).
func (p *Permutation) Sign() int {
	n := len(p.order)
	visited := make([]bool, n)
	sign := 1
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		// A cycle of length L contributes L-1 transpositions.
		length := 0
		for i := start; !visited[i]; i = p.order[i] {
			visited[i] = true
			length++
		}
		if length%2 == 0 {
			sign = -sign
		}
	}

	return sign
}

// PermuteRows returns M·m: row i of the result is row order[i] of m.
// Errors: ErrNilMatrix, ErrDimensionMismatch when m.Rows() != n.
// Complexity: O(r*c).
func (p *Permutation) PermuteRows(m Matrix) (*Dense, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opPermuteRows, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows != len(p.order) {
		return nil, matrixErrorf(opPermuteRows, ErrDimensionMismatch)
	}
	out := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	for i, from := range p.order {
		copy(out.data[i*cols:(i+1)*cols], src[from*cols:(from+1)*cols])
	}

	return out, nil
}

// PermuteCols returns m·M: column k of m lands at position order[k].
// Errors: ErrNilMatrix, ErrDimensionMismatch when m.Cols() != n.
// Complexity: O(r*c).
func (p *Permutation) PermuteCols(m Matrix) (*Dense, error) {
	src, err := Flatten(m)
	if err != nil {
		return nil, matrixErrorf(opPermuteCols, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if cols != len(p.order) {
		return nil, matrixErrorf(opPermuteCols, ErrDimensionMismatch)
	}
	out := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	var i, k int
	for i = 0; i < rows; i++ {
		for k = 0; k < cols; k++ {
			out.data[i*cols+p.order[k]] = src[i*cols+k]
		}
	}

	return out, nil
}

// String renders the index mapping, e.g. "Permutation[2 0 1]".
func (p *Permutation) String() string {
	return fmt.Sprintf("%s%v", opPermutation, p.order)
}
