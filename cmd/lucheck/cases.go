// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/lufact/matrix"
)

// demoCase is one named input of the check catalogue.
type demoCase struct {
	name  string // flag value for --case
	title string // report heading
	rows  [][]float64
}

// catalogue returns the built-in inputs in report order.
func catalogue() []demoCase {
	return []demoCase{
		{"vandermonde-low-rank", "Low rank Vandermonde matrix", [][]float64{
			{1, 1, 1},
			{1, 2, 4},
			{1, 3, 9},
		}},
		{"single-element", "Single element matrix", [][]float64{{-1}}},
		{"non-square-wide", "Non-square matrix (2x3)", [][]float64{
			{3, 2, 4},
			{2, 4, 3},
		}},
		{"non-square-tall", "Non-square matrix (3x2)", [][]float64{
			{2, 4},
			{3, 3},
			{4, 2},
		}},
		{"symmetric", "Symmetric matrix", [][]float64{
			{1, -2, 0},
			{-2, 1, -2},
			{0, -2, 1},
		}},
		{"positive-definite", "Positive-definite matrix", [][]float64{
			{4, 12, -16},
			{12, 37, -43},
			{-16, -43, 98},
		}},
		{"bad-naive", "Bad condition of naive LU decomposition", [][]float64{
			{1, 2, 3},
			{2, 4, 7},
			{3, 3, 3},
		}},
		{"bad-partial", "Bad condition of LUPP decomposition", [][]float64{
			{1, 9, 3},
			{2, 2, 7},
			{3, 3, 3},
		}},
		{"vandermonde-high-rank", "High rank Vandermonde matrix", vandermonde(16)},
		{"singular", "Singular matrix", [][]float64{
			{1, 1, 1},
			{2, 2, 2},
			{3, 3, 3},
		}},
	}
}

// vandermonde returns A[i][j] = (i+1)^j.
func vandermonde(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		v := 1.0
		for j := range rows[i] {
			rows[i][j] = v
			v *= float64(i + 1)
		}
	}

	return rows
}

// selectCases filters the catalogue by name, keeping catalogue order.
// An empty filter selects everything.
func selectCases(names []string) ([]demoCase, error) {
	all := catalogue()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []demoCase
	for _, c := range all {
		if want[c.name] {
			out = append(out, c)
			delete(want, c.name)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		slices.Sort(unknown)
		return nil, fmt.Errorf("unknown case(s) %s; known: %s", strings.Join(unknown, ", "), strings.Join(caseNames(), ", "))
	}

	return out, nil
}

func caseNames() []string {
	cs := catalogue()
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.name
	}

	return names
}

func (c demoCase) matrix() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(c.rows)
}
