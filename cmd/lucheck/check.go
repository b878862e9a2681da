// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/lufact/matrix"
	"github.com/katalvlaran/lufact/matrix/decomp"
)

// verdict is the outcome of one factorization check.
type verdict int

const (
	pass    verdict = iota // factors reconstruct the input
	fail                   // factors returned, reconstruction off
	refused                // the factorization reported a numeric error
)

func (v verdict) String() string {
	switch v {
	case pass:
		return "PASS"
	case fail:
		return "FAIL"
	default:
		return "REFUSED"
	}
}

// checkConfig carries the resolved command-line settings into the runner.
type checkConfig struct {
	opts   []decomp.Option
	rtol   float64
	atol   float64
	timing bool
}

// summary counts verdicts over a run.
type summary struct {
	passed, failed, refused int
}

// factorization computes one decomposition and returns the reconstructed product.
type factorization struct {
	name       string
	squareOnly bool
	run        func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error)
}

func factorizations() []factorization {
	return []factorization{
		{name: "LU", run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			L, U, err := decomp.LU(a, opts...)
			if err != nil {
				return nil, err
			}
			return product(L, U)
		}},
		{name: "Doolittle", run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			L, U, err := decomp.Doolittle(a, opts...)
			if err != nil {
				return nil, err
			}
			return product(L, U)
		}},
		{name: "Crout", run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			L, U, err := decomp.Crout(a, opts...)
			if err != nil {
				return nil, err
			}
			return product(L, U)
		}},
		{name: "LUPP", run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			P, L, U, err := decomp.LUPartialPivot(a, opts...)
			if err != nil {
				return nil, err
			}
			return product(P.Matrix(), L, U)
		}},
		{name: "LUCP", run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			P, L, U, Q, err := decomp.LUCompletePivot(a, opts...)
			if err != nil {
				return nil, err
			}
			return product(P.Matrix(), L, U, Q.Matrix())
		}},
		{name: "Cholesky", squareOnly: true, run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			L, err := decomp.Cholesky(a, opts...)
			if err != nil {
				return nil, err
			}
			Lt, err := matrix.Transpose(L)
			if err != nil {
				return nil, err
			}
			return product(L, Lt)
		}},
		{name: "LDLT", squareOnly: true, run: func(a matrix.Matrix, opts ...decomp.Option) (*matrix.Dense, error) {
			L, D, err := decomp.LDLT(a, opts...)
			if err != nil {
				return nil, err
			}
			Lt, err := matrix.Transpose(L)
			if err != nil {
				return nil, err
			}
			return product(L, D, Lt)
		}},
	}
}

// product multiplies left to right.
func product(first *matrix.Dense, rest ...matrix.Matrix) (*matrix.Dense, error) {
	acc := first
	var err error
	for _, m := range rest {
		if acc, err = matrix.Mul(acc, m); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// numericErr reports whether err is a numeric breakdown the library detected,
// as opposed to a usage error.
func numericErr(err error) bool {
	return errors.Is(err, decomp.ErrSingularPivot) ||
		errors.Is(err, decomp.ErrNotPositiveDefinite) ||
		errors.Is(err, decomp.ErrNotSymmetric)
}

// runChecks factors every case with every applicable decomposition, writes a
// report to out and returns the verdict counts.
func runChecks(out io.Writer, cases []demoCase, cfg checkConfig) (summary, error) {
	var sum summary
	for _, c := range cases {
		a, err := c.matrix()
		if err != nil {
			return sum, fmt.Errorf("case %s: %w", c.name, err)
		}
		fmt.Fprintln(out, c.title)

		for _, f := range factorizations() {
			if f.squareOnly && a.Rows() != a.Cols() {
				continue
			}
			v, elapsed, err := check(a, f, cfg)
			if err != nil {
				return sum, fmt.Errorf("case %s: %s: %w", c.name, f.name, err)
			}
			switch v {
			case pass:
				sum.passed++
			case fail:
				sum.failed++
			default:
				sum.refused++
			}

			line := fmt.Sprintf("%s: %s decomposition", v, f.name)
			if cfg.timing {
				line += fmt.Sprintf(" (%s)", elapsed)
			}
			fmt.Fprintln(out, line)
		}
		if a.Rows() == a.Cols() {
			logDeterminant(c.name, a, cfg)
		}
		fmt.Fprintln(out)
	}

	return sum, nil
}

// check runs one factorization. Numeric errors become the refused verdict;
// anything else is returned.
func check(a *matrix.Dense, f factorization, cfg checkConfig) (verdict, time.Duration, error) {
	start := time.Now()
	rebuilt, err := f.run(a, cfg.opts...)
	elapsed := time.Since(start)

	logger := klog.Background().WithValues("decomposition", f.name, "rows", a.Rows(), "cols", a.Cols())
	if err != nil {
		if !numericErr(err) {
			return 0, elapsed, err
		}
		logger.V(1).Info("factorization refused", "err", err.Error())
		return refused, elapsed, nil
	}

	ok, err := matrix.AllClose(a, rebuilt, cfg.rtol, cfg.atol)
	if err != nil {
		return 0, elapsed, err
	}
	residual, err := reconstructionResidual(a, rebuilt)
	if err != nil {
		return 0, elapsed, err
	}
	if !ok {
		klog.ErrorS(nil, "reconstruction mismatch", "decomposition", f.name,
			"residual", residual, "rtol", cfg.rtol, "atol", cfg.atol)
		logger.V(2).Info("factors", "want", a.String(), "got", rebuilt.String())
		return fail, elapsed, nil
	}
	logger.V(2).Info("reconstruction ok", "residual", residual, "elapsed", elapsed)

	return pass, elapsed, nil
}

// reconstructionResidual returns max |A - product|; NaN when the factors broke down.
func reconstructionResidual(a, rebuilt *matrix.Dense) (float64, error) {
	diff, err := matrix.Sub(a, rebuilt)
	if err != nil {
		return 0, err
	}

	return matrix.NormMax(diff)
}

// logDeterminant logs det(A) from the step-wise pivoted factorization.
func logDeterminant(name string, a *matrix.Dense, cfg checkConfig) {
	det, err := decomp.Det(a, cfg.opts...)
	if err != nil {
		klog.ErrorS(err, "determinant", "case", name)
		return
	}
	klog.V(1).InfoS("determinant", "case", name, "det", det)
}
