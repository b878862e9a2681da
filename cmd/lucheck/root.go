// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/lufact/matrix/decomp"
)

// Default reconstruction tolerances per precision.
const (
	defaultRTol64 = 1e-9
	defaultATol64 = 1e-8
	defaultRTol32 = 1e-4
	defaultATol32 = 1e-4

	defaultPivotTol = 1e-12
)

type rootOptions struct {
	strict    bool
	precision string
	rtol      float64
	atol      float64
	pivotTol  float64
	timing    bool
	cases     []string
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:   "lucheck",
		Short: "Factor a catalogue of demo matrices and verify every reconstruction",
		Long: `Factor a catalogue of demo matrices with every decomposition and check that
the product of the factors reproduces the input within tolerance.

Each check prints PASS, FAIL or REFUSED. REFUSED means the factorization
reported a singular pivot, a non positive definite input or an asymmetric
input. In the default (hardened) mode any FAIL makes the command exit non-zero.
With --strict numeric validation is off and breakdowns show up as FAIL.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prec, err := decomp.ParsePrecision(opts.precision)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rtol") && prec == decomp.Float32 {
				opts.rtol = defaultRTol32
			}
			if !cmd.Flags().Changed("atol") && prec == decomp.Float32 {
				opts.atol = defaultATol32
			}
			for name, v := range map[string]float64{"rtol": opts.rtol, "atol": opts.atol, "pivot-tol": opts.pivotTol} {
				if !(v >= 0) || math.IsInf(v, 0) {
					return fmt.Errorf("--%s must be finite and non-negative, got %v", name, v)
				}
			}
			cases, err := selectCases(opts.cases)
			if err != nil {
				return err
			}

			cfg := checkConfig{
				opts: []decomp.Option{
					decomp.WithPrecision(prec),
					decomp.WithPivotTolerance(opts.pivotTol),
				},
				rtol:   opts.rtol,
				atol:   opts.atol,
				timing: opts.timing,
			}
			if opts.strict {
				cfg.opts = append(cfg.opts, decomp.WithStrictCompat())
			}
			klog.V(1).InfoS("starting checks", "cases", len(cases), "strict", opts.strict,
				"precision", prec, "rtol", cfg.rtol, "atol", cfg.atol, "pivotTol", opts.pivotTol)

			sum, err := runChecks(out, cases, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d passed, %d failed, %d refused\n", sum.passed, sum.failed, sum.refused)
			if sum.failed > 0 && !opts.strict {
				return fmt.Errorf("%d check(s) failed", sum.failed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Disable numeric validation and let zero pivots propagate as Inf/NaN")
	cmd.Flags().StringVar(&opts.precision, "precision", decomp.DefaultPrecision.String(),
		"Arithmetic of the kernels (float64, float32)")
	cmd.Flags().Float64Var(&opts.rtol, "rtol", defaultRTol64,
		"Relative reconstruction tolerance (float32 default 1e-4)")
	cmd.Flags().Float64Var(&opts.atol, "atol", defaultATol64,
		"Absolute reconstruction tolerance (float32 default 1e-4)")
	cmd.Flags().Float64Var(&opts.pivotTol, "pivot-tol", defaultPivotTol,
		"Pivots with magnitude at or below this value are singular (hardened mode only)")
	cmd.Flags().BoolVar(&opts.timing, "timing", false,
		"Print the wall time of each factorization")
	cmd.Flags().StringArrayVar(&opts.cases, "case", nil,
		fmt.Sprintf("Run only the named case; repeatable. One of: %v", caseNames()))

	return cmd
}
