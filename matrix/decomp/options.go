// SPDX-License-Identifier: MIT

// Package decomp: functional configuration for the factorization routines.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves setters over the defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package decomp

import (
	"fmt"
	"math"
)

// Precision selects the floating-point type the kernels compute in.
type Precision int

const (
	// Float64 computes in float64 (default).
	Float64 Precision = iota
	// Float32 computes in float32; factors are widened to float64 on return.
	Float32
)

// String returns "float64" or "float32".
func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision maps "float64"/"float32" (also "f64"/"f32") to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float64", "f64":
		return Float64, nil
	case "float32", "f32":
		return Float32, nil
	default:
		return 0, fmt.Errorf("decomp: unknown precision %q", s)
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the symmetry tolerance |A[i,j]-A[j,i]| used by Cholesky
	// and LDLT in hardened mode.
	DefaultEpsilon = 1e-9

	// DefaultPivotTolerance: a pivot p with |p| <= tol is singular. Zero means
	// only an exact zero pivot is rejected.
	DefaultPivotTolerance = 0.0

	// DefaultStrictCompat keeps numeric validation on.
	DefaultStrictCompat = false

	// DefaultPrecision computes in float64.
	DefaultPrecision = Float64
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "decomp: WithEpsilon: eps must be finite, non-negative"
	panicPivotTolInvalid  = "decomp: WithPivotTolerance: tol must be finite, non-negative"
	panicPrecisionInvalid = "decomp: WithPrecision: unknown precision"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option and resolve them
// via gatherOptions.
type Options struct {
	eps       float64   // >= 0; DefaultEpsilon
	pivotTol  float64   // >= 0; DefaultPivotTolerance
	strict    bool      // DefaultStrictCompat
	precision Precision // DefaultPrecision
}

// WithEpsilon sets the symmetry tolerance used by Cholesky and LDLT.
// Panics when eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithPivotTolerance treats every pivot with |p| <= tol as singular.
// Panics when tol is negative, NaN or ±Inf.
//
// Notes:
//   - Has no effect under WithStrictCompat.
func WithPivotTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// WithStrictCompat disables every numeric check: non-finite input is accepted,
// zero pivots divide through to ±Inf/NaN, Cholesky takes the square root of
// negative radicands and LDLT skips the symmetry test.
//
// Use it for differential testing against textbook implementations that do
// not guard their arithmetic.
func WithStrictCompat() Option {
	return func(o *Options) { o.strict = true }
}

// WithHardened re-enables numeric validation (the default).
func WithHardened() Option {
	return func(o *Options) { o.strict = false }
}

// WithPrecision selects the arithmetic type of the kernels.
// Panics on an unknown Precision value.
func WithPrecision(p Precision) Option {
	if p != Float64 && p != Float32 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = p }
}

// NewOptions resolves option setters against documented defaults.
// The resulting Options is read-only for callers (see accessors below).
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon returns the symmetry tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// PivotTolerance returns the singular-pivot threshold.
func (o Options) PivotTolerance() float64 { return o.pivotTol }

// Strict reports whether strict-compatibility mode is on.
func (o Options) Strict() bool { return o.strict }

// Precision returns the arithmetic type of the kernels.
func (o Options) Precision() Precision { return o.precision }

// gatherOptions applies user-provided setters on top of defaults
// (last-writer-wins). nil setters are skipped.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:       DefaultEpsilon,
		pivotTol:  DefaultPivotTolerance,
		strict:    DefaultStrictCompat,
		precision: DefaultPrecision,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
