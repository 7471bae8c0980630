// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the factorization kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts a kernel and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Tolerances are RELATIVE. The symmetry check scales with the largest
//     absolute entry; Jacobi convergence and definiteness scale with the
//     diagonal entries involved, so blocks of very different magnitude in one
//     covariance are each handled at full relative precision.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative symmetry tolerance:
	// |A[i,j]-A[j,i]| ≤ eps·max|A| is accepted.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTolerance is the Jacobi threshold: a pair is left alone once
	// |A[p,q]| ≤ tol·√|A[p,p]·A[q,q]|.
	DefaultEigenTolerance = 1e-14

	// DefaultMaxSweeps caps the number of cyclic Jacobi sweeps.
	DefaultMaxSweeps = 100

	// DefaultPivotFloor is the floor, relative to the matching diagonal scale,
	// below which a Cholesky pivot or an eigenvalue is treated as non-positive.
	DefaultPivotFloor = 1e-15
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid    = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicEigenTolInvalid   = "matrix: WithEigenTolerance: tol must be finite, positive"
	panicMaxSweepsInvalid  = "matrix: WithMaxSweeps: sweeps must be positive"
	panicPivotFloorInvalid = "matrix: WithPivotFloor: floor must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps        float64 // relative symmetry tolerance
	eigenTol   float64 // per-pair Jacobi convergence threshold
	maxSweeps  int     // Jacobi sweep budget
	pivotFloor float64 // definiteness floor relative to the diagonal
}

// WithEpsilon sets the relative symmetry tolerance used before factorization.
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithEigenTolerance sets the per-pair off-diagonal threshold for Jacobi convergence.
// Panics when tol is not a finite positive number.
func WithEigenTolerance(tol float64) Option {
	if isNonFinite(tol) || tol <= 0 {
		panic(panicEigenTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxSweeps caps the number of cyclic Jacobi sweeps.
// Panics when sweeps ≤ 0.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithPivotFloor sets the relative floor used to reject non-positive pivots
// and eigenvalues. Zero means "strictly positive".
func WithPivotFloor(floor float64) Option {
	if isNonFinite(floor) || floor < 0 {
		panic(panicPivotFloorInvalid)
	}

	return func(o *Options) { o.pivotFloor = floor }
}

// NewOptions resolves option setters against documented defaults.
// Last-writer-wins semantics; pure function.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the effective relative symmetry tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		eps:        DefaultEpsilon,
		eigenTol:   DefaultEigenTolerance,
		maxSweeps:  DefaultMaxSweeps,
		pivotFloor: DefaultPivotFloor,
	}
}

// gatherOptions applies user-provided setters on top of defaults.
// Nil setters are skipped so callers can pass optional values through.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
