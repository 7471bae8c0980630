// SPDX-License-Identifier: MIT
package likelihood

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/lvlike/matrix"
)

// Method selects how the covariance is factorized at Read time.
type Method int

const (
	// Cholesky factorizes Σ = L·Lᵀ.
	Cholesky Method = iota
	// Eigen factorizes Σ = Q·Λ·Qᵀ with cyclic Jacobi rotations.
	Eigen
)

// String returns "cholesky" or "eigen".
func (m Method) String() string {
	switch m {
	case Cholesky:
		return "cholesky"
	case Eigen:
		return "eigen"
	default:
		return "unknown"
	}
}

// ---------- Defaults ----------

const (
	// DefaultFactorization is the factorization used when none is configured.
	DefaultFactorization = Cholesky

	// DefaultSymmetryTolerance is the relative symmetry tolerance applied to
	// the covariance block.
	DefaultSymmetryTolerance = matrix.DefaultEpsilon
)

const (
	panicUnknownMethod = "likelihood: WithFactorization: unknown method"
	panicSymTolInvalid = "likelihood: WithSymmetryTolerance: tolerance must be finite, non-negative"
)

// Option configures a Gaussian-family likelihood.
type Option func(*options)

type options struct {
	method Method
	symTol float64
	logger *slog.Logger
	prefix string
}

// WithFactorization selects the covariance factorization.
// Panics on an unknown Method.
func WithFactorization(m Method) Option {
	if m != Cholesky && m != Eigen {
		panic(panicUnknownMethod)
	}

	return func(o *options) { o.method = m }
}

// WithSymmetryTolerance sets the relative tolerance for the covariance
// symmetry check. Panics when rtol is NaN, ±Inf or negative.
func WithSymmetryTolerance(rtol float64) Option {
	if math.IsNaN(rtol) || math.IsInf(rtol, 0) || rtol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *options) { o.symTol = rtol }
}

// WithLogger routes diagnostics to l. A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithParameterPrefix prefixes the likelihood's own sampled parameters
// (for StudentT, a sampled ν named "nu" is read as "prefix_nu").
func WithParameterPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

func gatherOptions(user ...Option) options {
	o := options{
		method: DefaultFactorization,
		symTol: DefaultSymmetryTolerance,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}
