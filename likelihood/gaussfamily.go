// SPDX-License-Identifier: MIT

// Package likelihood - GaussianFamily, the shared kernel of every Gaussian-type
// likelihood.
//
// Purpose:
//   - Own the ordered statistics collection and the required-parameter aggregation.
//   - Read the data vector once, cut the covariance block in statistic order,
//     and factorize it once.
//   - Provide ComputeChisq, the single χ² implementation every variant reuses.
//
// Concurrency:
//   - No locks. After Read the covariance and its factorization are immutable;
//     callers sequence Update → ComputeChisq → Reset.
package likelihood

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/matrix"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/statistic"
	"github.com/katalvlaran/lvlike/updatable"
)

// Operation tags for error wrapping.
const (
	opNew          = "NewGaussianFamily"
	opRead         = "Read"
	opComputeChisq = "ComputeChisq"
)

// GaussianFamily holds the statistics, data vector, covariance and its
// factorization. Variants embed it by composition and never replace its
// aggregation or χ² logic.
type GaussianFamily struct {
	stats *updatable.Collection[statistic.Statistic]
	opts  options
	log   *slog.Logger

	// fixed at Read
	read    bool
	data    []float64
	indices []int
	offsets []int // offsets[i] is the first element of statistic i; len = stats+1
	cov     *matrix.Dense
	fact    matrix.Factorization

	// last evaluation, for diagnostics
	theory []float64
	chisq  float64
}

// NewGaussianFamily validates and stores stats in order.
//
// Errors:
//   - ErrNoStatistics for an empty list; ErrNilStatistic for a nil element.
func NewGaussianFamily(stats []statistic.Statistic, opts ...Option) (*GaussianFamily, error) {
	if len(stats) == 0 {
		return nil, familyErrorf(opNew, ErrNoStatistics)
	}
	for i, s := range stats {
		if updatable.IsNil(s) {
			return nil, fmt.Errorf("%s: index %d: %w", opNew, i, ErrNilStatistic)
		}
	}
	coll, err := updatable.NewCollection(stats...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opNew, ErrNilStatistic, err)
	}
	o := gatherOptions(opts...)

	return &GaussianFamily{stats: coll, opts: o, log: o.logger}, nil
}

// familyErrorf wraps err with an operation tag, preserving it via %w.
func familyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// Statistics returns the statistics in evaluation order.
func (g *GaussianFamily) Statistics() []statistic.Statistic { return g.stats.Items() }

// Method returns the configured factorization.
func (g *GaussianFamily) Method() Method { return g.opts.method }

// IsRead reports whether Read completed.
func (g *GaussianFamily) IsRead() bool { return g.read }

// Read loads every statistic from src, concatenates their data vectors, cuts
// the covariance block in the same order and factorizes it.
//
// Implementation:
//   - Stage 1: refuse a second successful Read (ErrAlreadyRead, nothing changes).
//   - Stage 2: read statistics in order; a statistic already read by a previous
//     failed attempt is reused, so a failed Read can be retried.
//   - Stage 3: Induced(idx, idx) on the source covariance, then factorize with
//     the configured method and relative symmetry tolerance.
//   - Stage 4: commit all fields at once.
//
// Errors:
//   - ErrAlreadyRead; ErrData (nil source, missing tracer, bad covariance,
//     non positive-definite block); ErrDimension (a statistic whose indices do
//     not match its data length).
func (g *GaussianFamily) Read(src dataset.Source) error {
	if g.read {
		return familyErrorf(opRead, ErrAlreadyRead)
	}
	if src == nil {
		return fmt.Errorf("%s: nil source: %w", opRead, ErrData)
	}

	var (
		data    []float64
		indices []int
		offsets = []int{0}
	)
	for _, s := range g.stats.Items() {
		if _, err := s.DataVector(); err != nil {
			if err = s.Read(src); err != nil {
				return fmt.Errorf("%s: %s: %w: %w", opRead, s.Name(), ErrData, err)
			}
		}
		dv, err := s.DataVector()
		if err != nil {
			return fmt.Errorf("%s: %s: %w: %w", opRead, s.Name(), ErrData, err)
		}
		idx, err := s.Indices()
		if err != nil {
			return fmt.Errorf("%s: %s: %w: %w", opRead, s.Name(), ErrData, err)
		}
		if len(idx) != len(dv) {
			return fmt.Errorf("%s: %s: %d indices for %d data points: %w", opRead, s.Name(), len(idx), len(dv), ErrDimension)
		}
		data = append(data, dv...)
		indices = append(indices, idx...)
		offsets = append(offsets, len(data))
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: empty data vector: %w", opRead, ErrData)
	}

	full, err := src.Covariance()
	if err != nil {
		return fmt.Errorf("%s: covariance: %w: %w", opRead, ErrData, err)
	}
	fullDense, err := asDense(full)
	if err != nil {
		return fmt.Errorf("%s: covariance: %w: %w", opRead, ErrData, err)
	}
	cov, err := fullDense.Induced(indices, indices)
	if err != nil {
		return fmt.Errorf("%s: covariance block: %w: %w", opRead, ErrData, err)
	}
	fact, err := g.factorize(cov)
	if err != nil {
		return fmt.Errorf("%s: covariance block: %w: %w", opRead, ErrData, err)
	}

	g.data, g.indices, g.offsets = data, indices, offsets
	g.cov, g.fact = cov, fact
	g.read = true
	g.log.Info("covariance factorized",
		slog.Int("size", len(data)),
		slog.Int("statistics", g.stats.Len()),
		slog.String("method", g.opts.method.String()),
		slog.Float64("log_det", fact.LogDet()),
	)

	return nil
}

// asDense returns m as *matrix.Dense, copying through At when needed.
func asDense(m matrix.Matrix) (*matrix.Dense, error) {
	if m == nil {
		return nil, matrix.ErrNilMatrix
	}
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
	}

	return matrix.NewDenseFrom(rows, cols, data)
}

func (g *GaussianFamily) factorize(cov *matrix.Dense) (matrix.Factorization, error) {
	mopts := []matrix.Option{matrix.WithEpsilon(g.opts.symTol)}
	switch g.opts.method {
	case Eigen:
		return matrix.NewEigenSym(cov, mopts...)
	default:
		return matrix.NewCholesky(cov, mopts...)
	}
}

// RequiredParameters returns the statistics' aggregated parameters followed
// by extra, the variant's own additions.
func (g *GaussianFamily) RequiredParameters(extra parameters.RequiredParameters) parameters.RequiredParameters {
	return g.stats.RequiredParameters().Union(extra)
}

// Update forwards params to the statistics in order.
func (g *GaussianFamily) Update(params parameters.ParamsMap) error {
	return g.stats.Update(params)
}

// Reset forwards to the statistics and forgets the last evaluation.
func (g *GaussianFamily) Reset() {
	g.stats.Reset()
	g.theory = nil
	g.chisq = 0
}

// DerivedParameters collects the statistics' derived parameters.
func (g *GaussianFamily) DerivedParameters() (parameters.DerivedCollection, error) {
	return g.stats.DerivedParameters()
}

// ComputeChisq returns χ² = Rᵀ·Σ⁻¹·R with R = D − T.
//
// Implementation:
//   - Stage 1: predict each statistic in order; each prediction must have the
//     statistic's data length.
//   - Stage 2: the concatenated length must equal the covariance size.
//   - Stage 3: R = D − T (gonum floats), reject non-finite residuals.
//   - Stage 4: χ² through the factorization (triangular solve or projected
//     eigenbasis); Σ⁻¹ is never formed.
//
// Errors:
//   - ErrNotRead; ErrDimension; ErrComputation (prediction failure, non-finite
//     residual or χ²); ErrParameter when a prediction reports one.
//
// Complexity:
//   - O(n²) after the O(n³) factorization done once at Read.
func (g *GaussianFamily) ComputeChisq(tools *modeling.Tools) (float64, error) {
	if !g.read {
		return 0, familyErrorf(opComputeChisq, ErrNotRead)
	}

	n := g.fact.Size()
	theory := make([]float64, 0, n)
	for i, s := range g.stats.Items() {
		th, err := s.ComputeTheoryVector(tools)
		if err != nil {
			if errors.Is(err, ErrParameter) {
				return 0, fmt.Errorf("%s: %s: %w", opComputeChisq, s.Name(), err)
			}
			return 0, fmt.Errorf("%s: %s: %w: %w", opComputeChisq, s.Name(), ErrComputation, err)
		}
		if want := g.offsets[i+1] - g.offsets[i]; len(th) != want {
			return 0, fmt.Errorf("%s: %s: theory length %d, data length %d: %w",
				opComputeChisq, s.Name(), len(th), want, ErrDimension)
		}
		theory = append(theory, th...)
	}
	if len(theory) != n || len(g.data) != n {
		return 0, fmt.Errorf("%s: vector length %d, covariance %dx%d: %w", opComputeChisq, len(theory), n, n, ErrDimension)
	}

	residual := make([]float64, n)
	floats.SubTo(residual, g.data, theory)
	if i, ok := firstNonFinite(residual); ok {
		return 0, fmt.Errorf("%s: residual[%d] = %g: %w", opComputeChisq, i, residual[i], ErrComputation)
	}

	chisq, err := g.fact.Mahalanobis(residual)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", opComputeChisq, ErrDimension, err)
	}
	if math.IsNaN(chisq) || math.IsInf(chisq, 0) {
		return 0, fmt.Errorf("%s: chisq = %g: %w", opComputeChisq, chisq, ErrComputation)
	}

	g.theory, g.chisq = theory, chisq
	g.log.Debug("chisq computed", slog.Float64("chisq", chisq), slog.Int("size", n))

	return chisq, nil
}

func firstNonFinite(v []float64) (int, bool) {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i, true
		}
	}

	return 0, false
}

// ---------- diagnostics ----------

// Size returns the data vector length, 0 before Read.
func (g *GaussianFamily) Size() int { return len(g.data) }

// DataVector returns a copy of the concatenated measurements.
func (g *GaussianFamily) DataVector() ([]float64, error) {
	if !g.read {
		return nil, ErrNotRead
	}

	return append([]float64(nil), g.data...), nil
}

// TheoryVector returns a copy of the last concatenated prediction, or nil
// when nothing was evaluated since Read or the last Reset.
func (g *GaussianFamily) TheoryVector() []float64 {
	if g.theory == nil {
		return nil
	}

	return append([]float64(nil), g.theory...)
}

// LastChisq returns the χ² of the last successful evaluation.
func (g *GaussianFamily) LastChisq() (float64, bool) {
	return g.chisq, g.theory != nil
}

// Indices returns the source-covariance rows used, in data vector order.
func (g *GaussianFamily) Indices() ([]int, error) {
	if !g.read {
		return nil, ErrNotRead
	}

	return append([]int(nil), g.indices...), nil
}

// Covariance returns a copy of the covariance block.
func (g *GaussianFamily) Covariance() (*matrix.Dense, error) {
	if !g.read {
		return nil, ErrNotRead
	}

	return g.cov.Clone().(*matrix.Dense), nil
}

// InverseCovariance materializes Σ⁻¹ through the factorization. It is meant
// for Fisher-matrix style consumers; evaluations never call it.
func (g *GaussianFamily) InverseCovariance() (*matrix.Dense, error) {
	if !g.read {
		return nil, ErrNotRead
	}

	return g.fact.Inverse()
}

// LogDet returns ln|Σ|.
func (g *GaussianFamily) LogDet() (float64, error) {
	if !g.read {
		return 0, ErrNotRead
	}

	return g.fact.LogDet(), nil
}
