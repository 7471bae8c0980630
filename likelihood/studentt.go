// SPDX-License-Identifier: MIT
package likelihood

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/statistic"
)

const opStudentT = "StudentT"

// StudentT is the multivariate Student-t likelihood whose covariance equals
// the data covariance Σ, i.e. scale matrix S = Σ·(ν−2)/ν. With p data points:
//
//	ln L = lnΓ((ν+p)/2) − lnΓ(ν/2) − (p/2)·ln((ν−2)/2) − ((ν+p)/2)·ln(1 + χ²/(ν−2))
//
// which is the t log-density plus (p/2)·ln 2π + ½·ln|Σ|, the same constants
// ConstGaussian drops, so ln L → −χ²/2 as ν → ∞. The density is defined for
// ν > 2 only; ν = +Inf evaluates the Gaussian limit exactly.
type StudentT struct {
	family *GaussianFamily
	nu     *parameters.Parameter
	nuSet  *parameters.Set
}

var _ Gaussian = (*StudentT)(nil)

// NewStudentT builds the likelihood. nu is either parameters.Fixed (value
// checked here) or parameters.Sampled (value checked on every Update).
//
// Errors:
//   - ErrNoStatistics, ErrNilStatistic.
//   - ErrInvalidNu for a nil or unnamed nu, or a fixed ν that is NaN or ≤ 0.
func NewStudentT(stats []statistic.Statistic, nu *parameters.Parameter, opts ...Option) (*StudentT, error) {
	f, err := NewGaussianFamily(stats, opts...)
	if err != nil {
		return nil, err
	}
	if nu == nil {
		return nil, fmt.Errorf("%s: nil nu: %w", opStudentT, ErrInvalidNu)
	}
	if !nu.IsSampled() {
		if v := nu.Value(); math.IsNaN(v) || v <= 0 {
			return nil, fmt.Errorf("%s: nu = %g: %w", opStudentT, v, ErrInvalidNu)
		}
	}
	set, err := parameters.NewSet(f.opts.prefix, nu)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opStudentT, ErrInvalidNu, err)
	}

	return &StudentT{family: f, nu: nu, nuSet: set}, nil
}

func (*StudentT) gaussian() {}

// Family returns the shared Gaussian-family state.
func (s *StudentT) Family() *GaussianFamily { return s.family }

// Nu returns the current ν (NaN for a sampled ν before Update).
func (s *StudentT) Nu() float64 { return s.nu.Value() }

// Read implements Likelihood.
func (s *StudentT) Read(src dataset.Source) error { return s.family.Read(src) }

// RequiredParameters is the statistics' aggregate followed by ν's full name
// when ν is sampled.
func (s *StudentT) RequiredParameters() parameters.RequiredParameters {
	return s.family.RequiredParameters(s.nuSet.RequiredParameters())
}

// Update forwards to the statistics, then reads ν.
// Errors: ErrParameter when ν is missing, NaN or ≤ 0.
func (s *StudentT) Update(params parameters.ParamsMap) error {
	if err := s.family.Update(params); err != nil {
		return err
	}
	if err := s.nuSet.Update(params); err != nil {
		return fmt.Errorf("%s: %w", opStudentT, err)
	}
	if v := s.nu.Value(); v <= 0 {
		s.nuSet.Reset()
		return fmt.Errorf("%s: nu = %g: %w", opStudentT, v, ErrParameter)
	}

	return nil
}

// Reset implements updatable.Updatable.
func (s *StudentT) Reset() {
	s.family.Reset()
	s.nuSet.Reset()
}

// DerivedParameters implements Likelihood.
func (s *StudentT) DerivedParameters() (parameters.DerivedCollection, error) {
	return s.family.DerivedParameters()
}

// ComputeChisq implements Gaussian.
func (s *StudentT) ComputeChisq(tools *modeling.Tools) (float64, error) {
	return s.family.ComputeChisq(tools)
}

// ComputeLoglike evaluates the Student-t log-likelihood.
//
// Errors:
//   - everything ComputeChisq returns;
//   - ErrParameter when a sampled ν was not updated;
//   - ErrComputation when ν ≤ 2 or the result is not finite. A fixed ν ≤ 2
//     also matches ErrInvalidNu: no point can ever be evaluated, so
//     IsRejection reports it as a setup failure.
func (s *StudentT) ComputeLoglike(tools *modeling.Tools) (float64, error) {
	nu := s.nu.Value()
	if !s.nu.IsSet() || math.IsNaN(nu) {
		return 0, fmt.Errorf("%s: nu not set: %w", opStudentT, ErrParameter)
	}
	chisq, err := s.family.ComputeChisq(tools)
	if err != nil {
		return 0, err
	}
	p := float64(s.family.Size())
	loglike, err := studentTLoglike(chisq, nu, p)
	if err != nil {
		if !s.nu.IsSampled() && nu <= 2 {
			return 0, fmt.Errorf("%s: fixed %w: %w", opStudentT, ErrInvalidNu, err)
		}
		return 0, fmt.Errorf("%s: %w", opStudentT, err)
	}
	s.family.log.Debug("student-t loglike",
		slog.Float64("nu", nu),
		slog.Float64("chisq", chisq),
		slog.Float64("loglike", loglike),
	)

	return loglike, nil
}

// studentTLoglike is the closed form documented on StudentT.
func studentTLoglike(chisq, nu, p float64) (float64, error) {
	if math.IsInf(nu, 1) {
		return -0.5 * chisq, nil
	}
	if nu <= 2 {
		return 0, fmt.Errorf("nu = %g, density requires nu > 2: %w", nu, ErrComputation)
	}
	half := (nu + p) / 2
	lgA, _ := math.Lgamma(half)
	lgB, _ := math.Lgamma(nu / 2)
	loglike := lgA - lgB - (p/2)*math.Log((nu-2)/2) - half*math.Log1p(chisq/(nu-2))
	if math.IsNaN(loglike) || math.IsInf(loglike, 0) {
		return 0, fmt.Errorf("loglike = %g: %w", loglike, ErrComputation)
	}

	return loglike, nil
}
