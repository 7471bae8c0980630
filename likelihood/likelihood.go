// SPDX-License-Identifier: MIT

// Package likelihood turns statistics, a data source and a prepared cosmology
// into a log-likelihood for samplers.
//
// The Gaussian-family variants are ConstGaussian (−χ²/2) and StudentT
// (multivariate t with ν degrees of freedom). Both delegate data handling,
// parameter aggregation and χ² to GaussianFamily; the set of variants is
// closed by the unexported method on Gaussian.
package likelihood

import (
	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/updatable"
)

// Likelihood is the sampler-facing contract.
type Likelihood interface {
	updatable.Updatable

	// Read populates the likelihood from src. It succeeds at most once;
	// a second call returns ErrAlreadyRead and leaves the state untouched.
	Read(src dataset.Source) error

	// ComputeLoglike returns a finite log-likelihood or an error; it never
	// encodes failure as a number.
	ComputeLoglike(tools *modeling.Tools) (float64, error)

	// DerivedParameters reports quantities computed by the last evaluation.
	DerivedParameters() (parameters.DerivedCollection, error)
}

// Gaussian is a Likelihood built on GaussianFamily. Only this package can
// implement it.
type Gaussian interface {
	Likelihood

	// ComputeChisq exposes the shared χ² kernel.
	ComputeChisq(tools *modeling.Tools) (float64, error)

	// Family gives read access to data, covariance and diagnostics.
	Family() *GaussianFamily

	gaussian()
}
