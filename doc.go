// SPDX-License-Identifier: MIT

// Package lvlike is a Gaussian-family likelihood engine for cosmology.
//
// A likelihood compares a measured data vector D, read once from a data set,
// with a theory prediction T computed from a cosmology and nuisance
// parameters, through the data covariance Σ:
//
//	χ² = (D − T)ᵀ Σ⁻¹ (D − T)
//
// Packages:
//
//   - matrix:     dense matrices, validators, Cholesky and Jacobi eigen
//     factorizations, sample covariance.
//   - parameters: sampled/fixed parameters, prefixed names, required and
//     derived parameter sets.
//   - updatable:  the update/required/reset contract and ordered collections.
//   - modeling:   the opaque cosmology, modeling tools and a flat ΛCDM model.
//   - dataset:    data sources, the in-memory container and its YAML form.
//   - statistic:  data vector blocks and their predictions (supernova,
//     tabulated, callback).
//   - likelihood: GaussianFamily and its variants ConstGaussian and StudentT.
//   - connector:  the sampler-facing evaluation cycle with metrics and spans.
//   - config:     YAML run configuration and logger setup.
//
// The lvlike command (cmd/lvlike) evaluates a configured likelihood from
// the command line.
package lvlike
