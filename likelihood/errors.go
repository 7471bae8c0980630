// SPDX-License-Identifier: MIT
// Package likelihood: sentinel error set.
//
// The four evaluation kinds are ErrData, ErrParameter, ErrDimension and
// ErrComputation. They are always returned, never folded into a sentinel
// log-likelihood value. IsRejection separates "reject this sample point"
// from "the setup is broken".

package likelihood

import (
	"errors"

	"github.com/katalvlaran/lvlike/parameters"
)

var (
	// ErrData reports malformed or missing observational data at Read time,
	// including a covariance block that is not symmetric positive-definite.
	ErrData = errors.New("likelihood: malformed or missing data")

	// ErrParameter is the sampler-side parameter error shared with package
	// parameters: a required parameter is absent or outside its domain.
	ErrParameter = parameters.ErrParameter

	// ErrDimension reports a vector/covariance size mismatch. It is a wiring
	// bug and never recoverable at runtime.
	ErrDimension = errors.New("likelihood: dimension mismatch")

	// ErrComputation reports a non-finite or undefined numeric result.
	ErrComputation = errors.New("likelihood: invalid numeric result")

	// ErrNoStatistics is returned when a likelihood is built without statistics.
	ErrNoStatistics = errors.New("likelihood: no statistics")

	// ErrNilStatistic is returned when a statistics list contains nil.
	ErrNilStatistic = errors.New("likelihood: nil statistic")

	// ErrInvalidNu is returned when a Student-t likelihood is built with a nil,
	// unnamed, NaN or non-positive fixed degrees-of-freedom parameter, and
	// by evaluations of a fixed ν outside the density domain (ν ≤ 2).
	ErrInvalidNu = errors.New("likelihood: invalid degrees of freedom")

	// ErrNotRead is returned by evaluations and diagnostics before Read.
	ErrNotRead = errors.New("likelihood: data not read")

	// ErrAlreadyRead is returned by a second Read. The state from the first
	// Read is kept unchanged.
	ErrAlreadyRead = errors.New("likelihood: data already read")
)

// IsRejection reports whether err means the current sample point should be
// rejected (bad parameter values, non-finite result) rather than aborting
// the run (missing data, dimension mismatch, a fixed ν no point can satisfy).
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrData) || errors.Is(err, ErrDimension) || errors.Is(err, ErrInvalidNu) {
		return false
	}

	return errors.Is(err, ErrParameter) || errors.Is(err, ErrComputation)
}
