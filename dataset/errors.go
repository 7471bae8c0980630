// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set ("dataset: ..." prefix, errors.Is matching).

package dataset

import "errors"

var (
	// ErrMissingTracer is returned by Select when no data point carries the
	// requested data type and tracer tuple. The wrapped message names both.
	ErrMissingTracer = errors.New("dataset: no data for tracer")

	// ErrMalformed reports a structurally invalid data point, file or covariance.
	ErrMalformed = errors.New("dataset: malformed data")

	// ErrNoCovariance is returned by Covariance before one was attached.
	ErrNoCovariance = errors.New("dataset: no covariance")

	// ErrTooFewRealizations is returned when the Hartlap factor is undefined
	// (n ≤ p+2 realizations for p data points).
	ErrTooFewRealizations = errors.New("dataset: too few realizations for an invertible covariance estimate")
)
