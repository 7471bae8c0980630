// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Estimate covariance matrices from simulated realizations of a data vector.
//   - Keep the tight loops on flat row-major buffers.
//
// Exposed API:
//   - CenterColumns(X)    -> (Xc, means)  // subtract per-column mean
//   - SampleCovariance(X) -> (Cov, means) // unbiased sample covariance of columns: (Xcᵀ Xc)/(r-1)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - The covariance accumulates only the upper triangle and mirrors it, so the
//     result is exactly symmetric.

package matrix

import "fmt"

const (
	opCenterColumns    = "CenterColumns"
	opSampleCovariance = "SampleCovariance"
)

// CenterColumns subtracts the per-column mean from every element.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix; wrapped At errors for non-Dense inputs.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	src, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := src.r, src.c
	means := make([]float64, c)
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += src.data[base+j]
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}

	out := src.Clone().(*Dense)
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			out.data[base+j] -= means[j]
		}
	}

	return out, means, nil
}

// SampleCovariance estimates the c×c covariance of the columns of X, where each
// of the r rows is one independent realization of a c-dimensional vector.
//
// Implementation:
//   - Stage 1: require r ≥ 2 (ErrTooFewSamples) and finite entries.
//   - Stage 2: center columns, then Cov[a,b] = Σ_i Xc[i,a]·Xc[i,b] / (r-1).
//
// Notes:
//   - The estimate is unbiased for the covariance itself but its inverse is
//     biased; callers that need a precision matrix apply the Hartlap factor
//     (r-c-2)/(r-1) themselves.
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
func SampleCovariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opSampleCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opSampleCovariance, fmt.Errorf("%d realizations: %w", r, ErrTooFewSamples))
	}
	if err := ValidateFinite(X); err != nil {
		return nil, nil, matrixErrorf(opSampleCovariance, err)
	}
	xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opSampleCovariance, err)
	}
	c := xc.c
	cov, err := NewDense(c, c)
	if err != nil {
		return nil, nil, matrixErrorf(opSampleCovariance, err)
	}

	norm := 1.0 / float64(r-1)
	var i, a, b, base int
	var acc float64
	for a = 0; a < c; a++ {
		for b = a; b < c; b++ {
			acc = ZeroSum
			for i = 0; i < r; i++ {
				base = i * c
				acc += xc.data[base+a] * xc.data[base+b]
			}
			cov.data[a*c+b] = acc * norm
			cov.data[b*c+a] = acc * norm
		}
	}

	return cov, means, nil
}
