// SPDX-License-Identifier: MIT
package dataset

import (
	"fmt"

	"github.com/katalvlaran/lvlike/matrix"
)

// HartlapFactor returns (n−p−2)/(n−1), the factor that debiases the inverse
// of a covariance estimated from n realizations of a p-dimensional vector.
// Errors: ErrTooFewRealizations when n ≤ p+2.
func HartlapFactor(n, p int) (float64, error) {
	if n <= p+2 {
		return 0, fmt.Errorf("n=%d p=%d: %w", n, p, ErrTooFewRealizations)
	}

	return float64(n-p-2) / float64(n-1), nil
}

// EstimateCovariance computes the sample covariance of realizations (one row
// per simulated data vector). With hartlap set, the estimate is divided by
// the Hartlap factor so that its inverse is an unbiased precision matrix.
func EstimateCovariance(realizations matrix.Matrix, hartlap bool) (*matrix.Dense, error) {
	cov, _, err := matrix.SampleCovariance(realizations)
	if err != nil {
		return nil, fmt.Errorf("EstimateCovariance: %w", err)
	}
	if !hartlap {
		return cov, nil
	}
	h, err := HartlapFactor(realizations.Rows(), realizations.Cols())
	if err != nil {
		return nil, fmt.Errorf("EstimateCovariance: %w", err)
	}
	scaled, err := matrix.Scale(cov, 1/h)
	if err != nil {
		return nil, fmt.Errorf("EstimateCovariance: %w", err)
	}

	return scaled.(*matrix.Dense), nil
}

// SetCovarianceFromRealizations estimates the covariance from simulations
// and attaches it. Columns of realizations follow the data point order.
func (c *Container) SetCovarianceFromRealizations(realizations matrix.Matrix, hartlap bool) error {
	if err := matrix.ValidateNotNil(realizations); err != nil {
		return fmt.Errorf("SetCovarianceFromRealizations: %w", err)
	}
	if realizations.Cols() != len(c.points) {
		return fmt.Errorf("SetCovarianceFromRealizations: %d columns for %d points: %w",
			realizations.Cols(), len(c.points), ErrMalformed)
	}
	cov, err := EstimateCovariance(realizations, hartlap)
	if err != nil {
		return err
	}

	return c.SetCovariance(cov)
}
