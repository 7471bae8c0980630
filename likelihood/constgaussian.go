// SPDX-License-Identifier: MIT
package likelihood

import (
	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/statistic"
)

// ConstGaussian is the Gaussian likelihood with a fixed covariance:
// ln L = −χ²/2, dropping the constant −(p/2)·ln 2π − ½·ln|Σ|.
type ConstGaussian struct {
	family *GaussianFamily
}

var _ Gaussian = (*ConstGaussian)(nil)

// NewConstGaussian builds the likelihood over stats, in order.
// Errors: ErrNoStatistics, ErrNilStatistic.
func NewConstGaussian(stats []statistic.Statistic, opts ...Option) (*ConstGaussian, error) {
	f, err := NewGaussianFamily(stats, opts...)
	if err != nil {
		return nil, err
	}

	return &ConstGaussian{family: f}, nil
}

func (*ConstGaussian) gaussian() {}

// Family returns the shared Gaussian-family state.
func (c *ConstGaussian) Family() *GaussianFamily { return c.family }

// Read implements Likelihood.
func (c *ConstGaussian) Read(src dataset.Source) error { return c.family.Read(src) }

// RequiredParameters is the statistics' aggregate; ConstGaussian adds none.
func (c *ConstGaussian) RequiredParameters() parameters.RequiredParameters {
	return c.family.RequiredParameters(parameters.RequiredParameters{})
}

// Update implements updatable.Updatable.
func (c *ConstGaussian) Update(params parameters.ParamsMap) error { return c.family.Update(params) }

// Reset implements updatable.Updatable.
func (c *ConstGaussian) Reset() { c.family.Reset() }

// DerivedParameters implements Likelihood.
func (c *ConstGaussian) DerivedParameters() (parameters.DerivedCollection, error) {
	return c.family.DerivedParameters()
}

// ComputeChisq implements Gaussian.
func (c *ConstGaussian) ComputeChisq(tools *modeling.Tools) (float64, error) {
	return c.family.ComputeChisq(tools)
}

// ComputeLoglike returns −χ²/2.
func (c *ConstGaussian) ComputeLoglike(tools *modeling.Tools) (float64, error) {
	chisq, err := c.family.ComputeChisq(tools)
	if err != nil {
		return 0, err
	}

	return -0.5 * chisq, nil
}
