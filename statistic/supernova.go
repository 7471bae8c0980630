// SPDX-License-Identifier: MIT
package statistic

import (
	"fmt"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
)

// SupernovaDataType is the data type Supernova selects.
const SupernovaDataType = "supernova_distance_mu"

// redshiftTag is the per-point tag holding z.
const redshiftTag = "z"

// Supernova predicts distance moduli μ(z) + M, where M is the absolute
// magnitude nuisance, named "<tracer>_M" when sampled.
type Supernova struct {
	base
	m *parameters.Parameter
	z []float64
}

var _ Statistic = (*Supernova)(nil)

// NewSupernova declares a supernova statistic for one tracer.
// Errors: ErrInvalid (empty tracer, nil or unnamed magnitude parameter).
func NewSupernova(tracer string, opts ...Option) (*Supernova, error) {
	o := gatherOptions(opts...)
	m := o.magnitude
	if m == nil {
		m = parameters.Sampled("M")
	}
	set, err := parameters.NewSet(tracer, m)
	if err != nil {
		return nil, fmt.Errorf("NewSupernova: %w: %w", ErrInvalid, err)
	}
	b, err := newBase(SupernovaDataType, []string{tracer}, set, o.systematics)
	if err != nil {
		return nil, fmt.Errorf("NewSupernova: %w", err)
	}

	return &Supernova{base: b, m: m}, nil
}

// Read selects the tracer's distance moduli and their redshift tags.
func (s *Supernova) Read(src dataset.Source) error {
	sel, err := s.selectData(src)
	if err != nil {
		return err
	}
	z, err := sel.Tag(redshiftTag)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	s.z = z
	s.commit(sel)

	return nil
}

// Redshifts returns a copy of the redshifts read from the source.
func (s *Supernova) Redshifts() []float64 { return append([]float64(nil), s.z...) }

// ComputeTheoryVector implements Statistic. The cosmology must implement
// modeling.DistanceModulusCalculator.
// Errors: parameters.ErrParameter when a sampled M has not been updated.
func (s *Supernova) ComputeTheoryVector(tools *modeling.Tools) (TheoryVector, error) {
	if err := s.ensureRead(); err != nil {
		return nil, err
	}
	if !s.m.IsSet() {
		name, _ := parameters.FullName(s.params.Prefix(), s.m.Name())
		return nil, fmt.Errorf("%s: %s not set: %w", s.Name(), name, parameters.ErrParameter)
	}
	cosmo, err := tools.Cosmology()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	calc, ok := cosmo.(modeling.DistanceModulusCalculator)
	if !ok {
		return nil, fmt.Errorf("%s: %T cannot compute distance moduli: %w", s.Name(), cosmo, ErrCapability)
	}
	mu, err := calc.DistanceModulus(s.z)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	m := s.m.Value()
	theory := make(TheoryVector, len(mu))
	for i, v := range mu {
		theory[i] = v + m
	}

	return s.finish(tools, theory)
}
