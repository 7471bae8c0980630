// SPDX-License-Identifier: MIT
package statistic

import (
	"fmt"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
)

// Tabulated returns a fixed prediction regardless of the cosmology. It is
// used to evaluate a data set against precomputed theory and in tests.
type Tabulated struct {
	base
	theory TheoryVector
}

var _ Statistic = (*Tabulated)(nil)

// NewTabulated declares a statistic whose prediction is always theory.
// The length is not checked here; a mismatch surfaces as a dimension error
// when the likelihood evaluates.
func NewTabulated(dataType string, tracers []string, theory []float64, opts ...Option) (*Tabulated, error) {
	o := gatherOptions(opts...)
	b, err := newBase(dataType, tracers, nil, o.systematics)
	if err != nil {
		return nil, fmt.Errorf("NewTabulated: %w", err)
	}

	return &Tabulated{base: b, theory: append(TheoryVector(nil), theory...)}, nil
}

// Read implements Statistic.
func (t *Tabulated) Read(src dataset.Source) error {
	sel, err := t.selectData(src)
	if err != nil {
		return err
	}
	t.commit(sel)

	return nil
}

// ComputeTheoryVector returns a copy of the table after systematics.
func (t *Tabulated) ComputeTheoryVector(tools *modeling.Tools) (TheoryVector, error) {
	if err := t.ensureRead(); err != nil {
		return nil, err
	}

	return t.finish(tools, append(TheoryVector(nil), t.theory...))
}

// Predictor computes a raw prediction from the modeling tools.
type Predictor func(tools *modeling.Tools) ([]float64, error)

// Func delegates its prediction to a callback and owns an optional
// parameter set the callback reads from.
type Func struct {
	base
	predict Predictor
}

var _ Statistic = (*Func)(nil)

// NewFunc declares a callback statistic. params may be nil.
// Errors: ErrInvalid (nil predict, bad data type or tracers).
func NewFunc(dataType string, tracers []string, params *parameters.Set, predict Predictor, opts ...Option) (*Func, error) {
	if predict == nil {
		return nil, fmt.Errorf("NewFunc: nil predictor: %w", ErrInvalid)
	}
	o := gatherOptions(opts...)
	b, err := newBase(dataType, tracers, params, o.systematics)
	if err != nil {
		return nil, fmt.Errorf("NewFunc: %w", err)
	}

	return &Func{base: b, predict: predict}, nil
}

// Read implements Statistic.
func (f *Func) Read(src dataset.Source) error {
	sel, err := f.selectData(src)
	if err != nil {
		return err
	}
	f.commit(sel)

	return nil
}

// ComputeTheoryVector calls the predictor, then applies systematics.
func (f *Func) ComputeTheoryVector(tools *modeling.Tools) (TheoryVector, error) {
	if err := f.ensureRead(); err != nil {
		return nil, err
	}
	raw, err := f.predict(tools)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	return f.finish(tools, TheoryVector(raw))
}
