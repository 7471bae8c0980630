// SPDX-License-Identifier: MIT

// Package statistic defines the unit of observational data a likelihood
// consumes: a fixed data vector read from a dataset.Source plus the logic to
// predict it from the modeling tools.
//
// Concrete statistics in this package: Supernova (distance moduli with an
// absolute-magnitude nuisance), Tabulated (fixed predictions) and Func
// (prediction callback). All of them share the read-once, update/reset and
// systematics plumbing implemented by base.
package statistic

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/updatable"
)

// DataVector holds observed values; fixed after Read.
type DataVector []float64

// TheoryVector holds predictions; same length and order as the DataVector.
type TheoryVector []float64

// Statistic is one block of the full data vector.
type Statistic interface {
	updatable.Updatable

	// Read pulls the data vector and its covariance indices out of src.
	// It may be called once.
	Read(src dataset.Source) error

	// DataVector returns a copy of the observed values.
	DataVector() (DataVector, error)

	// ComputeTheoryVector predicts the data vector from tools.
	ComputeTheoryVector(tools *modeling.Tools) (TheoryVector, error)

	// Indices returns the rows of the source covariance belonging to this
	// statistic, aligned with DataVector.
	Indices() ([]int, error)

	// Name identifies the statistic in logs and errors.
	Name() string
}

// Systematic perturbs a prediction before it is compared with data.
type Systematic interface {
	updatable.Updatable

	Apply(tools *modeling.Tools, theory TheoryVector) (TheoryVector, error)
}

// base carries the state every statistic in this package shares.
type base struct {
	dataType    string
	tracers     []string
	params      *parameters.Set
	systematics *updatable.Collection[Systematic]

	read    bool
	data    DataVector
	indices []int
}

func newBase(dataType string, tracers []string, params *parameters.Set, systematics []Systematic) (base, error) {
	if dataType == "" {
		return base{}, fmt.Errorf("empty data type: %w", ErrInvalid)
	}
	if len(tracers) == 0 {
		return base{}, fmt.Errorf("%s: no tracers: %w", dataType, ErrInvalid)
	}
	for i, tr := range tracers {
		if tr == "" {
			return base{}, fmt.Errorf("%s: tracer %d is empty: %w", dataType, i, ErrInvalid)
		}
	}
	if params == nil {
		params, _ = parameters.NewSet("")
	}
	sys, err := updatable.NewCollection(systematics...)
	if err != nil {
		return base{}, fmt.Errorf("%s: systematics: %w: %w", dataType, ErrInvalid, err)
	}

	return base{
		dataType:    dataType,
		tracers:     append([]string(nil), tracers...),
		params:      params,
		systematics: sys,
	}, nil
}

// Name returns "dataType[tracer,...]".
func (b *base) Name() string {
	return b.dataType + "[" + strings.Join(b.tracers, ",") + "]"
}

// selectData performs the read-once selection and stores data and indices.
func (b *base) selectData(src dataset.Source) (dataset.Selection, error) {
	if b.read {
		return dataset.Selection{}, fmt.Errorf("%s: %w", b.Name(), ErrAlreadyRead)
	}
	if src == nil {
		return dataset.Selection{}, fmt.Errorf("%s: %w", b.Name(), ErrNilSource)
	}
	sel, err := src.Select(b.dataType, b.tracers...)
	if err != nil {
		return dataset.Selection{}, fmt.Errorf("%s: %w", b.Name(), err)
	}

	return sel, nil
}

// commit marks the statistic as read. Called only after every check passed,
// so a failed Read leaves the statistic untouched.
func (b *base) commit(sel dataset.Selection) {
	b.data = append(DataVector(nil), sel.Values...)
	b.indices = append([]int(nil), sel.Indices...)
	b.read = true
}

// DataVector implements Statistic.
func (b *base) DataVector() (DataVector, error) {
	if !b.read {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrNotRead)
	}

	return append(DataVector(nil), b.data...), nil
}

// Indices implements Statistic.
func (b *base) Indices() ([]int, error) {
	if !b.read {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrNotRead)
	}

	return append([]int(nil), b.indices...), nil
}

// Update reads this statistic's parameters, then its systematics'.
func (b *base) Update(params parameters.ParamsMap) error {
	if err := b.params.Update(params); err != nil {
		return fmt.Errorf("%s: %w", b.Name(), err)
	}
	if err := b.systematics.Update(params); err != nil {
		return fmt.Errorf("%s: %w", b.Name(), err)
	}

	return nil
}

// RequiredParameters is the statistic's own parameters followed by its
// systematics'.
func (b *base) RequiredParameters() parameters.RequiredParameters {
	return b.params.RequiredParameters().Union(b.systematics.RequiredParameters())
}

// Reset forgets sampled values in the statistic and its systematics.
func (b *base) Reset() {
	b.params.Reset()
	b.systematics.Reset()
}

// finish applies systematics in order to a raw prediction.
func (b *base) finish(tools *modeling.Tools, theory TheoryVector) (TheoryVector, error) {
	var err error
	for i, s := range b.systematics.Items() {
		if theory, err = s.Apply(tools, theory); err != nil {
			return nil, fmt.Errorf("%s: systematic %d: %w", b.Name(), i, err)
		}
	}

	return theory, nil
}

// ensureRead guards predictions.
func (b *base) ensureRead() error {
	if !b.read {
		return fmt.Errorf("%s: %w", b.Name(), ErrNotRead)
	}

	return nil
}
