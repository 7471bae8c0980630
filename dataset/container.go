// SPDX-License-Identifier: MIT

// Package dataset describes where statistics read their measurements from.
//
// Source is the read-only contract (select points by data type and tracers,
// fetch the full covariance). Container is an in-memory implementation that
// can be filled programmatically or from a YAML file.
package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvlike/matrix"
)

// Source is an observational data set: data points addressed by data type
// and tracer tuple, plus one covariance over all points.
type Source interface {
	// Select returns the points of dataType measured on exactly this tracer
	// tuple, in storage order. Errors: ErrMissingTracer.
	Select(dataType string, tracers ...string) (Selection, error)

	// Covariance returns the full covariance; row i belongs to point i.
	// Errors: ErrNoCovariance.
	Covariance() (matrix.Matrix, error)
}

// DataPoint is one measurement.
type DataPoint struct {
	DataType string             `yaml:"data_type" validate:"required"`
	Tracers  []string           `yaml:"tracers" validate:"required,min=1,dive,required"`
	Value    float64            `yaml:"value"`
	Tags     map[string]float64 `yaml:"tags,omitempty"`
}

// Selection is the result of Source.Select. Indices address rows of the
// source covariance.
type Selection struct {
	Values  []float64
	Indices []int
	Tags    []map[string]float64
}

// Len returns the number of selected points.
func (s Selection) Len() int { return len(s.Values) }

// Tag collects tag name across the selection.
// Errors: ErrMalformed when a point lacks the tag.
func (s Selection) Tag(name string) ([]float64, error) {
	out := make([]float64, len(s.Tags))
	for i, tags := range s.Tags {
		v, ok := tags[name]
		if !ok {
			return nil, fmt.Errorf("point %d has no tag %q: %w", s.Indices[i], name, ErrMalformed)
		}
		out[i] = v
	}

	return out, nil
}

// Container is an in-memory Source.
type Container struct {
	points []DataPoint
	cov    *matrix.Dense
}

var _ Source = (*Container)(nil)

// NewContainer returns an empty container.
func NewContainer() *Container { return &Container{} }

// Add appends data points. Adding points drops a previously attached
// covariance, whose size would no longer match.
// Errors: ErrMalformed for an empty data type, no tracers, or a non-finite value.
func (c *Container) Add(points ...DataPoint) error {
	for i, p := range points {
		if err := checkPoint(p); err != nil {
			return fmt.Errorf("Add: point %d: %w", i, err)
		}
	}
	for _, p := range points {
		c.points = append(c.points, clonePoint(p))
	}
	if len(points) > 0 {
		c.cov = nil
	}

	return nil
}

func checkPoint(p DataPoint) error {
	if p.DataType == "" {
		return fmt.Errorf("empty data type: %w", ErrMalformed)
	}
	if len(p.Tracers) == 0 {
		return fmt.Errorf("%s: no tracers: %w", p.DataType, ErrMalformed)
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%s %v: non-finite value: %w", p.DataType, p.Tracers, ErrMalformed)
	}

	return nil
}

func clonePoint(p DataPoint) DataPoint {
	out := DataPoint{DataType: p.DataType, Value: p.Value}
	out.Tracers = append([]string(nil), p.Tracers...)
	if p.Tags != nil {
		out.Tags = make(map[string]float64, len(p.Tags))
		for k, v := range p.Tags {
			out.Tags[k] = v
		}
	}

	return out
}

// Len returns the number of data points.
func (c *Container) Len() int { return len(c.points) }

// Points returns a copy of every data point in storage order.
func (c *Container) Points() []DataPoint {
	out := make([]DataPoint, len(c.points))
	for i, p := range c.points {
		out[i] = clonePoint(p)
	}

	return out
}

// Select implements Source.
func (c *Container) Select(dataType string, tracers ...string) (Selection, error) {
	var sel Selection
	for i, p := range c.points {
		if p.DataType != dataType || !sameTracers(p.Tracers, tracers) {
			continue
		}
		sel.Values = append(sel.Values, p.Value)
		sel.Indices = append(sel.Indices, i)
		sel.Tags = append(sel.Tags, clonePoint(p).Tags)
	}
	if sel.Len() == 0 {
		return Selection{}, fmt.Errorf("%s (%s): %w", dataType, strings.Join(tracers, ", "), ErrMissingTracer)
	}

	return sel, nil
}

func sameTracers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// SetCovariance attaches a copy of cov. It must be square with one row per
// data point and finite; symmetry and definiteness are checked later by the
// likelihood on the block it actually uses.
func (c *Container) SetCovariance(cov matrix.Matrix) error {
	if err := matrix.ValidateSquareNonNil(cov); err != nil {
		return fmt.Errorf("SetCovariance: %w: %w", ErrMalformed, err)
	}
	if cov.Rows() != len(c.points) {
		return fmt.Errorf("SetCovariance: size %d for %d points: %w", cov.Rows(), len(c.points), ErrMalformed)
	}
	if err := matrix.ValidateFinite(cov); err != nil {
		return fmt.Errorf("SetCovariance: %w: %w", ErrMalformed, err)
	}
	cp, err := denseCopy(cov)
	if err != nil {
		return fmt.Errorf("SetCovariance: %w", err)
	}
	c.cov = cp

	return nil
}

// Covariance implements Source. The returned matrix is a copy.
func (c *Container) Covariance() (matrix.Matrix, error) {
	if c.cov == nil {
		return nil, ErrNoCovariance
	}

	return c.cov.Clone(), nil
}

func denseCopy(m matrix.Matrix) (*matrix.Dense, error) {
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
	}

	return matrix.NewDenseFrom(rows, cols, data)
}
