// SPDX-License-Identifier: MIT
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlike/matrix"
)

// fileValidate checks decoded files; validator caches struct metadata, so
// one instance is shared.
var fileValidate = validator.New()

// File is the YAML layout of a data set. At most one covariance form may be
// given: a full matrix, its diagonal, or simulation realizations.
//
//	points:
//	  - data_type: supernova_distance_mu
//	    tracers: [sn_ddf]
//	    value: 40.1
//	    tags: {z: 0.1}
//	covariance_diagonal: [0.01]
type File struct {
	Points       []DataPoint `yaml:"points" validate:"required,min=1,dive"`
	Covariance   [][]float64 `yaml:"covariance,omitempty"`
	Diagonal     []float64   `yaml:"covariance_diagonal,omitempty"`
	Realizations [][]float64 `yaml:"realizations,omitempty"`
	Hartlap      bool        `yaml:"hartlap,omitempty"`
}

// Load decodes a YAML data set. Unknown keys are rejected.
// Errors: ErrMalformed (wrapping the decoder or validator error).
func Load(r io.Reader) (*Container, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("Load: empty document: %w", ErrMalformed)
		}
		return nil, fmt.Errorf("Load: %w: %w", ErrMalformed, err)
	}

	return f.Container()
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Container, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	defer fh.Close()

	c, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Container validates f and builds the in-memory data set.
func (f File) Container() (*Container, error) {
	if err := fileValidate.Struct(f); err != nil {
		return nil, fmt.Errorf("validate: %w: %w", ErrMalformed, err)
	}
	forms := 0
	for _, given := range []bool{len(f.Covariance) > 0, len(f.Diagonal) > 0, len(f.Realizations) > 0} {
		if given {
			forms++
		}
	}
	if forms > 1 {
		return nil, fmt.Errorf("covariance, covariance_diagonal and realizations are exclusive: %w", ErrMalformed)
	}

	c := NewContainer()
	if err := c.Add(f.Points...); err != nil {
		return nil, err
	}
	n := len(f.Points)

	switch {
	case len(f.Covariance) > 0:
		m, err := rowsToDense(f.Covariance, n)
		if err != nil {
			return nil, fmt.Errorf("covariance: %w", err)
		}
		if err = c.SetCovariance(m); err != nil {
			return nil, err
		}
	case len(f.Diagonal) > 0:
		if len(f.Diagonal) != n {
			return nil, fmt.Errorf("covariance_diagonal: %d entries for %d points: %w", len(f.Diagonal), n, ErrMalformed)
		}
		d, err := matrix.NewDiagonal(f.Diagonal)
		if err != nil {
			return nil, fmt.Errorf("covariance_diagonal: %w: %w", ErrMalformed, err)
		}
		if err = c.SetCovariance(d); err != nil {
			return nil, err
		}
	case len(f.Realizations) > 0:
		m, err := rowsToDense(f.Realizations, n)
		if err != nil {
			return nil, fmt.Errorf("realizations: %w", err)
		}
		if err = c.SetCovarianceFromRealizations(m, f.Hartlap); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// rowsToDense packs rows of width cols into a Dense.
func rowsToDense(rows [][]float64, cols int) (*matrix.Dense, error) {
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), cols, ErrMalformed)
		}
		data = append(data, row...)
	}
	m, err := matrix.NewDenseFrom(len(rows), cols, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return m, nil
}
