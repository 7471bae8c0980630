// SPDX-License-Identifier: MIT

// Package parameters: named parameters and prefixed groups of them.
//
// A Parameter is either sampled (its value arrives with every Update) or fixed
// (its value is set once at construction). A Set binds parameters to a prefix
// and implements the update / required / reset cycle for the whole group, so
// statistics and likelihoods only declare their parameters and read values.
package parameters

import (
	"fmt"
	"math"
)

// Parameter is a single named scalar owned by a statistic or likelihood.
type Parameter struct {
	name    string
	sampled bool
	value   float64
	set     bool // value is valid (always true for fixed parameters)
}

// Sampled declares a parameter whose value the sampler provides.
func Sampled(name string) *Parameter {
	return &Parameter{name: name, sampled: true, value: math.NaN()}
}

// Fixed declares a parameter with a constant value; it never appears in
// RequiredParameters.
func Fixed(name string, v float64) *Parameter {
	return &Parameter{name: name, value: v, set: true}
}

// Name returns the unprefixed name.
func (p *Parameter) Name() string { return p.name }

// IsSampled reports whether the value comes from the sampler.
func (p *Parameter) IsSampled() bool { return p.sampled }

// Value returns the current value, or NaN for a sampled parameter that has
// not been updated since the last Reset.
func (p *Parameter) Value() float64 {
	if !p.set {
		return math.NaN()
	}

	return p.value
}

// IsSet reports whether Value is meaningful.
func (p *Parameter) IsSet() bool { return p.set }

// Set groups parameters under a common prefix. It satisfies the
// updatable.Updatable contract.
type Set struct {
	prefix string
	params []*Parameter
	byName map[string]*Parameter
}

// NewSet builds a Set; names must be non-empty and unique within the set.
// Errors: ErrNilParameter, ErrEmptyName, ErrDuplicateName.
func NewSet(prefix string, params ...*Parameter) (*Set, error) {
	s := &Set{prefix: prefix, byName: make(map[string]*Parameter, len(params))}
	for i, p := range params {
		if p == nil {
			return nil, fmt.Errorf("NewSet: index %d: %w", i, ErrNilParameter)
		}
		if p.name == "" {
			return nil, fmt.Errorf("NewSet: index %d: %w", i, ErrEmptyName)
		}
		if _, dup := s.byName[p.name]; dup {
			return nil, fmt.Errorf("NewSet: %q: %w", p.name, ErrDuplicateName)
		}
		s.byName[p.name] = p
		s.params = append(s.params, p)
	}

	return s, nil
}

// Prefix returns the prefix used to build full names.
func (s *Set) Prefix() string { return s.prefix }

// Lookup returns the parameter registered under the unprefixed name.
func (s *Set) Lookup(name string) (*Parameter, bool) {
	p, ok := s.byName[name]

	return p, ok
}

// Update reads every sampled parameter from params under its full name.
// On failure no parameter of the set is modified.
func (s *Set) Update(params ParamsMap) error {
	values := make([]float64, len(s.params))
	for i, p := range s.params {
		if !p.sampled {
			continue
		}
		v, err := params.GetFromPrefix(s.prefix, p.name)
		if err != nil {
			return err
		}
		values[i] = v
	}
	for i, p := range s.params {
		if p.sampled {
			p.value, p.set = values[i], true
		}
	}

	return nil
}

// RequiredParameters lists the full names of the sampled parameters, in
// declaration order.
func (s *Set) RequiredParameters() RequiredParameters {
	names := make([]string, 0, len(s.params))
	for _, p := range s.params {
		if p.sampled {
			full, _ := FullName(s.prefix, p.name) // names validated in NewSet
			names = append(names, full)
		}
	}

	return NewRequiredParameters(names...)
}

// Reset forgets the values of sampled parameters; fixed values are kept.
func (s *Set) Reset() {
	for _, p := range s.params {
		if p.sampled {
			p.value, p.set = math.NaN(), false
		}
	}
}
