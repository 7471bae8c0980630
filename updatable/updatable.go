// SPDX-License-Identifier: MIT

// Package updatable defines the update / required-parameters / reset contract
// shared by statistics and likelihoods, and an ordered Collection that fans the
// contract out to its members.
//
// Collection performs no locking. Callers sequence Update, evaluation and
// Reset from one goroutine.
package updatable

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlike/parameters"
)

// ErrNilMember is returned when a nil member is appended to a Collection.
var ErrNilMember = errors.New("updatable: nil member")

// Updatable is anything whose state follows the sampler's parameter values.
type Updatable interface {
	// Update pulls this component's parameters out of params.
	Update(params parameters.ParamsMap) error

	// RequiredParameters lists the names Update needs. It is pure.
	RequiredParameters() parameters.RequiredParameters

	// Reset returns the component to its pre-Update state.
	Reset()
}

// DerivedProvider is implemented by members that report derived parameters
// after an evaluation.
type DerivedProvider interface {
	DerivedParameters() (parameters.DerivedCollection, error)
}

// Collection is an ordered, homogeneous list of Updatable members.
// Insertion order is the order of Update, RequiredParameters and Items.
type Collection[T Updatable] struct {
	items []T
}

// NewCollection builds a collection from items, in order.
// Errors: ErrNilMember when an element is a nil interface or nil pointer.
func NewCollection[T Updatable](items ...T) (*Collection[T], error) {
	c := &Collection[T]{items: make([]T, 0, len(items))}
	for i, it := range items {
		if err := c.Append(it); err != nil {
			return nil, fmt.Errorf("NewCollection: index %d: %w", i, err)
		}
	}

	return c, nil
}

// Append adds item at the end.
func (c *Collection[T]) Append(item T) error {
	if isNil(item) {
		return ErrNilMember
	}
	c.items = append(c.items, item)

	return nil
}

// Len returns the number of members.
func (c *Collection[T]) Len() int { return len(c.items) }

// At returns the i-th member; it panics when i is out of range, like a slice.
func (c *Collection[T]) At(i int) T { return c.items[i] }

// Items returns a copy of the member list.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)

	return out
}

// Update forwards params to every member in order. The first failure stops
// the loop and is returned wrapped with parameters.ErrParameter.
func (c *Collection[T]) Update(params parameters.ParamsMap) error {
	for i, it := range c.items {
		if err := it.Update(params); err != nil {
			if errors.Is(err, parameters.ErrParameter) {
				return fmt.Errorf("member %d: %w", i, err)
			}
			return fmt.Errorf("member %d: %w: %w", i, parameters.ErrParameter, err)
		}
	}

	return nil
}

// RequiredParameters is the order-preserving union over all members.
func (c *Collection[T]) RequiredParameters() parameters.RequiredParameters {
	var out parameters.RequiredParameters
	for _, it := range c.items {
		out = out.Union(it.RequiredParameters())
	}

	return out
}

// Reset forwards to every member.
func (c *Collection[T]) Reset() {
	for _, it := range c.items {
		it.Reset()
	}
}

// DerivedParameters concatenates the derived parameters of members that
// implement DerivedProvider.
func (c *Collection[T]) DerivedParameters() (parameters.DerivedCollection, error) {
	var out parameters.DerivedCollection
	for i, it := range c.items {
		dp, ok := any(it).(DerivedProvider)
		if !ok {
			continue
		}
		d, err := dp.DerivedParameters()
		if err != nil {
			return parameters.DerivedCollection{}, fmt.Errorf("member %d: %w", i, err)
		}
		if out, err = out.Merge(d); err != nil {
			return parameters.DerivedCollection{}, fmt.Errorf("member %d: %w", i, err)
		}
	}

	return out, nil
}
