// SPDX-License-Identifier: MIT
package parameters

import "fmt"

// derivedSep separates section and name in a derived parameter's full name.
const derivedSep = "--"

// DerivedParameter is a quantity computed during an evaluation and reported
// back to the sampler.
type DerivedParameter struct {
	Section string
	Name    string
	Value   float64
}

// FullName returns "section--name".
func (d DerivedParameter) FullName() string {
	return d.Section + derivedSep + d.Name
}

// DerivedCollection is an ordered set of derived parameters with unique full names.
type DerivedCollection struct {
	items []DerivedParameter
	index map[string]int
}

// NewDerivedCollection builds a collection.
// Errors: ErrEmptyName for an empty section or name, ErrDuplicateDerived.
func NewDerivedCollection(items ...DerivedParameter) (DerivedCollection, error) {
	var c DerivedCollection
	for _, d := range items {
		if err := c.Add(d); err != nil {
			return DerivedCollection{}, err
		}
	}

	return c, nil
}

// Add appends d.
func (c *DerivedCollection) Add(d DerivedParameter) error {
	if d.Section == "" || d.Name == "" {
		return fmt.Errorf("derived %q: %w", d.FullName(), ErrEmptyName)
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	full := d.FullName()
	if _, dup := c.index[full]; dup {
		return fmt.Errorf("derived %q: %w", full, ErrDuplicateDerived)
	}
	c.index[full] = len(c.items)
	c.items = append(c.items, d)

	return nil
}

// Merge returns a new collection holding c followed by o.
// Errors: ErrDuplicateDerived when a full name appears in both.
func (c DerivedCollection) Merge(o DerivedCollection) (DerivedCollection, error) {
	out, err := NewDerivedCollection(c.items...)
	if err != nil {
		return DerivedCollection{}, err
	}
	for _, d := range o.items {
		if err = out.Add(d); err != nil {
			return DerivedCollection{}, err
		}
	}

	return out, nil
}

// Items returns a copy of the parameters in insertion order.
func (c DerivedCollection) Items() []DerivedParameter {
	out := make([]DerivedParameter, len(c.items))
	copy(out, c.items)

	return out
}

// Len returns the number of derived parameters.
func (c DerivedCollection) Len() int { return len(c.items) }

// Get returns the value stored under "section--name".
func (c DerivedCollection) Get(section, name string) (float64, bool) {
	i, ok := c.index[section+derivedSep+name]
	if !ok {
		return 0, false
	}

	return c.items[i].Value, true
}

// Map flattens the collection to full name → value.
func (c DerivedCollection) Map() map[string]float64 {
	out := make(map[string]float64, len(c.items))
	for _, d := range c.items {
		out[d.FullName()] = d.Value
	}

	return out
}
