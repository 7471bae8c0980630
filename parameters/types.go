// SPDX-License-Identifier: MIT

// Package parameters: ParamsMap and RequiredParameters.
package parameters

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// prefixSep joins a prefix and a parameter name.
const prefixSep = "_"

// FullName returns "prefix_name", or name when prefix is empty.
// Errors: ErrEmptyName when name is empty.
func FullName(prefix, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if prefix == "" {
		return name, nil
	}

	return prefix + prefixSep + name, nil
}

// ParamsMap maps full parameter names to values for one sampler step.
type ParamsMap map[string]float64

// Get returns the value stored under name.
// Errors: ErrParameter when the name is absent or the value is NaN.
func (m ParamsMap) Get(name string) (float64, error) {
	v, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("%q not provided: %w", name, ErrParameter)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%q is NaN: %w", name, ErrParameter)
	}

	return v, nil
}

// GetFromPrefix resolves FullName(prefix, name) and returns its value.
func (m ParamsMap) GetFromPrefix(prefix, name string) (float64, error) {
	full, err := FullName(prefix, name)
	if err != nil {
		return 0, err
	}

	return m.Get(full)
}

// Names returns the keys in sorted order.
func (m ParamsMap) Names() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// RequiredParameters is an ordered, duplicate-free list of parameter names.
// The zero value is the empty list. It is immutable: every method returns a
// new value or a copy.
type RequiredParameters struct {
	names []string
}

// NewRequiredParameters keeps the first occurrence of each name, in order.
// Empty names are skipped.
func NewRequiredParameters(names ...string) RequiredParameters {
	return RequiredParameters{}.add(names)
}

func (r RequiredParameters) add(names []string) RequiredParameters {
	seen := make(map[string]struct{}, len(r.names)+len(names))
	out := make([]string, 0, len(r.names)+len(names))
	for _, n := range r.names {
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return RequiredParameters{names: out}
}

// Union returns r followed by the names of others that r does not already hold.
// Neither operand is modified.
func (r RequiredParameters) Union(others ...RequiredParameters) RequiredParameters {
	out := r.add(nil)
	for _, o := range others {
		out = out.add(o.names)
	}

	return out
}

// Names returns a copy of the ordered names.
func (r RequiredParameters) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// Len returns the number of names.
func (r RequiredParameters) Len() int { return len(r.names) }

// Contains reports whether name is required.
func (r RequiredParameters) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}

	return false
}

// Equal reports whether both lists hold the same names in the same order.
func (r RequiredParameters) Equal(o RequiredParameters) bool {
	if len(r.names) != len(o.names) {
		return false
	}
	for i := range r.names {
		if r.names[i] != o.names[i] {
			return false
		}
	}

	return true
}

// Missing returns the required names absent from params, in order.
func (r RequiredParameters) Missing(params ParamsMap) []string {
	var out []string
	for _, n := range r.names {
		if _, ok := params[n]; !ok {
			out = append(out, n)
		}
	}

	return out
}

// Validate fails with ErrParameter naming every absent parameter.
func (r RequiredParameters) Validate(params ParamsMap) error {
	if missing := r.Missing(params); len(missing) > 0 {
		return fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), ErrParameter)
	}

	return nil
}

// String renders the names as a bracketed list.
func (r RequiredParameters) String() string {
	return "[" + strings.Join(r.names, " ") + "]"
}
