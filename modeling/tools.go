// SPDX-License-Identifier: MIT

// Package modeling carries the per-evaluation physics context handed to
// statistics: the prepared cosmology and a registry of physical-effect models.
//
// The cosmology itself is computed by an external library; this package only
// fixes the contract. Statistics type-assert the capabilities they need on
// the value returned by Tools.Cosmology.
package modeling

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotPrepared is returned by Cosmology before Prepare or after Reset.
	ErrNotPrepared = errors.New("modeling: tools not prepared")

	// ErrNilCosmology is returned by Prepare when given nil.
	ErrNilCosmology = errors.New("modeling: nil cosmology")

	// ErrUnknownModel is returned by Model for an unregistered name.
	ErrUnknownModel = errors.New("modeling: unknown model")
)

// Cosmology is an opaque, already-computed cosmology.
type Cosmology interface {
	// Fingerprint identifies the parameter point the cosmology was computed at.
	// Equal fingerprints mean interchangeable cosmologies.
	Fingerprint() uint64
}

// Tools is the modeling context of one evaluation. It is written by the
// driver (Prepare, Register, Reset) and only read during a compute.
type Tools struct {
	cosmo  Cosmology
	models map[string]any
}

// NewTools returns empty, unprepared tools.
func NewTools() *Tools {
	return &Tools{models: make(map[string]any)}
}

// Prepare attaches the cosmology for the next evaluation.
func (t *Tools) Prepare(c Cosmology) error {
	if c == nil {
		return ErrNilCosmology
	}
	t.cosmo = c

	return nil
}

// Prepared reports whether a cosmology is attached.
func (t *Tools) Prepared() bool { return t.cosmo != nil }

// Cosmology returns the prepared cosmology.
func (t *Tools) Cosmology() (Cosmology, error) {
	if t.cosmo == nil {
		return nil, ErrNotPrepared
	}

	return t.cosmo, nil
}

// Register stores a named physical-effect model, replacing any previous one.
func (t *Tools) Register(name string, model any) {
	t.models[name] = model
}

// Model returns the model registered under name.
func (t *Tools) Model(name string) (any, error) {
	m, ok := t.models[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownModel)
	}

	return m, nil
}

// ModelNames lists registered models in sorted order.
func (t *Tools) ModelNames() []string {
	out := make([]string, 0, len(t.models))
	for k := range t.models {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Reset detaches the cosmology. Registered models survive a reset.
func (t *Tools) Reset() { t.cosmo = nil }

// Cosmology capabilities a statistic may type-assert.

// DistanceModulusCalculator computes μ(z) = 5·log10(d_L/10pc) at each redshift.
type DistanceModulusCalculator interface {
	DistanceModulus(z []float64) ([]float64, error)
}
