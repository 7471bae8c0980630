// SPDX-License-Identifier: MIT
// Package parameters: sentinel error set.
// Every message is prefixed with "parameters: ..." and call sites wrap with
// context ("<Op>: %w" or the offending name); callers use errors.Is.

package parameters

import "errors"

var (
	// ErrParameter indicates a required parameter is missing, NaN, or outside
	// the domain its consumer accepts. Samplers treat it as "reject this point".
	ErrParameter = errors.New("parameters: invalid or missing parameter")

	// ErrEmptyName is returned when a parameter is declared with an empty name.
	ErrEmptyName = errors.New("parameters: empty parameter name")

	// ErrDuplicateName is returned when two parameters of one Set share a name.
	ErrDuplicateName = errors.New("parameters: duplicate parameter name")

	// ErrNilParameter is returned when a nil *Parameter is registered.
	ErrNilParameter = errors.New("parameters: nil parameter")

	// ErrDuplicateDerived is returned when two derived parameters share a
	// section--name full name.
	ErrDuplicateDerived = errors.New("parameters: duplicate derived parameter")
)
