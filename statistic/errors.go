// SPDX-License-Identifier: MIT
// Package statistic: sentinel error set ("statistic: ..." prefix).

package statistic

import "errors"

var (
	// ErrNotRead is returned by data accessors and predictions before Read.
	ErrNotRead = errors.New("statistic: data not read")

	// ErrAlreadyRead is returned by a second Read; the first read's state is kept.
	ErrAlreadyRead = errors.New("statistic: data already read")

	// ErrInvalid reports a statistic declared with unusable arguments
	// (empty data type, no tracers, nil callback).
	ErrInvalid = errors.New("statistic: invalid declaration")

	// ErrCapability is returned when the prepared cosmology lacks a capability
	// the statistic needs (for example distance moduli).
	ErrCapability = errors.New("statistic: cosmology lacks required capability")

	// ErrNilSource is returned by Read when given a nil data source.
	ErrNilSource = errors.New("statistic: nil data source")
)
