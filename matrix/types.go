// SPDX-License-Identifier: MIT

// Package matrix: public interfaces shared by the dense storage and the
// factorization kernels. Errors and options live in dedicated files
// (errors.go, options.go) per the package conventions.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// Factorization is a precomputed decomposition of a symmetric positive-definite
// matrix A. Every method is read-only: a Factorization is immutable once built
// and may be shared freely between readers.
//
// Implementations in this package: *Cholesky (A = L·Lᵀ) and *EigenSym (A = Q·Λ·Qᵀ).
type Factorization interface {
	// Size returns n for an n×n factorized matrix.
	Size() int

	// Mahalanobis returns rᵀ·A⁻¹·r without forming A⁻¹.
	Mahalanobis(r []float64) (float64, error)

	// SolveVec returns x such that A·x = b.
	SolveVec(b []float64) ([]float64, error)

	// LogDet returns ln|A|.
	LogDet() float64

	// Inverse materializes A⁻¹ column by column through SolveVec.
	Inverse() (*Dense, error)
}
