// Package matrix provides the dense linear algebra behind covariance handling.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and
//     copy-based submatrix extraction (Induced).
//   - Two factorizations of symmetric positive-definite matrices behind the
//     Factorization interface: Cholesky (A = L·Lᵀ) and EigenSym (A = Q·Λ·Qᵀ,
//     cyclic Jacobi). Both answer rᵀ·A⁻¹·r without materializing A⁻¹.
//   - SampleCovariance for estimating a covariance from simulated realizations.
//   - Central validators (shape, finiteness, relative symmetry) and sentinel
//     errors for errors.Is matching.
//
// Factorizations are immutable once built and safe for concurrent readers.
// Tolerances are relative: symmetry to the largest absolute entry, Jacobi
// convergence and definiteness to the diagonal entries involved. A
// covariance mixing entries near 1 and near 1e-16 factorizes as accurately
// as either block alone.
//
// See the examples in this package for usage patterns.
package matrix
