// SPDX-License-Identifier: MIT

// Package matrix - Cholesky factorization A = L·Lᵀ of a symmetric positive-definite matrix.
//
// Purpose:
//   - Factor a covariance once at construction time and answer every later
//     quadratic-form query with a single triangular solve.
//   - Fail fast with ErrNotPositiveDefinite instead of producing NaNs deep inside
//     a sampler run.
//
// Complexity quicksheet:
//   - Cholesky: O(n³/3); Mahalanobis: O(n²); SolveVec: O(n²); Inverse: O(n³); LogDet: O(n).
package matrix

import (
	"fmt"
	"math"
)

// Cholesky holds the lower-triangular factor L of A = L·Lᵀ (row-major, n×n).
// It is immutable after construction.
type Cholesky struct {
	n      int
	l      []float64 // row-major lower triangle; upper part is zero
	logDet float64   // ln|A| = 2·Σ ln L[i,i]
}

var _ Factorization = (*Cholesky)(nil)

// NewCholesky factorizes the symmetric positive-definite matrix m.
//
// Implementation:
//   - Stage 1: validate square, finite, and symmetric within eps·max|A|.
//   - Stage 2: Cholesky–Banachiewicz row by row; each pivot d = A[j,j] - Σ L[j,k]²
//     must exceed pivotFloor·A[j,j], so a diagonal spanning many decades is
//     accepted while a pivot cancelled against its own diagonal is not.
//   - Stage 3: cache ln|A| from the diagonal of L.
//
// Behavior highlights:
//   - Only the lower triangle of m is read after the symmetry check.
//   - The input is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrAsymmetry, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func NewCholesky(m Matrix, opts ...Option) (*Cholesky, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err := ValidateSymmetricRel(m, o.eps); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	l := make([]float64, n*n)
	var (
		i, j, k int
		sum, d  float64
		logDet  float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l[i*n+k] * l[j*n+k]
			}
			if i == j {
				d = sum
				if d <= o.pivotFloor*a.data[i*n+i] || d <= 0 {
					return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d = %g: %w", i, d, ErrNotPositiveDefinite))
				}
				l[i*n+i] = math.Sqrt(d)
				logDet += math.Log(l[i*n+i])
				continue
			}
			l[i*n+j] = sum / l[j*n+j]
		}
	}

	return &Cholesky{n: n, l: l, logDet: 2 * logDet}, nil
}

// Size returns n.
func (c *Cholesky) Size() int { return c.n }

// LogDet returns ln|A|.
func (c *Cholesky) LogDet() float64 { return c.logDet }

// L returns a copy of the lower-triangular factor.
func (c *Cholesky) L() *Dense {
	out, _ := NewDenseFrom(c.n, c.n, c.l)

	return out
}

// forward solves L·y = b in place of a fresh vector.
func (c *Cholesky) forward(b []float64) []float64 {
	n := c.n
	y := make([]float64, n)
	var i, k int
	var sum float64
	for i = 0; i < n; i++ {
		sum = b[i]
		for k = 0; k < i; k++ {
			sum -= c.l[i*n+k] * y[k]
		}
		y[i] = sum / c.l[i*n+i]
	}

	return y
}

// backward solves Lᵀ·x = y.
func (c *Cholesky) backward(y []float64) []float64 {
	n := c.n
	x := make([]float64, n)
	var i, k int
	var sum float64
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= c.l[k*n+i] * x[k]
		}
		x[i] = sum / c.l[i*n+i]
	}

	return x
}

// Mahalanobis returns rᵀ·A⁻¹·r = ‖L⁻¹·r‖² with one forward substitution.
//
// Errors:
//   - ErrNilMatrix (nil r), ErrDimensionMismatch (len(r) != n).
//
// Complexity:
//   - Time O(n²), Space O(n).
func (c *Cholesky) Mahalanobis(r []float64) (float64, error) {
	if err := ValidateVecLen(r, c.n); err != nil {
		return 0, matrixErrorf(opMahalanobis, err)
	}
	y := c.forward(r)
	sum := ZeroSum
	for _, v := range y {
		sum += v * v
	}

	return sum, nil
}

// SolveVec returns x with A·x = b (forward then backward substitution).
func (c *Cholesky) SolveVec(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, c.n); err != nil {
		return nil, matrixErrorf(opSolveVec, err)
	}

	return c.backward(c.forward(b)), nil
}

// Inverse materializes A⁻¹ by solving against each unit vector.
// The result is symmetrized to remove round-off asymmetry.
func (c *Cholesky) Inverse() (*Dense, error) {
	n := c.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	e := make([]float64, n)
	for j := 0; j < n; j++ {
		e[j] = 1
		col := c.backward(c.forward(e))
		e[j] = 0
		for i := 0; i < n; i++ {
			inv.data[i*n+j] = col[i]
		}
	}
	symmetrize(inv)

	return inv, nil
}

// symmetrize replaces A with (A+Aᵀ)/2 in place.
func symmetrize(d *Dense) {
	n := d.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			d.data[i*n+j] = avg
			d.data[j*n+i] = avg
		}
	}
}
