// SPDX-License-Identifier: MIT

// Package matrix - symmetric eigendecomposition A = Q·Λ·Qᵀ via cyclic Jacobi rotations.
//
// Purpose:
//   - Offer a second Factorization for covariances that are poorly conditioned
//     for Cholesky, and expose the spectrum for diagnostics.
//
// Determinism:
//   - Sweeps visit (p,q) in fixed row-major order; eigenpairs are returned sorted
//     by ascending eigenvalue with a stable tie order.
//
// Complexity quicksheet:
//   - Eigen: O(sweeps·n³); Mahalanobis/SolveVec: O(n²); Inverse: O(n³).
//   - Convergence and definiteness are judged against each pair's or
//     eigenvector's own diagonal, never against max|A|.
package matrix

import (
	"fmt"
	"math"
	"sort"
)

// Eigen computes all eigenpairs of the symmetric matrix m.
//
// Implementation:
//   - Stage 1: validate square, finite, symmetric within eps·max|A|.
//   - Stage 2: cyclic Jacobi sweeps. A pair p<q is rotated unless
//     |A[p,q]| ≤ eigenTol·√|A[p,p]|·√|A[q,q]|:
//     θ = (A[q,q]−A[p,p])/(2·A[p,q]), t = sign(θ)/(|θ|+√(θ²+1)),
//     c = 1/√(1+t²), s = t·c; rotate rows/cols p,q and accumulate into Q.
//   - Stage 3: stop after a sweep in which no pair needed a rotation.
//   - Stage 4: sort eigenpairs by ascending eigenvalue.
//
// Behavior highlights:
//   - The convergence test is local to each pair, so a block many orders of
//     magnitude below max|A| is still diagonalized to full relative accuracy.
//
// Returns:
//   - values: eigenvalues λ₀ ≤ λ₁ ≤ ... ≤ λₙ₋₁.
//   - vectors: n×n matrix whose column k is the unit eigenvector of λₖ.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrAsymmetry,
//     ErrEigenFailed (sweep budget exhausted).
//
// Complexity:
//   - Time O(sweeps·n³), Space O(n²).
func Eigen(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateSymmetricRel(m, o.eps); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := src.r
	a := src.RawRowMajor() // working copy
	qm, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	q := qm.data

	var (
		sweep, i, p, r     int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
		rotated, converged bool
	)
	for sweep = 0; sweep < o.maxSweeps; sweep++ {
		rotated = false
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = a[p*n+r]
				app = a[p*n+p]
				aqq = a[r*n+r]
				if negligiblePair(apq, app, aqq, o.eigenTol) {
					continue
				}
				rotated = true
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = a[i*n+p]
					aiq = a[i*n+r]
					a[i*n+p] = c*aip - s*aiq
					a[p*n+i] = a[i*n+p]
					a[i*n+r] = s*aip + c*aiq
					a[r*n+i] = a[i*n+r]
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+r], a[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = q[i*n+p]
					qiq = q[i*n+r]
					q[i*n+p] = c*qip - s*qiq
					q[i*n+r] = s*qip + c*qiq
				}
			}
		}
		if !rotated {
			converged = true
			break
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("after %d sweeps: %w", o.maxSweeps, ErrEigenFailed))
	}

	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return a[order[x]*n+order[x]] < a[order[y]*n+order[y]] })

	values := make([]float64, n)
	vectors, _ := NewDense(n, n)
	for k, col := range order {
		values[k] = a[col*n+col]
		for i = 0; i < n; i++ {
			vectors.data[i*n+k] = q[i*n+col]
		}
	}

	return values, vectors, nil
}

// negligiblePair reports whether A[p,q] is small against its own diagonal.
// The square roots are taken separately so tiny diagonals do not underflow.
func negligiblePair(apq, app, aqq, tol float64) bool {
	if apq == 0 {
		return true
	}

	return math.Abs(apq) <= tol*math.Sqrt(math.Abs(app))*math.Sqrt(math.Abs(aqq))
}

// EigenSym is a Factorization backed by a symmetric eigendecomposition.
// All eigenvalues are strictly positive; it is immutable after construction.
type EigenSym struct {
	n       int
	values  []float64
	vectors []float64 // row-major; column k is the k-th eigenvector
	logDet  float64
}

var _ Factorization = (*EigenSym)(nil)

// NewEigenSym decomposes m and rejects it unless every eigenvalue λₖ exceeds
// pivotFloor·Σᵢ Q[i,k]²·A[i,i], the diagonal scale of its own eigenvector.
// A well-conditioned matrix passes whatever the spread of its diagonal; a
// direction that is degenerate relative to the entries it spans does not.
// Errors: everything Eigen returns, plus ErrNotPositiveDefinite.
func NewEigenSym(m Matrix, opts ...Option) (*EigenSym, error) {
	o := gatherOptions(opts...)
	values, vectors, err := Eigen(m, opts...)
	if err != nil {
		return nil, err
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	n := len(values)
	var floor, qik float64
	logDet := ZeroSum
	for k, v := range values {
		floor = ZeroSum
		for i := 0; i < n; i++ {
			qik = vectors.data[i*n+k]
			floor += qik * qik * math.Abs(src.data[i*n+i])
		}
		floor *= o.pivotFloor
		if v <= floor || v <= 0 {
			return nil, matrixErrorf(opEigen, fmt.Errorf("eigenvalue %d = %g: %w", k, v, ErrNotPositiveDefinite))
		}
		logDet += math.Log(v)
	}

	return &EigenSym{n: n, values: values, vectors: vectors.data, logDet: logDet}, nil
}

// Size returns n.
func (e *EigenSym) Size() int { return e.n }

// LogDet returns ln|A| = Σ ln λₖ.
func (e *EigenSym) LogDet() float64 { return e.logDet }

// Values returns a copy of the ascending eigenvalues.
func (e *EigenSym) Values() []float64 {
	out := make([]float64, e.n)
	copy(out, e.values)

	return out
}

// Vectors returns a copy of the eigenvector matrix (column k ↔ Values()[k]).
func (e *EigenSym) Vectors() *Dense {
	out, _ := NewDenseFrom(e.n, e.n, e.vectors)

	return out
}

// project returns z = Qᵀ·r.
func (e *EigenSym) project(r []float64) []float64 {
	n := e.n
	z := make([]float64, n)
	for k := 0; k < n; k++ {
		acc := ZeroSum
		for i := 0; i < n; i++ {
			acc += e.vectors[i*n+k] * r[i]
		}
		z[k] = acc
	}

	return z
}

// Mahalanobis returns Σₖ (qₖᵀ·r)²/λₖ.
func (e *EigenSym) Mahalanobis(r []float64) (float64, error) {
	if err := ValidateVecLen(r, e.n); err != nil {
		return 0, matrixErrorf(opMahalanobis, err)
	}
	z := e.project(r)
	sum := ZeroSum
	for k, zk := range z {
		sum += zk * zk / e.values[k]
	}

	return sum, nil
}

// SolveVec returns x = Q·Λ⁻¹·Qᵀ·b.
func (e *EigenSym) SolveVec(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, e.n); err != nil {
		return nil, matrixErrorf(opSolveVec, err)
	}
	n := e.n
	z := e.project(b)
	for k := range z {
		z[k] /= e.values[k]
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		acc := ZeroSum
		for k := 0; k < n; k++ {
			acc += e.vectors[i*n+k] * z[k]
		}
		x[i] = acc
	}

	return x, nil
}

// Inverse returns Q·Λ⁻¹·Qᵀ as a fresh symmetric Dense.
func (e *EigenSym) Inverse() (*Dense, error) {
	n := e.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			acc := ZeroSum
			for k := 0; k < n; k++ {
				acc += e.vectors[i*n+k] * e.vectors[j*n+k] / e.values[k]
			}
			inv.data[i*n+j] = acc
			inv.data[j*n+i] = acc
		}
	}

	return inv, nil
}
