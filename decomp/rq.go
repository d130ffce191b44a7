// SPDX-License-Identifier: MIT
// Package decomp: RQ factorization via a flipped QR.
//
// Purpose:
//   - Factor A = R·Q with R upper triangular (m×n, right-aligned when m < n)
//     and Q orthogonal (n×n), using the classical reduction to QR:
//
//     B = (J_m·A)ᵀ,  B = Q₀·R₀  ⇒  R = J_m·R₀ᵀ·J_n,  Q = J_n·Q₀ᵀ
//
//     where J_k is the k×k row-exchange (flip) matrix. Both flips are pure
//     index reversals, so the reduction adds no arithmetic beyond one QR.
//
// Determinism:
//   - Inherits the Householder kernel's fixed ordering; identical inputs
//     produce bit-identical factors.

package decomp

import "github.com/katalvlaran/lvlinear/matrix"

// Operation name constants for unified error wrapping.
const (
	opRQR = "RQDecomposer.R"
	opRQQ = "RQDecomposer.Q"
)

// RQDecomposer factors an m×n matrix of any shape as A = R·Q. The dominant
// consumer is camera-matrix style upper-triangular/orthogonal splitting,
// where A is wide (m <= n) and R ends up right-aligned in its m×n frame.
//
// Not goroutine-safe; confine each instance to a single owner.
type RQDecomposer struct {
	state

	r    [][]float64 // m×n upper triangular (right-aligned for m < n)
	q    [][]float64 // n×n orthogonal
	m, n int
}

// NewRQDecomposer returns an empty (NOT_READY) RQ decomposer.
// Complexity: O(1).
func NewRQDecomposer() *RQDecomposer { return &RQDecomposer{} }

// Type returns TypeRQ. Complexity: O(1).
func (d *RQDecomposer) Type() Type { return TypeRQ }

// Decompose builds the flipped transpose, runs the Householder kernel, and
// un-flips the factors.
//
// Implementation stages:
//   - Stage 1: lifecycle begin; B[j][i] = A[m-1-i][j] assembled in one pass.
//   - Stage 2: B = Q₀·R₀ via householderQR/householderQ (B is n×m, any shape
//     accepted by the kernel).
//   - Stage 3: R[i][j] = R₀[n-1-j][m-1-i] over R₀'s trapezoid,
//     Q[i][j] = Q₀[j][n-1-i].
//
// Errors:
//   - ErrNotReady, ErrLocked (lifecycle). Any shape is accepted.
//
// Complexity:
//   - Time O(n^2*max(m,n)), Space O(n^2).
func (d *RQDecomposer) Decompose() error {
	if err := d.begin(); err != nil {
		return decompErrorf(opDecompose, err)
	}

	m, n := d.input.Rows(), d.input.Cols()

	// B = (J_m·A)ᵀ, assembled directly from the input.
	b := zeroRows(n, m)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			v, err = d.input.At(m-1-i, j)
			if err != nil {
				d.end(false)
				return decompErrorf(opDecompose, err)
			}
			b[j][i] = v
		}
	}

	rdiag := householderQR(b, n, m)
	q0 := householderQ(b, n, m)

	// R₀ is n×m upper trapezoidal; R = J_m·R₀ᵀ·J_n flips it into the
	// right-aligned upper triangular m×n frame.
	kMax := len(rdiag)
	r := zeroRows(m, n)
	for i = 0; i < kMax; i++ {
		r[m-1-i][n-1-i] = rdiag[i]
		for j = i + 1; j < m; j++ {
			r[m-1-j][n-1-i] = b[i][j]
		}
	}

	// Q = J_n·Q₀ᵀ.
	q := zeroRows(n, n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			q[i][j] = q0[j][n-1-i]
		}
	}

	d.r, d.q = r, q
	d.m, d.n = m, n
	d.end(true)

	return nil
}

// R returns the upper triangular factor (m×n) as a fresh matrix. For wide
// inputs the triangle is right-aligned: R[i][j] = 0 whenever j-i < n-m.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m*n).
func (d *RQDecomposer) R() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opRQR, err)
	}
	out := zeroRows(d.m, d.n)
	for i := 0; i < d.m; i++ {
		copy(out[i], d.r[i])
	}

	return rowsToDense(out, d.m, d.n), nil
}

// Q returns the orthogonal factor (n×n) as a fresh matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(n*n).
func (d *RQDecomposer) Q() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opRQQ, err)
	}
	out := zeroRows(d.n, d.n)
	for i := 0; i < d.n; i++ {
		copy(out[i], d.q[i])
	}

	return rowsToDense(out, d.n, d.n), nil
}
