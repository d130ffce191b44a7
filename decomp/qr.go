// SPDX-License-Identifier: MIT
// Package decomp: QR factorization by Householder reflections.
//
// Purpose:
//   - Factor A = Q·R with Q orthogonal (m×m) and R upper trapezoidal (m×n),
//     using compact Householder storage: reflector vectors below the
//     diagonal, R above it, R's diagonal in a separate slice.
//   - Provide the least-squares solver min ‖A·X − B‖₂ for full-rank tall
//     systems via Qᵀ application and back substitution.
//
// Determinism:
//   - Fixed reflector order and sign convention (diagonal takes the sign
//     opposite to the pivot element); identical inputs produce bit-identical
//     factors.

package decomp

import (
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opQRQ          = "QRDecomposer.Q"
	opQRR          = "QRDecomposer.R"
	opQRIsFullRank = "QRDecomposer.IsFullRank"
	opQRSolveInto  = "QRDecomposer.SolveInto"
)

// householderQR factors a (r×c, any shape) in place into compact Householder
// form: column k of a holds the reflector vector in rows k..r-1 (with the
// leading component already incremented by one), R's off-diagonal entries sit
// above the diagonal, and the returned slice holds R's diagonal.
//
// Shared by QRDecomposer and RQDecomposer; the latter feeds it a flipped
// transpose, which is why the kernel accepts r < c.
//
// Complexity: Time O(r*c*min(r,c)), Space O(min(r,c)).
func householderQR(a [][]float64, r, c int) []float64 {
	kMax := r
	if c < kMax {
		kMax = c
	}
	rdiag := make([]float64, kMax)

	var (
		i, j, k int
		nrm, s  float64
	)
	for k = 0; k < kMax; k++ {
		// 2-norm of column k below the diagonal, overflow-safe via Hypot.
		nrm = 0
		for i = k; i < r; i++ {
			nrm = math.Hypot(nrm, a[i][k])
		}
		if nrm != 0 {
			if a[k][k] < 0 {
				nrm = -nrm
			}
			for i = k; i < r; i++ {
				a[i][k] /= nrm
			}
			a[k][k] += 1.0
			// Apply the reflector to the remaining columns.
			for j = k + 1; j < c; j++ {
				s = 0
				for i = k; i < r; i++ {
					s += a[i][k] * a[i][j]
				}
				s = -s / a[k][k]
				for i = k; i < r; i++ {
					a[i][j] += s * a[i][k]
				}
			}
		}
		rdiag[k] = -nrm
	}

	return rdiag
}

// householderQ accumulates the full orthogonal factor Q (r×r) from compact
// Householder storage by applying the reflectors to the identity in reverse
// order. Columns left of the current reflector are still untouched unit
// vectors, so the inner loop starts at k.
//
// Complexity: Time O(r^2*min(r,c)), Space O(r^2).
func householderQ(a [][]float64, r, c int) [][]float64 {
	kMax := r
	if c < kMax {
		kMax = c
	}
	q := identityRows(r)

	var (
		i, j, k int
		s       float64
	)
	for k = kMax - 1; k >= 0; k-- {
		if a[k][k] == 0 {
			continue // zero column, reflector degenerates to identity
		}
		for j = k; j < r; j++ {
			s = 0
			for i = k; i < r; i++ {
				s += a[i][k] * q[i][j]
			}
			s = -s / a[k][k]
			for i = k; i < r; i++ {
				q[i][j] += s * a[i][k]
			}
		}
	}

	return q
}

// QRDecomposer factors an m×n matrix (m >= n) as A = Q·R with Q orthogonal
// (m×m) and R upper trapezoidal (m×n, zero below row n).
//
// Not goroutine-safe; confine each instance to a single owner.
type QRDecomposer struct {
	state

	qr    [][]float64 // compact Householder storage
	rdiag []float64   // diagonal of R
	norm  float64     // ‖A‖∞ of the input, the scale for rank thresholds
	m, n  int         // factored dimensions
}

// NewQRDecomposer returns an empty (NOT_READY) QR decomposer.
// Complexity: O(1).
func NewQRDecomposer() *QRDecomposer { return &QRDecomposer{} }

// Type returns TypeQR. Complexity: O(1).
func (d *QRDecomposer) Type() Type { return TypeQR }

// Decompose runs the Householder kernel on a copy of the input.
//
// Behavior highlights:
//   - rows < cols is rejected with ErrWrongSize; rank deficiency is NOT an
//     error here; it is a query-time property (IsFullRank/Solve).
//
// Errors:
//   - ErrNotReady, ErrLocked (lifecycle), ErrWrongSize (m < n).
//
// Complexity:
//   - Time O(m*n^2), Space O(m*n).
func (d *QRDecomposer) Decompose() error {
	if err := d.begin(); err != nil {
		return decompErrorf(opDecompose, err)
	}

	m, n := d.input.Rows(), d.input.Cols()
	if m < n {
		d.end(false)
		return decompErrorf(opDecompose, ErrWrongSize)
	}

	a, err := cloneRows(d.input)
	if err != nil {
		d.end(false)
		return decompErrorf(opDecompose, err)
	}
	norm := infinityNormRows(a)

	rdiag := householderQR(a, m, n)

	d.qr, d.rdiag, d.norm = a, rdiag, norm
	d.m, d.n = m, n
	d.end(true)

	return nil
}

// Q returns the full orthogonal factor (m×m) as a fresh matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m^2*n).
func (d *QRDecomposer) Q() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opQRQ, err)
	}
	q := householderQ(d.qr, d.m, d.n)

	return rowsToDense(q, d.m, d.m), nil
}

// R returns the upper trapezoidal factor (m×n) as a fresh matrix; rows n..m-1
// are zero so that A = Q·R holds with the full m×m Q.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m*n).
func (d *QRDecomposer) R() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opQRR, err)
	}
	r := zeroRows(d.m, d.n)
	for i := 0; i < d.n; i++ {
		r[i][i] = d.rdiag[i]
		copy(r[i][i+1:d.n], d.qr[i][i+1:d.n])
	}

	return rowsToDense(r, d.m, d.n), nil
}

// IsFullRank reports whether every diagonal of R exceeds tol·‖A‖∞ in
// magnitude. tol = 0 degenerates to an exact zero test.
//
// Errors:
//   - ErrInvalidTolerance (checked first), ErrNotAvailable (lifecycle).
//
// Complexity: O(n).
func (d *QRDecomposer) IsFullRank(tol float64) (bool, error) {
	if err := validateTolerance(tol); err != nil {
		return false, decompErrorf(opQRIsFullRank, err)
	}
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opQRIsFullRank, err)
	}
	threshold := tol * d.norm
	for k := 0; k < d.n; k++ {
		if math.Abs(d.rdiag[k]) <= threshold {
			return false, nil
		}
	}

	return true, nil
}

// Solve returns the least-squares solution X (n×p) of A·X = B: it minimizes
// ‖A·X − B‖₂ column-wise; for square full-rank A this is the exact solution.
//
// Implementation stages:
//   - Stage 1: validation (tolerance, lifecycle, B.Rows() == m, full rank at
//     tol → ErrRankDeficient otherwise).
//   - Stage 2: Y ← Qᵀ·B by applying the stored reflectors in order, then back
//     substitution against R over the top n rows.
//
// Errors:
//   - ErrInvalidTolerance, ErrNotAvailable, ErrWrongSize, ErrRankDeficient.
//
// Complexity:
//   - Time O(m*n*p), Space O(m*p).
func (d *QRDecomposer) Solve(b matrix.Matrix, tol float64) (matrix.Matrix, error) {
	x, err := d.solveRows(b, tol)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}

	return rowsToDense(x, d.n, b.Cols()), nil
}

// SolveInto is the allocation-conscious variant of Solve: the solution is
// written into dst, which must be n×p. Useful in iterative refinement loops
// that solve against the same factorization many times.
//
// Errors: those of Solve, plus ErrNilMatrix/ErrWrongSize for an unusable dst.
// Complexity: Time O(m*n*p), Space O(m*p) working storage.
func (d *QRDecomposer) SolveInto(b matrix.Matrix, tol float64, dst *matrix.Dense) error {
	if dst == nil {
		return decompErrorf(opQRSolveInto, matrix.ErrNilMatrix)
	}
	x, err := d.solveRows(b, tol)
	if err != nil {
		return decompErrorf(opQRSolveInto, err)
	}
	p := b.Cols()
	if dst.Rows() != d.n || dst.Cols() != p {
		return decompErrorf(opQRSolveInto, ErrWrongSize)
	}
	data := dst.Data()
	for i := 0; i < d.n; i++ {
		copy(data[i*p:(i+1)*p], x[i][:p])
	}

	return nil
}

// solveRows is the shared least-squares core; errors are returned unwrapped
// for the exported entry points to tag.
func (d *QRDecomposer) solveRows(b matrix.Matrix, tol float64) ([][]float64, error) {
	if err := validateTolerance(tol); err != nil {
		return nil, err
	}
	if err := d.requireAvailable(); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, err
	}
	if b.Rows() != d.m {
		return nil, ErrWrongSize
	}
	threshold := tol * d.norm
	for k := 0; k < d.n; k++ {
		if math.Abs(d.rdiag[k]) <= threshold {
			return nil, ErrRankDeficient
		}
	}

	y, err := cloneRows(b)
	if err != nil {
		return nil, err
	}
	m, n, p := d.m, d.n, b.Cols()

	var (
		i, j, k int
		s       float64
	)
	// Y ← Qᵀ·B: apply the stored reflectors in factorization order.
	for k = 0; k < n; k++ {
		if d.qr[k][k] == 0 {
			continue
		}
		for j = 0; j < p; j++ {
			s = 0
			for i = k; i < m; i++ {
				s += d.qr[i][k] * y[i][j]
			}
			s = -s / d.qr[k][k]
			for i = k; i < m; i++ {
				y[i][j] += s * d.qr[i][k]
			}
		}
	}
	// Back substitution against R over the top n rows.
	for k = n - 1; k >= 0; k-- {
		for j = 0; j < p; j++ {
			y[k][j] /= d.rdiag[k]
		}
		for i = 0; i < k; i++ {
			if d.qr[i][k] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				y[i][j] -= y[k][j] * d.qr[i][k]
			}
		}
	}

	return y[:n], nil
}
