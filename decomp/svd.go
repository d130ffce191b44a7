// SPDX-License-Identifier: MIT
// Package decomp: singular value decomposition.
//
// Purpose:
//   - Factor A = U·W·Vᵀ for any m×n input with k = min(m,n): U (m×k) and
//     V (n×k) with orthonormal columns, W = diag(w) with w ∈ ℝᵏ nonnegative
//     and sorted descending.
//   - Derive rank, nullity, orthonormal range/nullspace bases, condition
//     numbers, and the minimum-norm least-squares solver from the factors.
//
// Algorithm:
//   - Householder bidiagonalization followed by implicit-shift QR iteration
//     on the bidiagonal form (Golub-Kahan). The reduction kernel requires
//     rows >= cols; wide inputs are handled by factoring Aᵀ and swapping the
//     roles of U and V.
//
// Determinism:
//   - Fixed reduction and sweep order, descending sort with index-order tie
//     breaking, and a sign canonicalization pass make identical inputs
//     produce bit-identical factors.

package decomp

import (
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opSVDU         = "SingularValueDecomposer.U"
	opSVDV         = "SingularValueDecomposer.V"
	opSVDW         = "SingularValueDecomposer.W"
	opSVDValues    = "SingularValueDecomposer.SingularValues"
	opSVDRank      = "SingularValueDecomposer.Rank"
	opSVDNullity   = "SingularValueDecomposer.Nullity"
	opSVDRange     = "SingularValueDecomposer.Range"
	opSVDNullspace = "SingularValueDecomposer.Nullspace"
	opSVDCond      = "SingularValueDecomposer.ConditionNumber"
	opSVDRCond     = "SingularValueDecomposer.ReciprocalConditionNumber"
	opSVDConverged = "SingularValueDecomposer.Converged"
)

// SingularValueDecomposer factors an m×n matrix of any shape as A = U·W·Vᵀ.
//
// Convergence policy: by default the implicit-shift iteration degrades
// gracefully when a singular value exhausts its iteration budget: Decompose
// completes with the best available values and Converged() reports false.
// WithStrictConvergence switches to failing Decompose with ErrNotConverged.
//
// Not goroutine-safe; confine each instance to a single owner.
type SingularValueDecomposer struct {
	state
	opts Options

	u         [][]float64 // m×k left singular vectors
	v         [][]float64 // n×k right singular vectors
	w         []float64   // k singular values, sorted descending
	m, n      int
	converged bool
}

// NewSingularValueDecomposer returns an empty (NOT_READY) SVD with the given
// options applied on top of defaults.
//
// Errors:
//   - ErrInvalidIterations when WithMaxIterations received n <= 0.
//
// Complexity: O(k) for k options.
func NewSingularValueDecomposer(opts ...Option) (*SingularValueDecomposer, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, decompErrorf("NewSingularValueDecomposer", err)
	}

	return &SingularValueDecomposer{opts: o}, nil
}

// Type returns TypeSVD. Complexity: O(1).
func (d *SingularValueDecomposer) Type() Type { return TypeSVD }

// Decompose runs the full factorization on a copy of the input.
//
// Implementation stages:
//   - Stage 1: lifecycle begin; copy the input (transposed when m < n so
//     the reduction always sees rows >= cols).
//   - Stage 2: bidiagonalize, accumulate U and V, diagonalize by
//     implicit-shift QR sweeps (per-value budget from WithMaxIterations).
//   - Stage 3: swap U/V back for wide inputs, sort singular values
//     descending with their vector columns, canonicalize column signs.
//
// Errors:
//   - ErrNotReady, ErrLocked (lifecycle), ErrNotConverged (strict mode only).
//
// Complexity:
//   - Time O(max(m,n)*min(m,n)^2), Space O(m*n).
func (d *SingularValueDecomposer) Decompose() error {
	if err := d.begin(); err != nil {
		return decompErrorf(opDecompose, err)
	}

	m, n := d.input.Rows(), d.input.Cols()

	var (
		u, v [][]float64
		w    []float64
		ok   bool
	)
	if m >= n {
		a, err := cloneRows(d.input)
		if err != nil {
			d.end(false)
			return decompErrorf(opDecompose, err)
		}
		w, v, ok = svdGolubKahan(a, m, n, d.opts.maxIterations)
		u = a
	} else {
		// Aᵀ = V·W·Uᵀ, so factoring the transpose swaps the vector roles.
		at := zeroRows(n, m)
		var i, j int
		var val float64
		var err error
		for i = 0; i < m; i++ {
			for j = 0; j < n; j++ {
				val, err = d.input.At(i, j)
				if err != nil {
					d.end(false)
					return decompErrorf(opDecompose, err)
				}
				at[j][i] = val
			}
		}
		w, u, ok = svdGolubKahan(at, n, m, d.opts.maxIterations)
		v = at
	}
	if !ok && d.opts.strictConvergence {
		d.end(false)
		return decompErrorf(opDecompose, ErrNotConverged)
	}

	sortSingular(u, v, w)
	canonicalizeSigns(u, v, len(w))

	d.u, d.v, d.w = u, v, w
	d.m, d.n = m, n
	d.converged = ok
	d.end(true)

	return nil
}

// svdGolubKahan reduces a (r×c, r >= c) to diagonal form in place: on return
// a holds the left singular vectors, w the unsorted singular values, and v
// the right singular vectors. ok reports whether every value converged
// within maxIts implicit-shift sweeps.
//
// This is the classical two-phase reduction: Householder bidiagonalization
// with scaled columns/rows, then QR iteration with shifts taken from the
// trailing 2×2 minor. Splitting and cancellation tests use the bidiagonal
// norm anorm as the floating-point scale.
func svdGolubKahan(a [][]float64, r, c int, maxIts int) (w []float64, v [][]float64, ok bool) {
	w = make([]float64, c)
	v = zeroRows(c, c)
	rv1 := make([]float64, c) // superdiagonal workspace
	ok = true

	var (
		i, its, j, jj, k, l, nm int
		cc, f, g, h, s, scale   float64
		x, y, z, anorm          float64
	)

	// Householder reduction to bidiagonal form.
	for i = 0; i < c; i++ {
		l = i + 1
		rv1[i] = scale * g
		g, s, scale = 0, 0, 0
		if i < r {
			for k = i; k < r; k++ {
				scale += math.Abs(a[k][i])
			}
			if scale != 0 {
				for k = i; k < r; k++ {
					a[k][i] /= scale
					s += a[k][i] * a[k][i]
				}
				f = a[i][i]
				g = -withSign(math.Sqrt(s), f)
				h = f*g - s
				a[i][i] = f - g
				for j = l; j < c; j++ {
					s = 0
					for k = i; k < r; k++ {
						s += a[k][i] * a[k][j]
					}
					f = s / h
					for k = i; k < r; k++ {
						a[k][j] += f * a[k][i]
					}
				}
				for k = i; k < r; k++ {
					a[k][i] *= scale
				}
			}
		}
		w[i] = scale * g
		g, s, scale = 0, 0, 0
		if i < r && i != c-1 {
			for k = l; k < c; k++ {
				scale += math.Abs(a[i][k])
			}
			if scale != 0 {
				for k = l; k < c; k++ {
					a[i][k] /= scale
					s += a[i][k] * a[i][k]
				}
				f = a[i][l]
				g = -withSign(math.Sqrt(s), f)
				h = f*g - s
				a[i][l] = f - g
				for k = l; k < c; k++ {
					rv1[k] = a[i][k] / h
				}
				for j = l; j < r; j++ {
					s = 0
					for k = l; k < c; k++ {
						s += a[j][k] * a[i][k]
					}
					for k = l; k < c; k++ {
						a[j][k] += s * rv1[k]
					}
				}
				for k = l; k < c; k++ {
					a[i][k] *= scale
				}
			}
		}
		anorm = math.Max(anorm, math.Abs(w[i])+math.Abs(rv1[i]))
	}

	// Accumulate right-hand transformations.
	for i = c - 1; i >= 0; i-- {
		if i < c-1 {
			if g != 0 {
				for j = l; j < c; j++ {
					// Double division avoids possible underflow.
					v[j][i] = (a[i][j] / a[i][l]) / g
				}
				for j = l; j < c; j++ {
					s = 0
					for k = l; k < c; k++ {
						s += a[i][k] * v[k][j]
					}
					for k = l; k < c; k++ {
						v[k][j] += s * v[k][i]
					}
				}
			}
			for j = l; j < c; j++ {
				v[i][j], v[j][i] = 0, 0
			}
		}
		v[i][i] = 1.0
		g = rv1[i]
		l = i
	}

	// Accumulate left-hand transformations.
	for i = c - 1; i >= 0; i-- {
		l = i + 1
		g = w[i]
		for j = l; j < c; j++ {
			a[i][j] = 0
		}
		if g != 0 {
			g = 1.0 / g
			for j = l; j < c; j++ {
				s = 0
				for k = l; k < r; k++ {
					s += a[k][i] * a[k][j]
				}
				f = (s / a[i][i]) * g
				for k = i; k < r; k++ {
					a[k][j] += f * a[k][i]
				}
			}
			for j = i; j < r; j++ {
				a[j][i] *= g
			}
		} else {
			for j = i; j < r; j++ {
				a[j][i] = 0
			}
		}
		a[i][i] += 1.0
	}

	// Diagonalize the bidiagonal form: one singular value per outer step.
	for k = c - 1; k >= 0; k-- {
		converged := false
		for its = 0; its < maxIts; its++ {
			// Test for splitting; rv1[0] is always zero, so l reaches 0 only
			// through the superdiagonal test.
			flag := true
			for l = k; l >= 0; l-- {
				nm = l - 1
				if math.Abs(rv1[l])+anorm == anorm {
					flag = false
					break
				}
				if math.Abs(w[nm])+anorm == anorm {
					break
				}
			}
			if flag {
				// Cancellation of rv1[l] when w[l-1] is negligible.
				cc, s = 0, 1
				for i = l; i <= k; i++ {
					f = s * rv1[i]
					rv1[i] = cc * rv1[i]
					if math.Abs(f)+anorm == anorm {
						break
					}
					g = w[i]
					h = math.Hypot(f, g)
					w[i] = h
					h = 1.0 / h
					cc = g * h
					s = -f * h
					for j = 0; j < r; j++ {
						y = a[j][nm]
						z = a[j][i]
						a[j][nm] = y*cc + z*s
						a[j][i] = z*cc - y*s
					}
				}
			}
			z = w[k]
			if l == k {
				// Converged; enforce nonnegative singular value.
				if z < 0 {
					w[k] = -z
					for j = 0; j < c; j++ {
						v[j][k] = -v[j][k]
					}
				}
				converged = true
				break
			}

			// Shift from the bottom 2×2 minor.
			x = w[l]
			nm = k - 1
			y = w[nm]
			g = rv1[nm]
			h = rv1[k]
			f = ((y-z)*(y+z) + (g-h)*(g+h)) / (2.0 * h * y)
			g = math.Hypot(f, 1.0)
			f = ((x-z)*(x+z) + h*(y/(f+withSign(g, f))-h)) / x

			// Next QR transformation (Givens rotations down the band).
			cc, s = 1, 1
			for j = l; j <= nm; j++ {
				i = j + 1
				g = rv1[i]
				y = w[i]
				h = s * g
				g = cc * g
				z = math.Hypot(f, h)
				rv1[j] = z
				cc = f / z
				s = h / z
				f = x*cc + g*s
				g = g*cc - x*s
				h = y * s
				y *= cc
				for jj = 0; jj < c; jj++ {
					x = v[jj][j]
					z = v[jj][i]
					v[jj][j] = x*cc + z*s
					v[jj][i] = z*cc - x*s
				}
				z = math.Hypot(f, h)
				w[j] = z
				if z != 0 {
					z = 1.0 / z
					cc = f * z
					s = h * z
				}
				f = cc*g + s*y
				x = cc*y - s*g
				for jj = 0; jj < r; jj++ {
					y = a[jj][j]
					z = a[jj][i]
					a[jj][j] = y*cc + z*s
					a[jj][i] = z*cc - y*s
				}
			}
			rv1[l] = 0
			rv1[k] = f
			w[k] = x
		}
		if !converged {
			ok = false // best-available value stays in w[k]
			if w[k] < 0 {
				w[k] = -w[k]
				for j = 0; j < c; j++ {
					v[j][k] = -v[j][k]
				}
			}
		}
	}

	return w, v, ok
}

// withSign returns |a| carrying the sign of b (b == 0 counts as positive).
func withSign(a, b float64) float64 {
	if b >= 0 {
		return math.Abs(a)
	}

	return -math.Abs(a)
}

// sortSingular orders w descending (stable in index order on ties) and
// permutes the columns of u and v to match. Selection sort: k is small and
// the column swaps dominate anyway.
func sortSingular(u, v [][]float64, w []float64) {
	k := len(w)
	var i, j, best int
	for i = 0; i < k-1; i++ {
		best = i
		for j = i + 1; j < k; j++ {
			if w[j] > w[best] {
				best = j
			}
		}
		if best == i {
			continue
		}
		w[i], w[best] = w[best], w[i]
		for j = range u {
			u[j][i], u[j][best] = u[j][best], u[j][i]
		}
		for j = range v {
			v[j][i], v[j][best] = v[j][best], v[j][i]
		}
	}
}

// canonicalizeSigns fixes the sign ambiguity of each of the k singular
// pairs: the entry of largest magnitude in each V column (lowest index on
// ties) is made nonnegative, negating the matching U column to preserve
// A = U·W·Vᵀ.
func canonicalizeSigns(u, v [][]float64, k int) {
	var i, j, lead int
	for j = 0; j < k; j++ {
		lead = 0
		for i = 1; i < len(v); i++ {
			if math.Abs(v[i][j]) > math.Abs(v[lead][j]) {
				lead = i
			}
		}
		if v[lead][j] >= 0 {
			continue
		}
		for i = range v {
			v[i][j] = -v[i][j]
		}
		for i = range u {
			u[i][j] = -u[i][j]
		}
	}
}

// U returns the left singular vectors (m×k, k = min(m,n)) as a fresh matrix.
// Columns whose singular value is nonzero are orthonormal.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m*k).
func (d *SingularValueDecomposer) U() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDU, err)
	}
	k := len(d.w)
	out := zeroRows(d.m, k)
	for i := 0; i < d.m; i++ {
		copy(out[i], d.u[i][:k])
	}

	return rowsToDense(out, d.m, k), nil
}

// V returns the right singular vectors (n×k, k = min(m,n)) as a fresh
// matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(n*k).
func (d *SingularValueDecomposer) V() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDV, err)
	}
	k := len(d.w)
	out := zeroRows(d.n, k)
	for i := 0; i < d.n; i++ {
		copy(out[i], d.v[i][:k])
	}

	return rowsToDense(out, d.n, k), nil
}

// W returns diag(w) as a fresh k×k matrix, k = min(m,n).
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(k*k).
func (d *SingularValueDecomposer) W() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDW, err)
	}
	k := len(d.w)
	out := zeroRows(k, k)
	for i := 0; i < k; i++ {
		out[i][i] = d.w[i]
	}

	return rowsToDense(out, k, k), nil
}

// SingularValues returns a copy of w (length min(m,n)), sorted descending.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(k).
func (d *SingularValueDecomposer) SingularValues() ([]float64, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDValues, err)
	}
	cp := make([]float64, len(d.w))
	copy(cp, d.w)

	return cp, nil
}

// Converged reports whether every singular value converged within the
// iteration budget. Always true after a strict-mode Decompose succeeds.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(1).
func (d *SingularValueDecomposer) Converged() (bool, error) {
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opSVDConverged, err)
	}

	return d.converged, nil
}

// threshold is the default numerical-zero boundary for singular values:
// max(m,n) · eps · σmax, the standard machine-precision rank convention.
func (d *SingularValueDecomposer) threshold() float64 {
	dim := d.m
	if d.n > dim {
		dim = d.n
	}

	return float64(dim) * epsMachine * d.w[0]
}

// Rank returns the number of singular values above the default threshold.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(k).
func (d *SingularValueDecomposer) Rank() (int, error) {
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opSVDRank, err)
	}

	return d.rank(), nil
}

func (d *SingularValueDecomposer) rank() int {
	tol := d.threshold()
	rank := 0
	for _, sv := range d.w {
		if sv > tol {
			rank++
		}
	}

	return rank
}

// Nullity returns the number of numerically zero singular values, so that
// Rank() + Nullity() = min(m,n) always holds.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(k).
func (d *SingularValueDecomposer) Nullity() (int, error) {
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opSVDNullity, err)
	}

	return len(d.w) - d.rank(), nil
}

// Range returns an orthonormal basis of the column space: the U columns
// whose singular value exceeds the default threshold, as an m×rank matrix.
//
// Errors:
//   - ErrNotAvailable (lifecycle), ErrZeroRank when the matrix is
//     numerically zero and no basis column exists.
//
// Complexity: O(m*k).
func (d *SingularValueDecomposer) Range() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDRange, err)
	}
	rank := d.rank()
	if rank == 0 {
		return nil, decompErrorf(opSVDRange, ErrZeroRank)
	}
	out := zeroRows(d.m, rank)
	for i := 0; i < d.m; i++ {
		copy(out[i], d.u[i][:rank]) // w is sorted, basis columns are leading
	}

	return rowsToDense(out, d.m, rank), nil
}

// Nullspace returns an orthonormal basis of right singular directions with
// numerically zero singular value: the trailing V columns, as an n×nullity
// matrix. A·x vanishes for every returned column x.
//
// Errors:
//   - ErrNotAvailable (lifecycle), ErrZeroNullity when no singular value is
//     numerically zero and no basis column exists.
//
// Complexity: O(n*k).
func (d *SingularValueDecomposer) Nullspace() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSVDNullspace, err)
	}
	k := len(d.w)
	rank := d.rank()
	nullity := k - rank
	if nullity == 0 {
		return nil, decompErrorf(opSVDNullspace, ErrZeroNullity)
	}
	out := zeroRows(d.n, nullity)
	for i := 0; i < d.n; i++ {
		copy(out[i], d.v[i][rank:k]) // trailing columns pair with the zeros
	}

	return rowsToDense(out, d.n, nullity), nil
}

// ConditionNumber returns σmax/σmin (2-norm condition number); +Inf when
// σmin is zero.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(1).
func (d *SingularValueDecomposer) ConditionNumber() (float64, error) {
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opSVDCond, err)
	}
	smin := d.w[len(d.w)-1]
	if smin == 0 {
		return math.Inf(1), nil
	}

	return d.w[0] / smin, nil
}

// ReciprocalConditionNumber returns σmin/σmax, the overflow-safe companion
// of ConditionNumber; 0 for singular or zero matrices.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(1).
func (d *SingularValueDecomposer) ReciprocalConditionNumber() (float64, error) {
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opSVDRCond, err)
	}
	if d.w[0] == 0 {
		return 0, nil
	}

	return d.w[len(d.w)-1] / d.w[0], nil
}

// Solve returns the minimum-norm least-squares solution X (n×p) of A·X = B:
// X = V · diag(1/wᵢ for wᵢ > tol, else 0) · Uᵀ · B, the Moore-Penrose
// pseudoinverse application. Zeroing the contributions of singular values at
// or below tol makes this the one solver that never fails on rank-deficient
// or ill-conditioned systems.
//
// Errors:
//   - ErrInvalidTolerance, ErrNotAvailable (lifecycle), ErrNilMatrix,
//     ErrWrongSize (B.Rows() != m).
//
// Complexity:
//   - Time O(k*(m+n)*p), Space O(n*p).
func (d *SingularValueDecomposer) Solve(b matrix.Matrix, tol float64) (matrix.Matrix, error) {
	if err := validateTolerance(tol); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.m {
		return nil, decompErrorf(opSolve, ErrWrongSize)
	}

	bRows, err := cloneRows(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	m, n, p := d.m, d.n, b.Cols()
	kDim := len(d.w)

	// Y ← diag(1/w)·Uᵀ·B with hard zeroing at or below the tolerance.
	y := zeroRows(kDim, p)
	var i, j, k int
	var s float64
	for k = 0; k < kDim; k++ {
		if d.w[k] <= tol {
			continue
		}
		for j = 0; j < p; j++ {
			s = 0
			for i = 0; i < m; i++ {
				s += d.u[i][k] * bRows[i][j]
			}
			y[k][j] = s / d.w[k]
		}
	}

	// X ← V·Y.
	x := zeroRows(n, p)
	for i = 0; i < n; i++ {
		for k = 0; k < kDim; k++ {
			if d.v[i][k] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				x[i][j] += d.v[i][k] * y[k][j]
			}
		}
	}

	return rowsToDense(x, n, p), nil
}
