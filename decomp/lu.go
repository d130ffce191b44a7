// SPDX-License-Identifier: MIT
// Package decomp: LU factorization with partial pivoting.
//
// Purpose:
//   - Factor P·A = L·U for any m×n input with m >= n, selecting the pivot row
//     with maximum absolute value in each column for numerical stability.
//   - Derive determinant, singularity predicate, and a multi-RHS triangular
//     solver from the cached factors.
//
// Determinism:
//   - Fixed column-major elimination order; pivot ties resolve to the lowest
//     row index, so identical inputs always produce identical factors.

package decomp

import (
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opLUL           = "LUDecomposer.L"
	opLUU           = "LUDecomposer.U"
	opLUPivot       = "LUDecomposer.Pivot"
	opLUDeterminant = "LUDecomposer.Determinant"
	opLUIsSingular  = "LUDecomposer.IsSingular"
)

// LUDecomposer factors an m×n matrix (m >= n) as P·A = L·U with partial
// pivoting: L is unit-lower trapezoidal (m×n), U is upper triangular (n×n),
// and P is the row permutation recorded in Pivot.
//
// Not goroutine-safe; confine each instance to a single owner.
type LUDecomposer struct {
	state

	lu    [][]float64 // combined factors after elimination (L below, U on/above diagonal)
	pivot []int       // pivot[i] = original row index now stored at row i
	sign  float64     // permutation parity: +1 for even swap count, -1 for odd
	norm  float64     // ‖A‖∞ of the input, the scale for singularity thresholds
	m, n  int         // factored dimensions
}

// NewLUDecomposer returns an empty (NOT_READY) LU decomposer.
// Complexity: O(1).
func NewLUDecomposer() *LUDecomposer { return &LUDecomposer{} }

// Type returns TypeLU. Complexity: O(1).
func (d *LUDecomposer) Type() Type { return TypeLU }

// Decompose runs partial-pivoted Gaussian elimination on a copy of the input.
//
// Implementation:
//   - Stage 1: lifecycle begin (ErrNotReady/ErrLocked); copy input, record ‖A‖∞.
//   - Stage 2: for each column k, select the pivot row maximizing |a[i][k]|
//     over the unreduced rows, swap it up, and eliminate below; multipliers
//     are stored in place of the zeroed entries (compact LU form).
//
// Behavior highlights:
//   - A zero pivot column is left as-is rather than failing: singularity is a
//     query-time property (IsSingular/Solve with a tolerance), not a
//     decomposition failure.
//   - rows < cols is rejected with ErrWrongSize before any work.
//
// Errors:
//   - ErrNotReady, ErrLocked (lifecycle), ErrWrongSize (m < n).
//
// Complexity:
//   - Time O(m*n^2), Space O(m*n).
func (d *LUDecomposer) Decompose() error {
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

	// Initialize the permutation as identity.
	pivot := make([]int, m)
	for i := range pivot {
		pivot[i] = i
	}
	sign := 1.0

	var (
		i, j, k, p int     // loop iterators and pivot row
		maxAbs, av float64 // pivot search temporaries
		mult       float64 // elimination multiplier
	)
	for k = 0; k < n; k++ {
		// Pivot search: largest |a[i][k]| over rows k..m-1 (ties → lowest i).
		p = k
		maxAbs = math.Abs(a[k][k])
		for i = k + 1; i < m; i++ {
			av = math.Abs(a[i][k])
			if av > maxAbs {
				maxAbs, p = av, i
			}
		}
		if p != k {
			a[p], a[k] = a[k], a[p] // O(1) row header swap over the arena
			pivot[p], pivot[k] = pivot[k], pivot[p]
			sign = -sign
		}
		if a[k][k] == 0 {
			continue // column is numerically empty below the pivot; see IsSingular
		}
		// Eliminate below the pivot, storing multipliers in the zeroed slots.
		for i = k + 1; i < m; i++ {
			mult = a[i][k] / a[k][k]
			a[i][k] = mult
			for j = k + 1; j < n; j++ {
				a[i][j] -= mult * a[k][j]
			}
		}
	}

	d.lu, d.pivot, d.sign, d.norm = a, pivot, sign, norm
	d.m, d.n = m, n
	d.end(true)

	return nil
}

// L returns the unit-lower trapezoidal factor (m×n) as a fresh matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m*n).
func (d *LUDecomposer) L() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opLUL, err)
	}
	l := zeroRows(d.m, d.n)
	for i := 0; i < d.m; i++ {
		for j := 0; j < d.n && j <= i; j++ {
			if j == i {
				l[i][j] = 1.0 // unit diagonal
			} else {
				l[i][j] = d.lu[i][j]
			}
		}
	}

	return rowsToDense(l, d.m, d.n), nil
}

// U returns the upper triangular factor (n×n) as a fresh matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(n*n).
func (d *LUDecomposer) U() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opLUU, err)
	}
	u := zeroRows(d.n, d.n)
	for i := 0; i < d.n; i++ {
		for j := i; j < d.n; j++ {
			u[i][j] = d.lu[i][j]
		}
	}

	return rowsToDense(u, d.n, d.n), nil
}

// Pivot returns a copy of the row permutation: entry i is the original row
// index stored at row i of L·U, i.e. (P·A)[i] = A[pivot[i]].
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(m).
func (d *LUDecomposer) Pivot() ([]int, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opLUPivot, err)
	}
	cp := make([]int, len(d.pivot))
	copy(cp, d.pivot)

	return cp, nil
}

// Determinant returns det(A) = sign(P) · Π U[i][i] for square inputs.
//
// Errors:
//   - ErrNotAvailable (lifecycle), ErrWrongSize (non-square input).
//
// Complexity: O(n).
func (d *LUDecomposer) Determinant() (float64, error) {
	if err := d.requireAvailable(); err != nil {
		return 0, decompErrorf(opLUDeterminant, err)
	}
	if d.m != d.n {
		return 0, decompErrorf(opLUDeterminant, ErrWrongSize)
	}
	det := d.sign
	for i := 0; i < d.n; i++ {
		det *= d.lu[i][i]
	}

	return det, nil
}

// IsSingular reports whether any diagonal of U falls at or below
// tol·‖A‖∞. tol = 0 degenerates to an exact zero-pivot test.
//
// Errors:
//   - ErrInvalidTolerance (checked first, independent of state),
//     ErrNotAvailable (lifecycle), ErrWrongSize (non-square input).
//
// Complexity: O(n).
func (d *LUDecomposer) IsSingular(tol float64) (bool, error) {
	if err := validateTolerance(tol); err != nil {
		return false, decompErrorf(opLUIsSingular, err)
	}
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf(opLUIsSingular, err)
	}
	if d.m != d.n {
		return false, decompErrorf(opLUIsSingular, ErrWrongSize)
	}
	threshold := tol * d.norm
	for i := 0; i < d.n; i++ {
		if math.Abs(d.lu[i][i]) <= threshold {
			return true, nil
		}
	}

	return false, nil
}

// Solve solves A·X = B for square A using the cached factors: permute B by
// the pivot, forward-substitute against unit L, back-substitute against U.
// Every column of B is solved independently.
//
// Implementation:
//   - Stage 1: parameter/lifecycle/shape validation; pivot magnitude check
//     against tol·‖A‖∞ (ErrSingular on failure).
//   - Stage 2: X ← P·B; forward then backward substitution in fixed order.
//
// Errors:
//   - ErrInvalidTolerance, ErrNotAvailable, ErrWrongSize (non-square A or
//     B.Rows() != A.Rows()), ErrSingular (pivot at or below threshold).
//
// Complexity:
//   - Time O(n^2 * p) for p right-hand sides, Space O(n*p).
func (d *LUDecomposer) Solve(b matrix.Matrix, tol float64) (matrix.Matrix, error) {
	if err := validateTolerance(tol); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if d.m != d.n {
		return nil, decompErrorf(opSolve, ErrWrongSize)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.m {
		return nil, decompErrorf(opSolve, ErrWrongSize)
	}

	// Reject pivots at or below the scaled tolerance before any arithmetic.
	n := d.n
	threshold := tol * d.norm
	for i := 0; i < n; i++ {
		if math.Abs(d.lu[i][i]) <= threshold {
			return nil, decompErrorf(opSolve, ErrSingular)
		}
	}

	bRows, err := cloneRows(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	p := b.Cols()

	// X ← P·B: row i of the permuted system is B[pivot[i]].
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = bRows[d.pivot[i]]
	}

	var i, j, k int
	// Forward substitution against unit-lower L (multipliers in d.lu).
	for i = 1; i < n; i++ {
		for k = 0; k < i; k++ {
			if d.lu[i][k] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				x[i][j] -= d.lu[i][k] * x[k][j]
			}
		}
	}
	// Backward substitution against U.
	for i = n - 1; i >= 0; i-- {
		for k = i + 1; k < n; k++ {
			if d.lu[i][k] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				x[i][j] -= d.lu[i][k] * x[k][j]
			}
		}
		for j = 0; j < p; j++ {
			x[i][j] /= d.lu[i][i]
		}
	}

	return rowsToDense(x, n, p), nil
}
