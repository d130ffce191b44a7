// SPDX-License-Identifier: MIT
// Package decomp: Cholesky factorization of symmetric positive-definite
// matrices.
//
// Purpose:
//   - Factor A = L·Lᵀ for square symmetric positive-definite (SPD) input,
//     building L row by row from the running partial sums.
//   - Decompose always completes; IsSPD records whether the input actually
//     satisfied the SPD preconditions, and Solve enforces it.
//
// Determinism:
//   - Fixed row-major accumulation order; identical inputs produce
//     bit-identical factors.

package decomp

import (
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opCholL = "CholeskyDecomposer.L"
	opCholR = "CholeskyDecomposer.R"
)

// CholeskyDecomposer factors a square SPD matrix A as A = L·Lᵀ with L lower
// triangular and strictly positive diagonal.
//
// Symmetry is checked with exact equality: an asymmetric input is an upstream
// construction bug, not a numerical condition, and should not pass silently
// at any tolerance. Callers holding a nearly-symmetric matrix should
// symmetrize it ((A+Aᵀ)/2) before decomposing.
//
// Not goroutine-safe; confine each instance to a single owner.
type CholeskyDecomposer struct {
	state

	l     [][]float64 // lower triangular factor
	n     int         // order of the factored matrix
	isSPD bool        // input was symmetric positive-definite
}

// NewCholeskyDecomposer returns an empty (NOT_READY) Cholesky decomposer.
// Complexity: O(1).
func NewCholeskyDecomposer() *CholeskyDecomposer { return &CholeskyDecomposer{} }

// Type returns TypeCholesky. Complexity: O(1).
func (d *CholeskyDecomposer) Type() Type { return TypeCholesky }

// Decompose computes the lower triangular factor.
//
// Implementation stages:
//   - Stage 1: lifecycle begin; ErrWrongSize for non-square input; copy.
//   - Stage 2: for each row j, compute L[j][k] (k < j) from partial sums and
//     L[j][j] = sqrt(A[j][j] - Σ L[j][k]²); verify A[k][j] == A[j][k] along
//     the way. A non-positive diagonal residual clears the SPD flag and
//     yields L[j][j] = 0 with the rest of the row forced to zero.
//
// Behavior highlights:
//   - Decompose succeeds even for non-SPD input; query IsSPD() afterwards.
//     This keeps "factor then inspect" pipelines single-pass, mirroring the
//     LU convention where singularity is a query-time property.
//
// Errors:
//   - ErrNotReady, ErrLocked (lifecycle), ErrWrongSize (non-square).
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func (d *CholeskyDecomposer) Decompose() error {
	if err := d.begin(); err != nil {
		return decompErrorf(opDecompose, err)
	}

	n := d.input.Rows()
	if d.input.Cols() != n {
		d.end(false)
		return decompErrorf(opDecompose, ErrWrongSize)
	}

	a, err := cloneRows(d.input)
	if err != nil {
		d.end(false)
		return decompErrorf(opDecompose, err)
	}

	l := zeroRows(n, n)
	isSPD := true

	var (
		j, k, i int
		sum, dd float64
	)
	for j = 0; j < n; j++ {
		dd = 0
		for k = 0; k < j; k++ {
			sum = 0
			for i = 0; i < k; i++ {
				sum += l[k][i] * l[j][i]
			}
			if l[k][k] != 0 {
				sum = (a[j][k] - sum) / l[k][k]
			} else {
				sum = 0 // degenerate column of a non-SPD input
			}
			l[j][k] = sum
			dd += sum * sum
			if a[k][j] != a[j][k] {
				isSPD = false // exact symmetry is part of the contract
			}
		}
		dd = a[j][j] - dd
		if dd <= 0 {
			isSPD = false
			dd = 0
		}
		l[j][j] = math.Sqrt(dd)
	}

	d.l, d.n, d.isSPD = l, n, isSPD
	d.end(true)

	return nil
}

// IsSPD reports whether the decomposed input was symmetric positive-definite.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(1).
func (d *CholeskyDecomposer) IsSPD() (bool, error) {
	if err := d.requireAvailable(); err != nil {
		return false, decompErrorf("CholeskyDecomposer.IsSPD", err)
	}

	return d.isSPD, nil
}

// L returns the lower triangular factor (n×n) as a fresh matrix.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(n*n).
func (d *CholeskyDecomposer) L() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opCholL, err)
	}
	out := zeroRows(d.n, d.n)
	for i := 0; i < d.n; i++ {
		copy(out[i][:i+1], d.l[i][:i+1])
	}

	return rowsToDense(out, d.n, d.n), nil
}

// R returns the upper triangular factor R = Lᵀ (n×n) as a fresh matrix,
// for callers expecting the A = Rᵀ·R convention.
// Errors: ErrNotAvailable before a successful Decompose.
// Complexity: O(n*n).
func (d *CholeskyDecomposer) R() (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opCholR, err)
	}
	out := zeroRows(d.n, d.n)
	for i := 0; i < d.n; i++ {
		for j := 0; j <= i; j++ {
			out[j][i] = d.l[i][j]
		}
	}

	return rowsToDense(out, d.n, d.n), nil
}

// Solve solves A·X = B using the cached factor: forward substitution against
// L, then backward substitution against Lᵀ. Columns of B are independent.
//
// Errors:
//   - ErrNotAvailable (lifecycle), ErrNotPositiveDefinite (input failed the
//     SPD test at Decompose), ErrWrongSize (B.Rows() != n).
//
// Complexity:
//   - Time O(n^2 * p) for p right-hand sides, Space O(n*p).
func (d *CholeskyDecomposer) Solve(b matrix.Matrix) (matrix.Matrix, error) {
	if err := d.requireAvailable(); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if !d.isSPD {
		return nil, decompErrorf(opSolve, ErrNotPositiveDefinite)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	if b.Rows() != d.n {
		return nil, decompErrorf(opSolve, ErrWrongSize)
	}

	x, err := cloneRows(b)
	if err != nil {
		return nil, decompErrorf(opSolve, err)
	}
	n, p := d.n, b.Cols()

	var i, k, j int
	// Forward: L·Y = B.
	for i = 0; i < n; i++ {
		for k = 0; k < i; k++ {
			if d.l[i][k] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				x[i][j] -= d.l[i][k] * x[k][j]
			}
		}
		for j = 0; j < p; j++ {
			x[i][j] /= d.l[i][i]
		}
	}
	// Backward: Lᵀ·X = Y.
	for i = n - 1; i >= 0; i-- {
		for k = i + 1; k < n; k++ {
			if d.l[k][i] == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				x[i][j] -= d.l[k][i] * x[k][j]
			}
		}
		for j = 0; j < p; j++ {
			x[i][j] /= d.l[i][i]
		}
	}

	return rowsToDense(x, n, p), nil
}
