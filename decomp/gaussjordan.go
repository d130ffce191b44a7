// SPDX-License-Identifier: MIT
// Package decomp: Gauss-Jordan elimination with full pivoting.
//
// Purpose:
//   - Solve A·X = B and produce A⁻¹ in a single elimination pass, replacing
//     the operands in place: A becomes its inverse, B becomes the solution.
//   - Full (complete) pivoting: each step searches the entire unreduced
//     submatrix for the largest pivot, trading extra comparisons for the
//     best numerical stability elimination can offer.
//
// Unlike the decomposers, elimination is a one-shot transformation with no
// reusable factors, so it is exposed as plain functions without lifecycle.

package decomp

import (
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opGaussJordan        = "GaussJordan"
	opGaussJordanInverse = "GaussJordanInverse"
)

// GaussJordan solves A·X = B by full-pivoting elimination. On success A is
// replaced by A⁻¹ and B by the solution X, both written through the Matrix
// interface. On any error both operands are left unmodified.
//
// Implementation stages:
//   - Stage 1: validation (nil, square A, B.Rows() == n); copy both operands
//     into working rows and record ‖A‖∞.
//   - Stage 2: n elimination steps, each picking the largest-magnitude pivot
//     over rows and columns not yet used, normalizing the pivot row, and
//     clearing the pivot column everywhere else.
//   - Stage 3: undo the implicit column permutation by swapping columns of
//     the inverse in reverse pivot order, then write both results back.
//
// Behavior highlights:
//   - A pivot search that finds nothing above DefaultPivotTolerance·‖A‖∞
//     reports ErrSingular.
//
// Errors:
//   - ErrNilMatrix, ErrWrongSize, ErrSingular.
//
// Complexity:
//   - Time O(n^3 + n^2*p), Space O(n^2 + n*p).
func GaussJordan(a, b matrix.Matrix) error {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return decompErrorf(opGaussJordan, err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return decompErrorf(opGaussJordan, err)
	}
	n := a.Rows()
	if b.Rows() != n {
		return decompErrorf(opGaussJordan, ErrWrongSize)
	}

	aw, err := cloneRows(a)
	if err != nil {
		return decompErrorf(opGaussJordan, err)
	}
	bw, err := cloneRows(b)
	if err != nil {
		return decompErrorf(opGaussJordan, err)
	}

	if err = gaussJordanRows(aw, bw, n, b.Cols()); err != nil {
		return decompErrorf(opGaussJordan, err)
	}
	if err = writeRows(a, aw); err != nil {
		return decompErrorf(opGaussJordan, err)
	}
	if err = writeRows(b, bw); err != nil {
		return decompErrorf(opGaussJordan, err)
	}

	return nil
}

// GaussJordanInverse replaces square A with A⁻¹ in place, using the same
// full-pivoting elimination as GaussJordan with an empty right-hand side.
// On any error A is left unmodified.
//
// Errors:
//   - ErrNilMatrix, ErrWrongSize, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func GaussJordanInverse(a matrix.Matrix) error {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return decompErrorf(opGaussJordanInverse, err)
	}

	aw, err := cloneRows(a)
	if err != nil {
		return decompErrorf(opGaussJordanInverse, err)
	}

	if err = gaussJordanRows(aw, nil, a.Rows(), 0); err != nil {
		return decompErrorf(opGaussJordanInverse, err)
	}
	if err = writeRows(a, aw); err != nil {
		return decompErrorf(opGaussJordanInverse, err)
	}

	return nil
}

// gaussJordanRows runs the elimination on working rows: a is n×n, b is n×p
// (nil when p == 0). Pivot bookkeeping follows the classical scheme: row
// swaps happen physically, column swaps are recorded and undone at the end.
func gaussJordanRows(a, b [][]float64, n, p int) error {
	threshold := DefaultPivotTolerance * infinityNormRows(a)

	indxr := make([]int, n) // pivot row per elimination step
	indxc := make([]int, n) // pivot column per elimination step
	ipiv := make([]int, n)  // 1 once a column has been used as pivot

	var (
		i, j, k, ll     int
		irow, icol      int
		big, pivinv, dm float64
	)
	for i = 0; i < n; i++ {
		// Full pivot search over the unreduced submatrix.
		big = 0
		irow, icol = -1, -1
		for j = 0; j < n; j++ {
			if ipiv[j] == 1 {
				continue
			}
			for k = 0; k < n; k++ {
				if ipiv[k] == 0 && math.Abs(a[j][k]) >= big {
					big = math.Abs(a[j][k])
					irow, icol = j, k
				}
			}
		}
		if irow < 0 || big <= threshold {
			return ErrSingular
		}
		ipiv[icol] = 1

		if irow != icol {
			a[irow], a[icol] = a[icol], a[irow]
			if b != nil {
				b[irow], b[icol] = b[icol], b[irow]
			}
		}
		indxr[i], indxc[i] = irow, icol

		// Normalize the pivot row; the pivot slot itself becomes part of
		// the accumulating inverse.
		pivinv = 1.0 / a[icol][icol]
		a[icol][icol] = 1.0
		for j = 0; j < n; j++ {
			a[icol][j] *= pivinv
		}
		for j = 0; j < p; j++ {
			b[icol][j] *= pivinv
		}

		// Clear the pivot column in every other row.
		for ll = 0; ll < n; ll++ {
			if ll == icol {
				continue
			}
			dm = a[ll][icol]
			if dm == 0 {
				continue
			}
			a[ll][icol] = 0
			for j = 0; j < n; j++ {
				a[ll][j] -= a[icol][j] * dm
			}
			for j = 0; j < p; j++ {
				b[ll][j] -= b[icol][j] * dm
			}
		}
	}

	// Undo the column permutation in reverse order.
	for i = n - 1; i >= 0; i-- {
		if indxr[i] == indxc[i] {
			continue
		}
		for j = 0; j < n; j++ {
			a[j][indxr[i]], a[j][indxc[i]] = a[j][indxc[i]], a[j][indxr[i]]
		}
	}

	return nil
}

// writeRows stores working rows back into dst through the Matrix interface,
// with a flat-buffer fast path for *matrix.Dense.
func writeRows(dst matrix.Matrix, rows [][]float64) error {
	r, c := dst.Rows(), dst.Cols()

	if d, ok := dst.(*matrix.Dense); ok {
		data := d.Data()
		for i := 0; i < r; i++ {
			copy(data[i*c:(i+1)*c], rows[i][:c])
		}

		return nil
	}

	var i, j int
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = dst.Set(i, j, rows[i][j]); err != nil {
				return err
			}
		}
	}

	return nil
}
