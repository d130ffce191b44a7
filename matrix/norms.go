// SPDX-License-Identifier: MIT
// Package matrix: norm computation and tolerance-based equality.
//
// Purpose:
//   - Provide the norm kernels the decomposition subsystem uses for scale
//     estimation (singularity thresholds scale with the input magnitude).
//   - Provide AllClose, the canonical equality-within-tolerance predicate
//     used throughout the test suites.
//
// Determinism:
//   - All scans run in fixed i→j order; results are stable across runs.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opFrobenius = "FrobeniusNorm"
	opOneNorm   = "OneNorm"
	opInfNorm   = "InfinityNorm"
	opAllClose  = "AllClose"
)

// FrobeniusNorm returns sqrt(Σ m[i,j]^2), scaled internally to avoid
// overflow/underflow on extreme magnitudes.
//
// Implementation:
//   - Stage 1: ValidateNotNil(m).
//   - Stage 2: single pass accumulating via the scaled-sum-of-squares
//     recurrence (same technique as BLAS dnrm2).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	rows, cols := m.Rows(), m.Cols()

	var (
		scale float64 // running max magnitude seen so far
		ssq   = 1.0   // scaled sum of squares: Σ (v/scale)^2
		i, j  int
		v, av float64
		err   error
	)
	// Fast-path: flat walk over the Dense buffer.
	if d, ok := m.(*Dense); ok {
		n := rows * cols
		for idx := 0; idx < n; idx++ {
			v = d.data[idx]
			if v == 0 {
				continue
			}
			av = math.Abs(v)
			if scale < av {
				ssq = 1.0 + ssq*(scale/av)*(scale/av)
				scale = av
			} else {
				ssq += (av / scale) * (av / scale)
			}
		}

		return scale * math.Sqrt(ssq), nil
	}

	// Fallback: generic interface loop.
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opFrobenius, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if v == 0 {
				continue
			}
			av = math.Abs(v)
			if scale < av {
				ssq = 1.0 + ssq*(scale/av)*(scale/av)
				scale = av
			} else {
				ssq += (av / scale) * (av / scale)
			}
		}
	}

	return scale * math.Sqrt(ssq), nil
}

// OneNorm returns the maximum absolute column sum of m.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(c) for the per-column accumulators.
func OneNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opOneNorm, err)
	}
	rows, cols := m.Rows(), m.Cols()
	sums := make([]float64, cols) // one accumulator per column

	var i, j, base int
	var v float64
	var err error
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ { // row-major walk keeps cache locality
			base = i * cols
			for j = 0; j < cols; j++ {
				sums[j] += math.Abs(d.data[base+j])
			}
		}
	} else {
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				v, err = m.At(i, j)
				if err != nil {
					return 0, matrixErrorf(opOneNorm, fmt.Errorf("At(%d,%d): %w", i, j, err))
				}
				sums[j] += math.Abs(v)
			}
		}
	}

	// Reduce to the maximum column sum in fixed order.
	var norm float64
	for j = 0; j < cols; j++ {
		if sums[j] > norm {
			norm = sums[j]
		}
	}

	return norm, nil
}

// InfinityNorm returns the maximum absolute row sum of m.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(1).
func InfinityNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opInfNorm, err)
	}
	rows, cols := m.Rows(), m.Cols()

	var (
		norm, sum float64
		i, j      int
		v         float64
		err       error
	)
	if d, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < rows; i++ {
			sum = ZeroSum
			base = i * cols
			for j = 0; j < cols; j++ {
				sum += math.Abs(d.data[base+j])
			}
			if sum > norm {
				norm = sum
			}
		}

		return norm, nil
	}

	for i = 0; i < rows; i++ {
		sum = ZeroSum
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opInfNorm, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			sum += math.Abs(v)
		}
		if sum > norm {
			norm = sum
		}
	}

	return norm, nil
}

// VectorNorm2 returns the Euclidean norm of x using the same scaled
// accumulation as FrobeniusNorm. A nil or empty vector has norm 0.
// Complexity: Time O(n), Space O(1).
func VectorNorm2(x []float64) float64 {
	var scale float64
	ssq := 1.0
	var av float64
	for _, v := range x {
		if v == 0 {
			continue
		}
		av = math.Abs(v)
		if scale < av {
			ssq = 1.0 + ssq*(scale/av)*(scale/av)
			scale = av
		} else {
			ssq += (av / scale) * (av / scale)
		}
	}

	return scale * math.Sqrt(ssq)
}

// AllClose reports whether |a[i,j]-b[i,j]| <= tol for all elements.
// Shapes must match; tol must be finite and non-negative.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (shape), ErrInvalidTolerance.
//
// Determinism:
//   - Fixed i→j scan with fast negative exit on the first violation.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateTolerance(tol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rows, cols := a.Rows(), a.Cols()

	// Fast-path: both Dense → flat comparison.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			n := rows * cols
			for idx := 0; idx < n; idx++ {
				if math.Abs(da.data[idx]-db.data[idx]) > tol {
					return false, nil
				}
			}

			return true, nil
		}
	}

	// Fallback: generic interface scan.
	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return false, matrixErrorf(opAllClose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return false, matrixErrorf(opAllClose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if math.Abs(av-bv) > tol {
				return false, nil
			}
		}
	}

	return true, nil
}
