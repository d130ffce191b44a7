// SPDX-License-Identifier: MIT
// Package matrix: deterministic random matrix builders.
//
// Purpose:
//   - Produce well-understood test inputs (uniform, SPD, orthogonal) for the
//     decomposition suites and the gaussian sampler package.
//   - Determinism: every builder takes an explicit *rand.Rand; no package
//     uses the global source, so a fixed seed reproduces the same matrix.

package matrix

import (
	"math/rand"
)

// Operation name constants for unified error wrapping.
const (
	opRandomDense      = "NewRandomDense"
	opRandomSPD        = "NewRandomSPD"
	opRandomOrthogonal = "NewRandomOrthogonal"
)

// NewRandomDense returns an r×c matrix with entries drawn uniformly from
// [lo, hi). The caller owns the seed via rng.
//
// Errors:
//   - ErrInvalidDimensions (shape), ErrNilMatrix (nil rng),
//     ErrDimensionMismatch (lo >= hi).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewRandomDense(rows, cols int, lo, hi float64, rng *rand.Rand) (*Dense, error) {
	if rng == nil {
		return nil, matrixErrorf(opRandomDense, ErrNilMatrix)
	}
	if lo >= hi {
		return nil, matrixErrorf(opRandomDense, ErrDimensionMismatch)
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opRandomDense, err)
	}
	span := hi - lo
	n := rows * cols
	for idx := 0; idx < n; idx++ { // flat fill in fixed order for reproducibility
		m.data[idx] = lo + span*rng.Float64()
	}

	return m, nil
}

// NewRandomSPD returns a random n×n symmetric positive-definite matrix,
// built as Bᵀ·B + n·I for uniform B. The n·I shift keeps the smallest
// eigenvalue bounded away from zero, so Cholesky always succeeds on the
// result.
//
// Errors:
//   - ErrInvalidDimensions, ErrNilMatrix (nil rng).
//
// Complexity:
//   - Time O(n^3) for the Gram product, Space O(n^2).
func NewRandomSPD(n int, rng *rand.Rand) (*Dense, error) {
	b, err := NewRandomDense(n, n, -1.0, 1.0, rng)
	if err != nil {
		return nil, matrixErrorf(opRandomSPD, err)
	}
	bt, err := Transpose(b)
	if err != nil {
		return nil, matrixErrorf(opRandomSPD, err)
	}
	gram, err := Mul(bt, b)
	if err != nil {
		return nil, matrixErrorf(opRandomSPD, err)
	}
	// Mul over *Dense operands always yields *Dense.
	spd := gram.(*Dense)
	shift := float64(n)
	for i := 0; i < n; i++ { // diagonal shift for strict positive-definiteness
		spd.data[i*n+i] += shift
	}

	return spd, nil
}

// NewRandomOrthogonal returns a random n×n orthogonal matrix produced by
// modified Gram-Schmidt on a uniform random matrix. Columns are re-drawn in
// the (measure-zero) event a column becomes numerically dependent.
//
// Errors:
//   - ErrInvalidDimensions, ErrNilMatrix (nil rng).
//
// Determinism:
//   - Fully determined by rng; fixed column order.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func NewRandomOrthogonal(n int, rng *rand.Rand) (*Dense, error) {
	if rng == nil {
		return nil, matrixErrorf(opRandomOrthogonal, ErrNilMatrix)
	}
	q, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opRandomOrthogonal, err)
	}

	// dependenceTol flags columns that collapsed during orthogonalization.
	const dependenceTol = 1e-12

	col := make([]float64, n) // scratch for the current column
	var i, j, k int
	var dot, nrm float64
	for j = 0; j < n; j++ {
		for {
			// Draw a fresh candidate column.
			for i = 0; i < n; i++ {
				col[i] = 2.0*rng.Float64() - 1.0
			}
			// Modified Gram-Schmidt: subtract projections onto previous columns.
			for k = 0; k < j; k++ {
				dot = ZeroSum
				for i = 0; i < n; i++ {
					dot += col[i] * q.data[i*n+k]
				}
				for i = 0; i < n; i++ {
					col[i] -= dot * q.data[i*n+k]
				}
			}
			nrm = VectorNorm2(col)
			if nrm > dependenceTol {
				break // candidate is independent; keep it
			}
			// Degenerate draw; retry with the next random column.
		}
		inv := 1.0 / nrm
		for i = 0; i < n; i++ {
			q.data[i*n+j] = col[i] * inv
		}
	}
	return q, nil
}
