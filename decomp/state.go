// SPDX-License-Identifier: MIT
// Package decomp: shared lifecycle holder and boundary conversion helpers.
//
// Purpose:
//   - Implement the ready/locked/available state machine exactly once; every
//     concrete decomposer embeds the holder instead of inheriting behavior.
//   - Keep boundary conversions (Matrix interface → owned working storage)
//     in one place so factorization kernels can run on flat row slices.
//
// Determinism:
//   - Pure state transitions; conversions copy in fixed row-major order.

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants shared across the package for error wrapping.
const (
	opSetInput  = "SetInputMatrix"
	opDecompose = "Decompose"
	opSolve     = "Solve"
)

// decompErrorf wraps err with an operation tag, preserving the sentinel via
// %w so callers keep errors.Is matching. Use only when err != nil.
// Complexity: O(1).
func decompErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// state is the lifecycle holder every decomposer embeds (composition, not
// inheritance). The zero value is a valid NOT_READY state.
//
// Transitions:
//   - setInput : any unlocked state → READY (available=false)
//   - begin    : READY → LOCKED (ErrNotReady/ErrLocked otherwise)
//   - end(ok)  : LOCKED → DECOMPOSED when ok, READY when !ok
//
// The locked flag is a cooperative re-entry guard for single-owner use; it
// is not a substitute for external synchronization.
type state struct {
	input     matrix.Matrix // caller's input; read-only for decomposers
	ready     bool          // an input matrix is set
	locked    bool          // a Decompose call is in progress
	available bool          // factors are valid for the current input
}

// SetInputMatrix stores m, marks the holder ready, and invalidates previous
// factors. Fails with ErrLocked during an in-progress Decompose and with
// ErrNilMatrix for nil input.
// Complexity: O(1); the matrix is cloned lazily at Decompose time.
func (s *state) SetInputMatrix(m matrix.Matrix) error {
	if s.locked {
		return decompErrorf(opSetInput, ErrLocked)
	}
	if err := matrix.ValidateNotNil(m); err != nil {
		return decompErrorf(opSetInput, err)
	}
	s.input = m
	s.ready = true
	s.available = false // invariant: new input always clears availability

	return nil
}

// IsReady reports whether an input matrix is set. Complexity: O(1).
func (s *state) IsReady() bool { return s.ready }

// IsLocked reports whether a Decompose is in progress. Complexity: O(1).
func (s *state) IsLocked() bool { return s.locked }

// IsDecompositionAvailable reports whether factors are valid for the current
// input. Complexity: O(1).
func (s *state) IsDecompositionAvailable() bool { return s.available }

// begin enters the LOCKED phase. Returns ErrNotReady when no input is set
// and ErrLocked on re-entry. Complexity: O(1).
func (s *state) begin() error {
	if s.locked {
		return ErrLocked
	}
	if !s.ready {
		return ErrNotReady
	}
	s.locked = true

	return nil
}

// end leaves the LOCKED phase; ok marks the factors valid. Complexity: O(1).
func (s *state) end(ok bool) {
	s.locked = false
	s.available = ok
}

// requireAvailable gates factor getters. Complexity: O(1).
func (s *state) requireAvailable() error {
	if !s.available {
		return ErrNotAvailable
	}

	return nil
}

// ---------- boundary conversion helpers ----------

// validateTolerance rejects negative or non-finite tolerances with the
// package sentinel. Called by every tolerance-driven operation before it
// reads any state. Complexity: O(1).
func validateTolerance(tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return ErrInvalidTolerance
	}

	return nil
}

// zeroRows allocates an r×c zero working matrix as row slices over a single
// flat arena. Row headers may be swapped in O(1) during pivoting; each header
// keeps exclusive ownership of its segment. Complexity: O(r*c).
func zeroRows(r, c int) [][]float64 {
	arena := make([]float64, r*c) // one allocation, zero-filled
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = arena[i*c : (i+1)*c]
	}

	return rows
}

// cloneRows copies m into freshly owned row slices. Decomposers never mutate
// the caller's input; they factor this copy instead.
//
// Implementation:
//   - Fast-path: *Dense inputs copy their flat buffer in one pass.
//   - Fallback: generic At copy in fixed i→j order.
//
// Complexity: Time O(r*c), Space O(r*c).
func cloneRows(m matrix.Matrix) ([][]float64, error) {
	r, c := m.Rows(), m.Cols()
	rows := zeroRows(r, c)

	if d, ok := m.(*matrix.Dense); ok {
		data := d.Data()
		for i := 0; i < r; i++ {
			copy(rows[i], data[i*c:(i+1)*c])
		}

		return rows, nil
	}

	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			rows[i][j] = v
		}
	}

	return rows, nil
}

// identityRows allocates the n×n identity as row slices. Complexity: O(n*n).
func identityRows(n int) [][]float64 {
	rows := zeroRows(n, n)
	for i := 0; i < n; i++ {
		rows[i][i] = 1.0
	}

	return rows
}

// rowsToDense materializes working rows into a fresh *matrix.Dense. Getters
// call this on demand so each returned factor is independent of the
// decomposer's internal state. Complexity: O(r*c).
func rowsToDense(rows [][]float64, r, c int) *matrix.Dense {
	d, _ := matrix.NewDense(r, c) // r,c come from validated internal state
	data := d.Data()
	for i := 0; i < r; i++ {
		copy(data[i*c:(i+1)*c], rows[i][:c])
	}

	return d
}

// infinityNormRows returns the maximum absolute row sum of the working rows,
// used as the scale for singularity thresholds. Complexity: O(r*c).
func infinityNormRows(rows [][]float64) float64 {
	var norm, sum float64
	for i := range rows {
		sum = 0
		for _, v := range rows[i] {
			sum += math.Abs(v)
		}
		if sum > norm {
			norm = sum
		}
	}

	return norm
}
