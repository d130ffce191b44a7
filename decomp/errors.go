// SPDX-License-Identifier: MIT
// Package decomp: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the decomp
// package. All decomposers MUST return these sentinels and tests MUST check
// them via errors.Is. No decomposer should panic on user-triggered error
// conditions.

package decomp

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "decomp: ..." for consistency and to allow
// easy grepping across logs. Error kinds map to the taxonomy every solver
// shares:
//
//	lifecycle   -> ErrNotReady, ErrLocked, ErrNotAvailable
//	dimensions  -> ErrWrongSize
//	degeneracy  -> ErrSingular, ErrRankDeficient, ErrNotPositiveDefinite,
//	               ErrZeroRank, ErrZeroNullity
//	parameters  -> ErrInvalidTolerance, ErrInvalidIterations
//	convergence -> ErrNotConverged (strict SVD mode only)
//
// Degeneracy errors are deliberately distinct from ErrWrongSize so callers
// can tell "can't solve, try the pseudoinverse" apart from "bad input shape".

var (
	// ErrNotReady is returned by Decompose when no input matrix has been set.
	ErrNotReady = errors.New("decomp: decomposer has no input matrix")

	// ErrLocked is returned when SetInputMatrix or Decompose is invoked while
	// a decomposition is already in progress on the same instance. The locked
	// flag is a cooperative re-entry guard, not a mutex; instances are not
	// goroutine-safe and must be confined to a single owner.
	ErrLocked = errors.New("decomp: decomposer is locked")

	// ErrNotAvailable is returned by factor getters before a successful
	// Decompose, or after SetInputMatrix invalidated previous factors.
	ErrNotAvailable = errors.New("decomp: decomposition not available")

	// ErrWrongSize indicates input/operand shapes violate an algorithm's
	// precondition (non-square for Cholesky/determinant, rows < cols for QR,
	// row-count mismatch between coefficient matrix and right-hand side).
	ErrWrongSize = errors.New("decomp: wrong matrix size")

	// ErrSingular is returned when a pivot falls at or below the effective
	// tolerance during an LU or Gauss-Jordan solve.
	ErrSingular = errors.New("decomp: singular matrix")

	// ErrRankDeficient is returned by the QR solver when the rank test fails
	// at the caller's tolerance.
	ErrRankDeficient = errors.New("decomp: rank-deficient matrix")

	// ErrNotPositiveDefinite is returned by the Cholesky solver when the
	// decomposed matrix was not symmetric positive-definite.
	ErrNotPositiveDefinite = errors.New("decomp: matrix is not symmetric positive-definite")

	// ErrZeroRank is returned by SVD Range when every singular value is
	// numerically zero (the range basis is empty).
	ErrZeroRank = errors.New("decomp: matrix has zero rank")

	// ErrZeroNullity is returned by SVD Nullspace when no singular value is
	// numerically zero (the nullspace basis is empty).
	ErrZeroNullity = errors.New("decomp: matrix has zero nullity")

	// ErrInvalidTolerance rejects negative or non-finite tolerances at the
	// call that introduces them, independent of decomposer state.
	ErrInvalidTolerance = errors.New("decomp: tolerance must be finite, non-negative")

	// ErrInvalidIterations rejects non-positive iteration bounds.
	ErrInvalidIterations = errors.New("decomp: iteration bound must be > 0")

	// ErrNotConverged is surfaced by the SVD only under strict-convergence
	// mode when implicit-shift QR iteration exhausts its bound. The default
	// mode degrades gracefully instead (see SingularValueDecomposer).
	ErrNotConverged = errors.New("decomp: iteration bound exhausted before convergence")
)
