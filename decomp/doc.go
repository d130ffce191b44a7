// SPDX-License-Identifier: MIT

// Package decomp implements the classical dense matrix factorizations on top
// of package matrix: LU with partial pivoting, Cholesky, Householder QR, RQ,
// and the singular value decomposition, plus one-shot Gauss-Jordan
// elimination with full pivoting.
//
// Every decomposer shares the same lifecycle, expressed by the Decomposer
// interface:
//
//	d := decomp.NewLUDecomposer()
//	_ = d.SetInputMatrix(a) // NOT_READY → READY
//	_ = d.Decompose()       // READY → DECOMPOSED (transiently LOCKED)
//	l, _ := d.L()           // factor getters require DECOMPOSED
//
// SetInputMatrix never copies; Decompose clones the input once and factors
// the clone, so the caller's matrix is never mutated and may be reused.
// Setting a new input invalidates previous factors. Instances are not
// goroutine-safe; each must be confined to a single owner.
//
// Degeneracy is a query-time property, not a decomposition failure: LU and
// QR always factor, and singularity/rank checks take an explicit tolerance
// scaled by the input's infinity norm. Cholesky likewise always completes
// and exposes IsSPD. The SVD is the exception with a convergence dimension:
// by default it degrades gracefully (Converged() reports the status), and
// WithStrictConvergence opts into failing Decompose with ErrNotConverged.
//
// All errors are sentinel values (see errors.go) wrapped with the operation
// name; match them with errors.Is.
package decomp
