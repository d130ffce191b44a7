// SPDX-License-Identifier: MIT

// Package decomp: shared contract types for every decomposer.
// This file intentionally contains ONLY the Type enumeration and the
// Decomposer interface; the lifecycle holder lives in state.go, sentinel
// errors in errors.go, and configuration in options.go per the package
// conventions.
package decomp

import "github.com/katalvlaran/lvlinear/matrix"

// Type is the closed enumeration identifying a concrete decomposer.
// Callers use it to branch on a factorization kind without type inspection
// (e.g., a covariance validator that accepts Cholesky or SVD factors).
type Type int

const (
	// TypeLU tags LUDecomposer (partial-pivoted LU).
	TypeLU Type = iota

	// TypeCholesky tags CholeskyDecomposer (SPD factorization).
	TypeCholesky

	// TypeQR tags QRDecomposer (Householder QR).
	TypeQR

	// TypeRQ tags RQDecomposer (RQ via flipped QR).
	TypeRQ

	// TypeSVD tags SingularValueDecomposer (Golub-Kahan + implicit-shift QR).
	TypeSVD
)

// typeNames maps Type values to stable human-readable labels.
var typeNames = [...]string{
	TypeLU:       "LU",
	TypeCholesky: "Cholesky",
	TypeQR:       "QR",
	TypeRQ:       "RQ",
	TypeSVD:      "SVD",
}

// String returns the stable label for t, or "Unknown" outside the enum.
// Complexity: O(1).
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}

	return typeNames[t]
}

// Decomposer is the lifecycle contract every factorization implements.
//
// State machine:
//
//	NOT_READY → SetInputMatrix → READY → Decompose (transiently LOCKED) → DECOMPOSED
//
// Re-entering SetInputMatrix from DECOMPOSED returns to READY (previous
// factors invalidated). Factor getters on the concrete types fail with
// ErrNotAvailable until Decompose succeeds.
//
// Concurrency: instances are NOT goroutine-safe. The locked flag guards only
// against re-entrant misuse within one owner; concurrent use from multiple
// goroutines must be serialized by the caller.
type Decomposer interface {
	// SetInputMatrix stores m as the next input, marks the decomposer ready,
	// and invalidates any previous factors. Fails with ErrLocked while a
	// Decompose is in progress.
	SetInputMatrix(m matrix.Matrix) error

	// Decompose validates readiness, runs the concrete factorization, and
	// caches the factors. Fails with ErrNotReady before SetInputMatrix and
	// with ErrLocked on re-entry; on any failure the decomposition remains
	// unavailable.
	Decompose() error

	// IsReady reports whether an input matrix is set.
	IsReady() bool

	// IsLocked reports whether a Decompose call is currently in progress.
	IsLocked() bool

	// IsDecompositionAvailable reports whether Decompose has completed since
	// the last input change.
	IsDecompositionAvailable() bool

	// Type returns the fixed enumerated tag of the concrete decomposer.
	Type() Type
}

// Compile-time conformance assertions for every concrete decomposer.
var (
	_ Decomposer = (*LUDecomposer)(nil)
	_ Decomposer = (*CholeskyDecomposer)(nil)
	_ Decomposer = (*QRDecomposer)(nil)
	_ Decomposer = (*RQDecomposer)(nil)
	_ Decomposer = (*SingularValueDecomposer)(nil)
)
