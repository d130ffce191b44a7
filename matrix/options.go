// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
//
// Design goals:
//   - Deterministic behavior: no global mutable state, no implicit randomness.
//   - IEEE 754 fidelity by default: NaN/Inf propagate through arithmetic
//     unless a Dense instance explicitly opts into strict validation.
//   - Every constant below is referenced by code and covered by tests;
//     no dead switches.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by equality
	// checks (AllClose) when callers have no domain-specific tolerance.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	// It is OFF by default: decomposition code relies on IEEE 754 semantics
	// where NaN/Inf propagate through arithmetic without special-casing.
	// Use NewDenseStrict to opt a single instance into rejection.
	DefaultValidateNaNInf = false
)
