// SPDX-License-Identifier: MIT

// Package decomp: functional configuration and numeric-policy defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Documented defaults (constants) are the single source of truth.
//   - Invalid parameter values are rejected synchronously by the constructor
//     that resolves them, independent of decomposer state.
package decomp

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIterations bounds the implicit-shift QR iteration the SVD
	// runs per singular value. 30 is the classical Golub-Kahan budget; it is
	// a correctness/performance knob, not a cancellation mechanism.
	DefaultMaxIterations = 30

	// DefaultStrictConvergence controls whether SVD surfaces ErrNotConverged
	// when the iteration budget is exhausted. The default keeps the classical
	// graceful-degradation behavior: best-available values are used and the
	// Converged() accessor reports the status.
	DefaultStrictConvergence = false

	// DefaultPivotTolerance scales the Gauss-Jordan pivot threshold: a pivot
	// search that finds no element above tol*‖A‖∞ reports ErrSingular.
	DefaultPivotTolerance = 1e-12
)

// epsMachine is the double-precision unit roundoff (2^-52), used by the SVD
// rank/nullity tolerance convention tol = max(m,n)·eps·σmax.
var epsMachine = math.Nextafter(1, 2) - 1

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective SVD configuration after applying setters.
// Fields are unexported to prevent external mutation; public entry points
// accept ...Option and resolve them via gatherOptions.
type Options struct {
	maxIterations     int  // > 0; DefaultMaxIterations
	strictConvergence bool // DefaultStrictConvergence
}

// WithMaxIterations sets the per-singular-value iteration budget.
// The value is validated by the constructor that resolves the options;
// n <= 0 yields ErrInvalidIterations there.
// Complexity: O(1).
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.maxIterations = n }
}

// WithStrictConvergence makes Decompose fail with ErrNotConverged when the
// iteration budget is exhausted, instead of completing with best-available
// values. Use when a non-converged factorization must not flow downstream.
// Complexity: O(1).
func WithStrictConvergence() Option {
	return func(o *Options) { o.strictConvergence = true }
}

// gatherOptions applies user setters on top of defaults (last-writer-wins)
// and validates the resolved configuration.
//
// Errors:
//   - ErrInvalidIterations when maxIterations <= 0.
//
// Complexity: Time O(k) for k options, Space O(1).
func gatherOptions(user ...Option) (Options, error) {
	o := Options{
		maxIterations:     DefaultMaxIterations,
		strictConvergence: DefaultStrictConvergence,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}
	if o.maxIterations <= 0 {
		return Options{}, ErrInvalidIterations
	}

	return o, nil
}
