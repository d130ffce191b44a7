// Package matrix provides dense float64 matrix storage and the arithmetic
// kernels consumed by the decomposition subsystem (package decomp).
//
// The matrix package provides:
//
//   - Dense: a cache-friendly row-major buffer with bounds-checked At/Set
//     accessors that return sentinel errors instead of panicking.
//   - Element-wise and structural kernels (Add, Sub, Mul, Transpose, Scale,
//     MatVec) with a flat fast-path for *Dense operands and a generic
//     fallback for any Matrix implementation.
//   - Norms (Frobenius, one, infinity) and tolerance-based equality
//     (AllClose) used by factorization code for scale estimation.
//   - Random builders (uniform, SPD, orthogonal) for test data and for the
//     gaussian sampler package.
//
// All kernels use fixed loop orders, allocate results fresh, and never
// mutate their operands. Matrices are best for dense numerical workloads
// where O(r·c) memory is acceptable; sparse storage is out of scope.
//
// See the examples in this package and decomp for usage patterns.
package matrix
