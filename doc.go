// Package lvlinear is your in-memory toolbox for dense numerical linear
// algebra — from matrix primitives to the classical factorizations and the
// solvers built on top of them.
//
// 🚀 What is lvlinear?
//
//	A focused, deterministic library that brings together:
//		• Matrix primitives: safe row-major Dense storage, algebra kernels, norms
//		• Decompositions: LU (partial pivoting), Cholesky, QR, RQ, SVD
//		• Solvers: triangular solves, least squares, pseudoinverse, Gauss-Jordan
//		• Sampling: multivariate normal draws from factored covariances
//
// ✨ Why choose lvlinear?
//
//   - Beginner-friendly – one shared decomposer lifecycle, clear naming
//   - Rock-solid guarantees – sentinel errors, no panics on user input
//   - Deterministic – fixed loop orders, seedable randomness, stable signs
//   - Pure Go kernels – no cgo; reference-grade classical algorithms
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/   — Dense storage, element-wise & product kernels, norms, random builders
//	decomp/   — the five decomposers + Gauss-Jordan elimination
//	gaussian/ — multivariate normal sampling on top of decomp factors
//
// Quick lifecycle example:
//
//	lu := decomp.NewLUDecomposer()
//	_  = lu.SetInputMatrix(a) // READY
//	_  = lu.Decompose()       // DECOMPOSED
//	x, err := lu.Solve(b, 1e-12)
//
// Dive into the per-package docs for the factorization contracts, error
// taxonomy, and numerical conventions.
//
//	go get github.com/katalvlaran/lvlinear
package lvlinear
