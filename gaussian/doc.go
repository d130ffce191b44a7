// SPDX-License-Identifier: MIT

// Package gaussian draws samples from multivariate normal distributions
// N(μ, Σ) on top of the decomp factorizations.
//
// Sampling uses the standard affine transform x = μ + A·z with z ~ N(0, I)
// and A·Aᵀ = Σ. The transform comes from a factorization of the covariance:
// the Cholesky factor L for SPD covariances, or U·diag(√w) from an SVD when
// the covariance is only positive semi-definite (degenerate distributions
// supported on a subspace).
//
// New factors the covariance internally; NewFromDecomposer accepts an
// already-decomposed Cholesky or SVD instance and dispatches on its Type().
// All randomness flows through a caller-supplied *rand.Rand, so a fixed seed
// reproduces the same sample stream.
package gaussian
