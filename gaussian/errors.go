// SPDX-License-Identifier: MIT
// Package gaussian: sentinel error set.

package gaussian

import "errors"

var (
	// ErrDimensionMismatch indicates the mean length does not match the
	// covariance order, or a sample request with a non-positive count.
	ErrDimensionMismatch = errors.New("gaussian: dimension mismatch")

	// ErrNilRand rejects a nil random source; the package never falls back
	// to the global source, to keep sampling reproducible.
	ErrNilRand = errors.New("gaussian: nil random source")

	// ErrUnsupportedType is returned by NewFromDecomposer for decomposer
	// types that cannot express a covariance factor (LU, QR, RQ).
	ErrUnsupportedType = errors.New("gaussian: unsupported decomposition type")

	// ErrNotDecomposed is returned by NewFromDecomposer when the supplied
	// decomposer has no available factorization.
	ErrNotDecomposed = errors.New("gaussian: decomposition not available")
)
