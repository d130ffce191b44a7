// SPDX-License-Identifier: MIT
// Package gaussian: multivariate normal sampler.
//
// Purpose:
//   - Turn a covariance factorization A (with A·Aᵀ = Σ) into a reproducible
//     sampler: x = μ + A·z, z ~ N(0, I).
//   - Accept either a raw covariance (factored internally via Cholesky) or a
//     pre-decomposed Cholesky/SVD instance, selected by Decomposer.Type().

package gaussian

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvlinear/decomp"
	"github.com/katalvlaran/lvlinear/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opNew       = "gaussian.New"
	opNewFrom   = "gaussian.NewFromDecomposer"
	opSample    = "MultivariateNormal.Sample"
	opSampleN   = "MultivariateNormal.SampleN"
	opSVDFactor = "gaussian.svdFactor"
)

// gaussianErrorf wraps err with an operation tag, preserving the sentinel.
func gaussianErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MultivariateNormal samples from N(μ, Σ) given a factor A with A·Aᵀ = Σ.
// Immutable after construction; safe for concurrent Sample calls only when
// each goroutine owns its *rand.Rand.
type MultivariateNormal struct {
	mean   []float64
	factor *matrix.Dense // n×n transform A
	dim    int
}

// New builds a sampler from a mean vector and an SPD covariance matrix,
// factoring the covariance with Cholesky.
//
// Errors:
//   - matrix.ErrNilMatrix (nil covariance), ErrDimensionMismatch (mean
//     length vs covariance order, or non-square covariance via
//     decomp.ErrWrongSize), decomp.ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n^3) for the factorization, Space O(n^2).
func New(mean []float64, cov matrix.Matrix) (*MultivariateNormal, error) {
	if err := matrix.ValidateNotNil(cov); err != nil {
		return nil, gaussianErrorf(opNew, err)
	}
	if len(mean) != cov.Rows() {
		return nil, gaussianErrorf(opNew, ErrDimensionMismatch)
	}

	ch := decomp.NewCholeskyDecomposer()
	if err := ch.SetInputMatrix(cov); err != nil {
		return nil, gaussianErrorf(opNew, err)
	}
	if err := ch.Decompose(); err != nil {
		return nil, gaussianErrorf(opNew, err)
	}

	return NewFromDecomposer(mean, ch)
}

// NewFromDecomposer builds a sampler from an already-decomposed covariance.
// The factor is selected by the decomposer's Type():
//
//   - TypeCholesky: A = L; the input must have been SPD.
//   - TypeSVD: A = U·diag(√w); supports positive semi-definite covariances,
//     where the distribution degenerates onto the range of Σ.
//
// Other decomposition types carry no covariance square root and are
// rejected with ErrUnsupportedType.
//
// Errors:
//   - ErrNotDecomposed, ErrDimensionMismatch, ErrUnsupportedType,
//     decomp.ErrNotPositiveDefinite (Cholesky path).
//
// Complexity:
//   - Time O(n^2) (Cholesky) or O(n^3) (SVD product), Space O(n^2).
func NewFromDecomposer(mean []float64, d decomp.Decomposer) (*MultivariateNormal, error) {
	if d == nil || !d.IsDecompositionAvailable() {
		return nil, gaussianErrorf(opNewFrom, ErrNotDecomposed)
	}

	var (
		factor matrix.Matrix
		err    error
	)
	switch d.Type() {
	case decomp.TypeCholesky:
		ch := d.(*decomp.CholeskyDecomposer)
		spd, spdErr := ch.IsSPD()
		if spdErr != nil {
			return nil, gaussianErrorf(opNewFrom, spdErr)
		}
		if !spd {
			return nil, gaussianErrorf(opNewFrom, decomp.ErrNotPositiveDefinite)
		}
		factor, err = ch.L()
		if err != nil {
			return nil, gaussianErrorf(opNewFrom, err)
		}

	case decomp.TypeSVD:
		factor, err = svdFactor(d.(*decomp.SingularValueDecomposer))
		if err != nil {
			return nil, gaussianErrorf(opNewFrom, err)
		}

	default:
		return nil, gaussianErrorf(opNewFrom, ErrUnsupportedType)
	}

	n := factor.Rows()
	if factor.Cols() != n || len(mean) != n {
		return nil, gaussianErrorf(opNewFrom, ErrDimensionMismatch)
	}

	mu := make([]float64, n)
	copy(mu, mean)

	return &MultivariateNormal{
		mean:   mu,
		factor: factor.(*matrix.Dense),
		dim:    n,
	}, nil
}

// svdFactor builds A = U·diag(√w) from a decomposed covariance SVD.
// Negative rounding noise in w is clamped to zero before the square root.
func svdFactor(svd *decomp.SingularValueDecomposer) (matrix.Matrix, error) {
	u, err := svd.U()
	if err != nil {
		return nil, gaussianErrorf(opSVDFactor, err)
	}
	w, err := svd.SingularValues()
	if err != nil {
		return nil, gaussianErrorf(opSVDFactor, err)
	}

	root, err := matrix.NewDense(len(w), len(w))
	if err != nil {
		return nil, gaussianErrorf(opSVDFactor, err)
	}
	for i, wi := range w {
		if wi > 0 {
			if err = root.Set(i, i, math.Sqrt(wi)); err != nil {
				return nil, gaussianErrorf(opSVDFactor, err)
			}
		}
	}

	return matrix.Mul(u, root)
}

// Dim returns the dimension of the distribution. Complexity: O(1).
func (mn *MultivariateNormal) Dim() int { return mn.dim }

// Mean returns a copy of μ. Complexity: O(n).
func (mn *MultivariateNormal) Mean() []float64 {
	cp := make([]float64, mn.dim)
	copy(cp, mn.mean)

	return cp
}

// Sample draws one vector x = μ + A·z with z ~ N(0, I).
//
// Errors: ErrNilRand.
// Complexity: Time O(n^2), Space O(n).
func (mn *MultivariateNormal) Sample(rng *rand.Rand) ([]float64, error) {
	if rng == nil {
		return nil, gaussianErrorf(opSample, ErrNilRand)
	}

	z := make([]float64, mn.dim)
	for i := range z {
		z[i] = rng.NormFloat64()
	}
	x, err := matrix.MatVec(mn.factor, z)
	if err != nil {
		return nil, gaussianErrorf(opSample, err)
	}
	for i := range x {
		x[i] += mn.mean[i]
	}

	return x, nil
}

// SampleN draws count vectors and returns them as the rows of a count×n
// matrix.
//
// Errors: ErrNilRand, ErrDimensionMismatch (count <= 0).
// Complexity: Time O(count*n^2), Space O(count*n).
func (mn *MultivariateNormal) SampleN(count int, rng *rand.Rand) (*matrix.Dense, error) {
	if rng == nil {
		return nil, gaussianErrorf(opSampleN, ErrNilRand)
	}
	if count <= 0 {
		return nil, gaussianErrorf(opSampleN, ErrDimensionMismatch)
	}

	out, err := matrix.NewDense(count, mn.dim)
	if err != nil {
		return nil, gaussianErrorf(opSampleN, err)
	}
	data := out.Data()

	var i int
	var x []float64
	for i = 0; i < count; i++ {
		x, err = mn.Sample(rng)
		if err != nil {
			return nil, gaussianErrorf(opSampleN, err)
		}
		copy(data[i*mn.dim:(i+1)*mn.dim], x)
	}

	return out, nil
}
