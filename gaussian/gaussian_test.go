// Package gaussian_test contains unit tests for the multivariate normal
// sampler.
package gaussian_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/decomp"
	"github.com/katalvlaran/lvlinear/gaussian"
	"github.com/katalvlaran/lvlinear/matrix"
)

// mustDense builds a Dense from row literals or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// TestNew_Validation covers nil covariance, mean/covariance mismatch, and a
// non-SPD covariance.
func TestNew_Validation(t *testing.T) {
	cov := mustDense(t, [][]float64{{1, 0}, {0, 1}})

	_, err := gaussian.New([]float64{0, 0}, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = gaussian.New([]float64{0}, cov)
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch)

	indefinite := mustDense(t, [][]float64{{1, 2}, {2, 1}})
	_, err = gaussian.New([]float64{0, 0}, indefinite)
	assert.ErrorIs(t, err, decomp.ErrNotPositiveDefinite)
}

// TestSample_Reproducible: a fixed seed reproduces the same stream, and
// sampling validates the random source.
func TestSample_Reproducible(t *testing.T) {
	cov := mustDense(t, [][]float64{{2, 1}, {1, 2}})
	mn, err := gaussian.New([]float64{1, -1}, cov)
	require.NoError(t, err)
	assert.Equal(t, 2, mn.Dim())
	assert.Equal(t, []float64{1, -1}, mn.Mean())

	x1, err := mn.Sample(rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	x2, err := mn.Sample(rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, x1, x2, "same seed must reproduce the same sample")

	_, err = mn.Sample(nil)
	assert.ErrorIs(t, err, gaussian.ErrNilRand)
}

// TestSampleN_Moments: the empirical mean and covariance of a large sample
// converge to the distribution parameters (loose statistical tolerances).
func TestSampleN_Moments(t *testing.T) {
	mean := []float64{2, -3}
	cov := mustDense(t, [][]float64{{4, 1}, {1, 2}})
	mn, err := gaussian.New(mean, cov)
	require.NoError(t, err)

	const n = 200_000
	samples, err := mn.SampleN(n, rand.New(rand.NewSource(1234)))
	require.NoError(t, err)
	require.Equal(t, n, samples.Rows())
	require.Equal(t, 2, samples.Cols())

	data := samples.Data()
	var sum0, sum1 float64
	var i int
	for i = 0; i < n; i++ {
		sum0 += data[2*i]
		sum1 += data[2*i+1]
	}
	m0, m1 := sum0/n, sum1/n
	assert.InDelta(t, mean[0], m0, 0.05)
	assert.InDelta(t, mean[1], m1, 0.05)

	var c00, c01, c11 float64
	var d0, d1 float64
	for i = 0; i < n; i++ {
		d0 = data[2*i] - m0
		d1 = data[2*i+1] - m1
		c00 += d0 * d0
		c01 += d0 * d1
		c11 += d1 * d1
	}
	assert.InDelta(t, 4.0, c00/(n-1), 0.1)
	assert.InDelta(t, 1.0, c01/(n-1), 0.1)
	assert.InDelta(t, 2.0, c11/(n-1), 0.1)

	_, err = mn.SampleN(0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch)
	_, err = mn.SampleN(3, nil)
	assert.ErrorIs(t, err, gaussian.ErrNilRand)
}

// TestNewFromDecomposer_Cholesky: a pre-decomposed Cholesky produces the
// same sampler as the covariance path.
func TestNewFromDecomposer_Cholesky(t *testing.T) {
	cov := mustDense(t, [][]float64{{2, 1}, {1, 2}})
	ch := decomp.NewCholeskyDecomposer()
	require.NoError(t, ch.SetInputMatrix(cov))
	require.NoError(t, ch.Decompose())

	fromDec, err := gaussian.NewFromDecomposer([]float64{0, 0}, ch)
	require.NoError(t, err)
	direct, err := gaussian.New([]float64{0, 0}, cov)
	require.NoError(t, err)

	x1, err := fromDec.Sample(rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	x2, err := direct.Sample(rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, x2, x1)
}

// TestNewFromDecomposer_SVD: an SVD-backed sampler handles a singular
// (positive semi-definite) covariance, where Cholesky-based New refuses.
func TestNewFromDecomposer_SVD(t *testing.T) {
	// Rank-1 covariance: all mass on the direction (1, 2).
	cov := mustDense(t, [][]float64{{1, 2}, {2, 4}})

	_, err := gaussian.New([]float64{0, 0}, cov)
	assert.ErrorIs(t, err, decomp.ErrNotPositiveDefinite)

	svd, err := decomp.NewSingularValueDecomposer()
	require.NoError(t, err)
	require.NoError(t, svd.SetInputMatrix(cov))
	require.NoError(t, svd.Decompose())

	mn, err := gaussian.NewFromDecomposer([]float64{0, 0}, svd)
	require.NoError(t, err)

	// Every sample must lie on the support line x1 = 2·x0.
	rng := rand.New(rand.NewSource(42))
	var x []float64
	for i := 0; i < 100; i++ {
		x, err = mn.Sample(rng)
		require.NoError(t, err)
		assert.InDelta(t, 2*x[0], x[1], 1e-9, "sample off the rank-1 support")
	}
}

// TestNewFromDecomposer_Rejections: wrong types, undecomposed inputs, and
// non-SPD Cholesky factors are all refused.
func TestNewFromDecomposer_Rejections(t *testing.T) {
	cov := mustDense(t, [][]float64{{2, 1}, {1, 2}})

	// LU carries no covariance square root.
	lu := decomp.NewLUDecomposer()
	require.NoError(t, lu.SetInputMatrix(cov))
	require.NoError(t, lu.Decompose())
	_, err := gaussian.NewFromDecomposer([]float64{0, 0}, lu)
	assert.ErrorIs(t, err, gaussian.ErrUnsupportedType)

	// Not decomposed yet.
	ch := decomp.NewCholeskyDecomposer()
	require.NoError(t, ch.SetInputMatrix(cov))
	_, err = gaussian.NewFromDecomposer([]float64{0, 0}, ch)
	assert.ErrorIs(t, err, gaussian.ErrNotDecomposed)
	_, err = gaussian.NewFromDecomposer([]float64{0, 0}, nil)
	assert.ErrorIs(t, err, gaussian.ErrNotDecomposed)

	// Decomposed but not SPD.
	indefinite := mustDense(t, [][]float64{{1, 2}, {2, 1}})
	require.NoError(t, ch.SetInputMatrix(indefinite))
	require.NoError(t, ch.Decompose())
	_, err = gaussian.NewFromDecomposer([]float64{0, 0}, ch)
	assert.ErrorIs(t, err, decomp.ErrNotPositiveDefinite)

	// Mean length must match the factor order.
	require.NoError(t, ch.SetInputMatrix(cov))
	require.NoError(t, ch.Decompose())
	_, err = gaussian.NewFromDecomposer([]float64{0}, ch)
	assert.ErrorIs(t, err, gaussian.ErrDimensionMismatch)
}
