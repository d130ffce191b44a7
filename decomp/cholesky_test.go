// Package decomp_test: Cholesky factorization tests.
package decomp_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/decomp"
	"github.com/katalvlaran/lvlinear/matrix"
)

// decomposedCholesky is the common fixture: factor a and return the
// decomposer.
func decomposedCholesky(t *testing.T, a matrix.Matrix) *decomp.CholeskyDecomposer {
	t.Helper()
	ch := decomp.NewCholeskyDecomposer()
	require.NoError(t, ch.SetInputMatrix(a))
	require.NoError(t, ch.Decompose())

	return ch
}

// TestCholesky_KnownFactor pins the classical textbook example with an
// integer factor: L = [[2,0,0],[6,1,0],[-8,5,3]].
func TestCholesky_KnownFactor(t *testing.T) {
	a := mustDense(t, [][]float64{
		{4, 12, -16},
		{12, 37, -43},
		{-16, -43, 98},
	})
	ch := decomposedCholesky(t, a)

	spd, err := ch.IsSPD()
	require.NoError(t, err)
	assert.True(t, spd)

	l, err := ch.L()
	require.NoError(t, err)
	want := mustDense(t, [][]float64{
		{2, 0, 0},
		{6, 1, 0},
		{-8, 5, 3},
	})
	requireAllClose(t, want, l, 1e-12)

	// R = Lᵀ and A = L·Lᵀ.
	r, err := ch.R()
	require.NoError(t, err)
	lt, err := matrix.Transpose(l)
	require.NoError(t, err)
	requireAllClose(t, lt, r, 0)

	prod, err := matrix.Mul(l, r)
	require.NoError(t, err)
	requireAllClose(t, a, prod, 1e-10)
}

// TestCholesky_NonSquare: rectangular input is rejected at Decompose.
func TestCholesky_NonSquare(t *testing.T) {
	ch := decomp.NewCholeskyDecomposer()
	require.NoError(t, ch.SetInputMatrix(mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})))
	assert.ErrorIs(t, ch.Decompose(), decomp.ErrWrongSize)
}

// TestCholesky_Asymmetric: exact symmetry is required; a single off-diagonal
// perturbation clears the SPD flag and blocks Solve.
func TestCholesky_Asymmetric(t *testing.T) {
	a := mustDense(t, [][]float64{
		{4, 1},
		{1.0000001, 4},
	})
	ch := decomposedCholesky(t, a)

	spd, err := ch.IsSPD()
	require.NoError(t, err)
	assert.False(t, spd, "asymmetric input must not pass as SPD")

	_, err = ch.Solve(mustDense(t, [][]float64{{1}, {1}}))
	assert.ErrorIs(t, err, decomp.ErrNotPositiveDefinite)
}

// TestCholesky_Indefinite: a symmetric but indefinite matrix completes
// Decompose and reports !IsSPD.
func TestCholesky_Indefinite(t *testing.T) {
	a := mustDense(t, [][]float64{
		{1, 2},
		{2, 1}, // eigenvalues 3 and -1
	})
	ch := decomposedCholesky(t, a)

	spd, err := ch.IsSPD()
	require.NoError(t, err)
	assert.False(t, spd)
}

// TestCholesky_Solve: solve against a random SPD system and verify the
// residual, plus shape validation.
func TestCholesky_Solve(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	a, err := matrix.NewRandomSPD(6, rng)
	require.NoError(t, err)
	b, err := matrix.NewRandomDense(6, 2, -5, 5, rng)
	require.NoError(t, err)

	ch := decomposedCholesky(t, a)
	x, err := ch.Solve(b)
	require.NoError(t, err)

	ax, err := matrix.Mul(a, x)
	require.NoError(t, err)
	requireAllClose(t, b, ax, 1e-9)

	short := mustDense(t, [][]float64{{1}, {2}})
	_, err = ch.Solve(short)
	assert.ErrorIs(t, err, decomp.ErrWrongSize)
	_, err = ch.Solve(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestCholesky_GettersBeforeDecompose: ErrNotAvailable gating.
func TestCholesky_GettersBeforeDecompose(t *testing.T) {
	ch := decomp.NewCholeskyDecomposer()

	_, err := ch.L()
	assert.ErrorIs(t, err, decomp.ErrNotAvailable)
	_, err = ch.R()
	assert.ErrorIs(t, err, decomp.ErrNotAvailable)
	_, err = ch.IsSPD()
	assert.ErrorIs(t, err, decomp.ErrNotAvailable)
	_, err = ch.Solve(mustDense(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, decomp.ErrNotAvailable)
}
