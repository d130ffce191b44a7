// Package decomp_test: Gauss-Jordan elimination tests.
package decomp_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/decomp"
	"github.com/katalvlaran/lvlinear/matrix"
)

// TestGaussJordan_SolveAndInvert: after the call A holds A⁻¹ and B holds X;
// both are verified by multiplication against snapshots.
func TestGaussJordan_SolveAndInvert(t *testing.T) {
	a := mustDense(t, [][]float64{
		{2, 1, 1},
		{1, 3, 2},
		{1, 0, 0},
	})
	b := mustDense(t, [][]float64{{4}, {5}, {6}})
	aOrig := a.Clone()
	bOrig := b.Clone()

	require.NoError(t, decomp.GaussJordan(a, b))

	// a now holds the inverse: Aorig · a = I.
	prod, err := matrix.Mul(aOrig, a)
	require.NoError(t, err)
	id, err := matrix.Identity(3)
	require.NoError(t, err)
	requireAllClose(t, id, prod, 1e-12)

	// b now holds the solution: Aorig · b = Borig.
	ax, err := matrix.Mul(aOrig, b)
	require.NoError(t, err)
	requireAllClose(t, bOrig, ax, 1e-12)
}

// TestGaussJordan_MatchesLU: the elimination solution agrees with the LU
// solver on a random well-conditioned system.
func TestGaussJordan_MatchesLU(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, err := matrix.NewRandomSPD(5, rng) // SPD keeps the system well-conditioned
	require.NoError(t, err)
	b, err := matrix.NewRandomDense(5, 3, -2, 2, rng)
	require.NoError(t, err)

	lu := decomposedLU(t, a)
	want, err := lu.Solve(b, 1e-12)
	require.NoError(t, err)

	aw := a.Clone()
	bw := b.Clone()
	require.NoError(t, decomp.GaussJordan(aw, bw))
	requireAllClose(t, want, bw, 1e-9)
}

// TestGaussJordan_Singular: a rank-deficient system fails with ErrSingular
// and leaves both operands untouched.
func TestGaussJordan_Singular(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {2, 4}})
	b := mustDense(t, [][]float64{{1}, {2}})
	aSnap := a.Clone()
	bSnap := b.Clone()

	assert.ErrorIs(t, decomp.GaussJordan(a, b), decomp.ErrSingular)
	requireAllClose(t, aSnap, a, 0)
	requireAllClose(t, bSnap, b, 0)
}

// TestGaussJordan_Validation covers nil operands and shape mismatches.
func TestGaussJordan_Validation(t *testing.T) {
	square := mustDense(t, [][]float64{{1, 0}, {0, 1}})

	assert.ErrorIs(t, decomp.GaussJordan(nil, square), matrix.ErrNilMatrix)
	assert.ErrorIs(t, decomp.GaussJordan(square, nil), matrix.ErrNilMatrix)

	rect := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.ErrorIs(t, decomp.GaussJordan(rect, square), matrix.ErrDimensionMismatch)

	shortB := mustDense(t, [][]float64{{1, 2}})
	assert.ErrorIs(t, decomp.GaussJordan(square, shortB), decomp.ErrWrongSize)
}

// TestGaussJordanInverse: in-place inversion round-trips through Mul, and a
// second inversion restores the original.
func TestGaussJordanInverse(t *testing.T) {
	a := mustDense(t, [][]float64{
		{4, 7},
		{2, 6},
	})
	orig := a.Clone()

	require.NoError(t, decomp.GaussJordanInverse(a))
	// det = 10; inverse = [[0.6,-0.7],[-0.2,0.4]].
	want := mustDense(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}})
	requireAllClose(t, want, a, 1e-12)

	require.NoError(t, decomp.GaussJordanInverse(a))
	requireAllClose(t, orig, a, 1e-12)
}

// TestGaussJordanInverse_Singular rejects the rank-1 matrix untouched.
func TestGaussJordanInverse_Singular(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {2, 4}})
	snap := a.Clone()

	assert.ErrorIs(t, decomp.GaussJordanInverse(a), decomp.ErrSingular)
	requireAllClose(t, snap, a, 0)
}
