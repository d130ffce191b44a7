// Package matrix_test contains unit tests for the random matrix builders.
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/matrix"
)

// TestNewRandomDense_Deterministic: identical seeds produce identical
// matrices; entries stay inside [lo, hi).
func TestNewRandomDense_Deterministic(t *testing.T) {
	a, err := matrix.NewRandomDense(4, 3, -2, 2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := matrix.NewRandomDense(4, 3, -2, 2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	same, err := matrix.AllClose(a, b, 0)
	require.NoError(t, err)
	assert.True(t, same, "same seed must reproduce the same matrix")

	var i, j int
	var v float64
	for i = 0; i < 4; i++ {
		for j = 0; j < 3; j++ {
			v, err = a.At(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, -2.0)
			assert.Less(t, v, 2.0)
		}
	}
}

// TestNewRandomDense_Validation covers nil rng and an empty range.
func TestNewRandomDense_Validation(t *testing.T) {
	_, err := matrix.NewRandomDense(2, 2, 0, 1, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.NewRandomDense(2, 2, 1, 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestNewRandomSPD: the result must be exactly symmetric with a diagonal
// dominated by the +n·I shift.
func TestNewRandomSPD(t *testing.T) {
	const n = 5
	spd, err := matrix.NewRandomSPD(n, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	var i, j int
	var vij, vji float64
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			vij, err = spd.At(i, j)
			require.NoError(t, err)
			vji, err = spd.At(j, i)
			require.NoError(t, err)
			assert.Equal(t, vji, vij, "Gram construction must be exactly symmetric")
		}
		vij, err = spd.At(i, i)
		require.NoError(t, err)
		assert.Greater(t, vij, float64(n)-1, "diagonal shift must dominate")
	}
}

// TestNewRandomOrthogonal: QᵀQ must reconstruct the identity.
func TestNewRandomOrthogonal(t *testing.T) {
	const n = 6
	q, err := matrix.NewRandomOrthogonal(n, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	gram, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.Identity(n)
	require.NoError(t, err)

	ok, err := matrix.AllClose(gram, id, 1e-10)
	require.NoError(t, err)
	assert.True(t, ok, "columns must be orthonormal")
}
