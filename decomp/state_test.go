// Package decomp_test: lifecycle state machine tests, run against every
// concrete decomposer through the shared Decomposer interface.
package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/decomp"
	"github.com/katalvlaran/lvlinear/matrix"
)

// newEveryDecomposer returns one fresh instance of each concrete type.
func newEveryDecomposer(t *testing.T) []decomp.Decomposer {
	t.Helper()
	svd, err := decomp.NewSingularValueDecomposer()
	require.NoError(t, err)

	return []decomp.Decomposer{
		decomp.NewLUDecomposer(),
		decomp.NewCholeskyDecomposer(),
		decomp.NewQRDecomposer(),
		decomp.NewRQDecomposer(),
		svd,
	}
}

// TestLifecycle_NotReady: Decompose before SetInputMatrix fails with
// ErrNotReady for every decomposer.
func TestLifecycle_NotReady(t *testing.T) {
	for _, d := range newEveryDecomposer(t) {
		t.Run(d.Type().String(), func(t *testing.T) {
			assert.False(t, d.IsReady())
			assert.False(t, d.IsLocked())
			assert.False(t, d.IsDecompositionAvailable())
			assert.ErrorIs(t, d.Decompose(), decomp.ErrNotReady)
		})
	}
}

// TestLifecycle_HappyPath: SetInputMatrix → Decompose flips the flags in
// order and ends unlocked with factors available.
func TestLifecycle_HappyPath(t *testing.T) {
	a := mustDense(t, [][]float64{{4, 1, 0}, {1, 3, 1}, {0, 1, 2}})

	for _, d := range newEveryDecomposer(t) {
		t.Run(d.Type().String(), func(t *testing.T) {
			require.NoError(t, d.SetInputMatrix(a))
			assert.True(t, d.IsReady())
			assert.False(t, d.IsDecompositionAvailable())

			require.NoError(t, d.Decompose())
			assert.True(t, d.IsDecompositionAvailable())
			assert.False(t, d.IsLocked(), "lock must be released after Decompose")
		})
	}
}

// TestLifecycle_NewInputInvalidates: setting a new input after a successful
// Decompose must clear availability.
func TestLifecycle_NewInputInvalidates(t *testing.T) {
	a := mustDense(t, [][]float64{{2, 0}, {0, 3}})

	for _, d := range newEveryDecomposer(t) {
		t.Run(d.Type().String(), func(t *testing.T) {
			require.NoError(t, d.SetInputMatrix(a))
			require.NoError(t, d.Decompose())
			require.True(t, d.IsDecompositionAvailable())

			require.NoError(t, d.SetInputMatrix(a))
			assert.False(t, d.IsDecompositionAvailable(),
				"new input must invalidate previous factors")
			assert.True(t, d.IsReady())
		})
	}
}

// TestLifecycle_NilInput: SetInputMatrix rejects nil with the matrix
// sentinel and leaves the state untouched.
func TestLifecycle_NilInput(t *testing.T) {
	for _, d := range newEveryDecomposer(t) {
		t.Run(d.Type().String(), func(t *testing.T) {
			assert.ErrorIs(t, d.SetInputMatrix(nil), matrix.ErrNilMatrix)
			assert.False(t, d.IsReady())
		})
	}
}

// TestLifecycle_FailedDecomposeStaysUnavailable: a shape rejection leaves
// the decomposer READY but without factors, and the lock released.
func TestLifecycle_FailedDecomposeStaysUnavailable(t *testing.T) {
	wide := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}) // 2×3

	lu := decomp.NewLUDecomposer()
	require.NoError(t, lu.SetInputMatrix(wide))
	assert.ErrorIs(t, lu.Decompose(), decomp.ErrWrongSize)
	assert.False(t, lu.IsDecompositionAvailable())
	assert.False(t, lu.IsLocked())
	assert.True(t, lu.IsReady(), "input is still set after a failed Decompose")
}

// TestOneByOneBoundary: the smallest conformant input works end to end.
// The LU determinant is the element itself, the Cholesky factor its square
// root, and the lone singular value its magnitude.
func TestOneByOneBoundary(t *testing.T) {
	a := mustDense(t, [][]float64{{9}})

	lu := decomp.NewLUDecomposer()
	require.NoError(t, lu.SetInputMatrix(a))
	require.NoError(t, lu.Decompose())
	det, err := lu.Determinant()
	require.NoError(t, err)
	assert.InDelta(t, 9.0, det, 1e-15)

	ch := decomp.NewCholeskyDecomposer()
	require.NoError(t, ch.SetInputMatrix(a))
	require.NoError(t, ch.Decompose())
	l, err := ch.L()
	require.NoError(t, err)
	l00, err := l.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, l00, 1e-15)

	svd, err := decomp.NewSingularValueDecomposer()
	require.NoError(t, err)
	require.NoError(t, svd.SetInputMatrix(a))
	require.NoError(t, svd.Decompose())
	vals, err := svd.SingularValues()
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.InDelta(t, 9.0, vals[0], 1e-15)
}

// TestType_Strings pins the enum labels.
func TestType_Strings(t *testing.T) {
	assert.Equal(t, "LU", decomp.TypeLU.String())
	assert.Equal(t, "Cholesky", decomp.TypeCholesky.String())
	assert.Equal(t, "QR", decomp.TypeQR.String())
	assert.Equal(t, "RQ", decomp.TypeRQ.String())
	assert.Equal(t, "SVD", decomp.TypeSVD.String())
	assert.Equal(t, "Unknown", decomp.Type(99).String())
}

// TestOptions_InvalidIterations: a non-positive budget is rejected at
// construction time.
func TestOptions_InvalidIterations(t *testing.T) {
	_, err := decomp.NewSingularValueDecomposer(decomp.WithMaxIterations(0))
	assert.ErrorIs(t, err, decomp.ErrInvalidIterations)
	_, err = decomp.NewSingularValueDecomposer(decomp.WithMaxIterations(-3))
	assert.ErrorIs(t, err, decomp.ErrInvalidIterations)
}
