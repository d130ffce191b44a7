// Package decomp_test: shared fixtures for the decomposition suites.
package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/matrix"
)

// mustDense builds a Dense from row literals or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// requireAllClose asserts elementwise |a-b| <= tol.
func requireAllClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, tol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ beyond tol=%g:\nwant:\n%v\ngot:\n%v", tol, want, got)
}

// requireOrthonormalCols asserts QᵀQ = I within tol.
func requireOrthonormalCols(t *testing.T, q matrix.Matrix, tol float64) {
	t.Helper()
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	gram, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.Identity(q.Cols())
	require.NoError(t, err)
	requireAllClose(t, id, gram, tol)
}
