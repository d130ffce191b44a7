// Package matrix_test contains unit tests for Dense storage and accessors.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinear/matrix"
)

// hide wraps a Matrix to force the generic interface path in kernels that
// fast-path on *Dense.
type hide struct{ matrix.Matrix }

// mustDense builds a Dense from row literals or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// TestNewDense_ZeroInit verifies dimensions and zero initialization.
func TestNewDense_ZeroInit(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	var i, j int
	var v float64
	for i = 0; i < 2; i++ {
		for j = 0; j < 3; j++ {
			v, err = m.At(i, j)
			require.NoError(t, err)
			assert.Zero(t, v)
		}
	}
}

// TestNewDense_InvalidDimensions rejects non-positive shapes.
func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ r, c int }{{0, 3}, {3, 0}, {-1, 2}, {0, 0}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

// TestNewDenseFromRows_Ragged rejects rows of unequal length.
func TestNewDenseFromRows_Ragged(t *testing.T) {
	_, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRaggedRows)

	_, err = matrix.NewDenseFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestDense_AtSet_Bounds verifies out-of-range coordinates return
// ErrOutOfRange instead of panicking.
func TestDense_AtSet_Bounds(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})

	for _, tc := range []struct{ i, j int }{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := m.At(tc.i, tc.j)
		assert.ErrorIs(t, err, matrix.ErrOutOfRange)
		err = m.Set(tc.i, tc.j, 1.0)
		assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	}

	require.NoError(t, m.Set(1, 1, 7.5))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)
}

// TestDense_NaNPolicy: the default Dense propagates NaN/Inf per IEEE 754,
// while NewDenseStrict rejects them at Set.
func TestDense_NaNPolicy(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v), "default policy must propagate NaN")

	s, err := matrix.NewDenseStrict(1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, s.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.NoError(t, s.Set(0, 0, 1.0))
}

// TestDense_CloneIndependence: mutating a clone leaves the original intact.
func TestDense_CloneIndependence(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 99))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	w, err := cp.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 99.0, w)
}

// TestDense_DataAliases: the Data slice is a live view of the storage.
func TestDense_DataAliases(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	m.Data()[3] = 40 // offset = 1*2 + 1

	v, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)
}

// TestDense_Do: the visitor walks row-major and honors early exit.
func TestDense_Do(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})

	var order []float64
	m.Do(func(i, j int, v float64) bool {
		order = append(order, v)
		return true
	})
	assert.Equal(t, []float64{1, 2, 3, 4}, order, "row-major visiting order")

	visits := 0
	m.Do(func(i, j int, v float64) bool {
		visits++
		return v != 2 // stop at the second element
	})
	assert.Equal(t, 2, visits, "callback returning false must stop the walk")
}

// TestDense_Apply: in-place transform, plus strict-policy rejection of a
// transformer that produces non-finite values.
func TestDense_Apply(t *testing.T) {
	m := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, m.Apply(func(i, j int, v float64) float64 { return 2 * v }))
	assert.Equal(t, []float64{2, 4, 6, 8}, m.Data())

	s, err := matrix.NewDenseStrict(1, 2)
	require.NoError(t, err)
	err = s.Apply(func(i, j int, v float64) float64 { return math.Inf(1) })
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	// Default policy propagates non-finite results.
	require.NoError(t, m.Apply(func(i, j int, v float64) float64 { return math.NaN() }))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
}

// TestIdentity builds I and checks the Kronecker delta pattern.
func TestIdentity(t *testing.T) {
	id, err := matrix.Identity(3)
	require.NoError(t, err)

	var i, j int
	var v float64
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			v, err = id.At(i, j)
			require.NoError(t, err)
			if i == j {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Zero(t, v)
			}
		}
	}
}
