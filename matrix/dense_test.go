package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := NewDense(0, 3)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewDense(3, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestDense_SetAt_RoundTrip(t *testing.T) {
	m, err := NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, 1, 3.5))
	got, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)
}

func TestDense_OutOfRange(t *testing.T) {
	m, err := NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, ErrOutOfRange)

	err = m.Set(-1, 0, 1.0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDense_RejectsNaNInf(t *testing.T) {
	m, err := NewDense(1, 1)
	require.NoError(t, err)

	err = m.Set(0, 0, math.NaN())
	require.ErrorIs(t, err, ErrNaNInf)
}

func TestDense_Clone_IsIndependent(t *testing.T) {
	m, err := NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1.0))

	clone := m.Clone()
	require.NoError(t, m.Set(0, 0, 2.0))

	got, err := clone.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}
