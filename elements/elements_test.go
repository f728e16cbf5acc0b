package elements

import (
	"testing"

	"github.com/atomgrad/atomgrad/backend/cpu"
	"github.com/atomgrad/atomgrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	cases := map[int]string{1: "H", 6: "C", 8: "O", 26: "Fe", 118: "Og"}
	for z, want := range cases {
		got, err := Symbol(z)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Symbol(0)
	assert.Error(t, err)
	_, err = Symbol(MaxZ + 1)
	assert.Error(t, err)
}

func TestAtomicNumber(t *testing.T) {
	z, err := AtomicNumber("Fe")
	require.NoError(t, err)
	assert.Equal(t, 26, z)

	_, err = AtomicNumber("Xx")
	assert.Error(t, err)
}

func TestSymbolRoundTrip(t *testing.T) {
	for z := 1; z <= MaxZ; z++ {
		s, err := Symbol(z)
		require.NoError(t, err)
		back, err := AtomicNumber(s)
		require.NoError(t, err)
		assert.Equal(t, z, back, s)
	}
}

func TestMass(t *testing.T) {
	m, err := Mass(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.008, m, 0.01)

	m, err = Mass(26)
	require.NoError(t, err)
	assert.InDelta(t, 55.845, m, 0.01)

	_, err = Mass(0)
	assert.Error(t, err)
	_, err = Mass(118)
	assert.Error(t, err)
}

func TestMultiplicity(t *testing.T) {
	cases := map[int]int{1: 2, 2: 1, 6: 3, 8: 3}
	for z, want := range cases {
		m, err := Multiplicity(z)
		require.NoError(t, err)
		assert.Equal(t, want, m, "Z=%d", z)
	}

	_, err := Multiplicity(118)
	assert.Error(t, err)
}

func TestCentroid(t *testing.T) {
	b := cpu.New()

	positions, err := tensor.FromSlice([]float64{
		0, 0, 0,
		2, 0, 0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	t.Run("equal masses", func(t *testing.T) {
		numbers, err := tensor.FromSlice([]int64{1, 1}, tensor.Shape{2}, b)
		require.NoError(t, err)
		c, err := Centroid(positions, numbers)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c[0], 1e-12)
		assert.InDelta(t, 0.0, c[1], 1e-12)
	})

	t.Run("mass weighted", func(t *testing.T) {
		numbers, err := tensor.FromSlice([]int64{8, 1}, tensor.Shape{2}, b)
		require.NoError(t, err)
		c, err := Centroid(positions, numbers)
		require.NoError(t, err)
		mO, _ := Mass(8)
		mH, _ := Mass(1)
		assert.InDelta(t, 2*mH/(mO+mH), c[0], 1e-12)
	})

	t.Run("unknown mass", func(t *testing.T) {
		numbers, err := tensor.FromSlice([]int64{118, 1}, tensor.Shape{2}, b)
		require.NoError(t, err)
		_, err = Centroid(positions, numbers)
		assert.Error(t, err)
	})
}
