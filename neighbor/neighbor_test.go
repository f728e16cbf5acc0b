package neighbor

import (
	"testing"

	"github.com/atomgrad/atomgrad/backend/cpu"
	"github.com/atomgrad/atomgrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIsolatedPair(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{
		0, 0, 0,
		1.5, 0, 0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	edgeIndex, offsets, err := Build(positions, nil, 2.0)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2}, edgeIndex.Shape())
	assert.Equal(t, []int64{0, 1, 1, 0}, edgeIndex.Data())
	for _, o := range offsets.Data() {
		assert.Zero(t, o)
	}
}

func TestBuildRespectsCutoff(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{
		0, 0, 0,
		1.0, 0, 0,
		5.0, 0, 0,
	}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)

	edgeIndex, _, err := Build(positions, nil, 2.0)
	require.NoError(t, err)

	// Only the close pair, in both directions.
	assert.Equal(t, 2, edgeIndex.Shape()[1])
	assert.Equal(t, []int64{0, 1, 1, 0}, edgeIndex.Data())
}

func TestBuildRejectsBadInput(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{0, 0, 0}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)

	_, _, err = Build(positions, nil, 0)
	assert.Error(t, err)

	flat, err := tensor.FromSlice([]float64{0, 0}, tensor.Shape{2}, b)
	require.NoError(t, err)
	_, _, err = Build(flat, nil, 2.0)
	assert.Error(t, err)
}

func TestBuildRejectsSingularCell(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{0, 0, 0}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)
	cell := tensor.Zeros[float64](tensor.Shape{3, 3}, b)

	_, _, err = Build(positions, cell, 2.0)
	assert.Error(t, err)
}

func TestBuildPeriodicImages(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{0.5, 0.5, 0.5}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)
	cell, err := tensor.FromSlice([]float64{
		1, 0, 0,
		0, 10, 0,
		0, 0, 10,
	}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)

	edgeIndex, offsets, err := Build(positions, cell, 1.5)
	require.NoError(t, err)

	// The single atom sees its x images at distance 1, in both
	// directions, and nothing else within the cutoff.
	require.Equal(t, 2, edgeIndex.Shape()[1])
	offs := offsets.Data()
	xImages := map[float64]bool{}
	for e := 0; e < 2; e++ {
		assert.Equal(t, int64(0), edgeIndex.At(0, e))
		assert.Equal(t, int64(0), edgeIndex.At(1, e))
		xImages[offs[e*3]] = true
		assert.Zero(t, offs[e*3+1])
		assert.Zero(t, offs[e*3+2])
	}
	assert.True(t, xImages[1] && xImages[-1])
}

func TestBuildTranslationByLatticeVector(t *testing.T) {
	b := cpu.New()
	cell, err := tensor.FromSlice([]float64{
		4, 0, 0,
		0, 4, 0,
		0, 0, 4,
	}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)

	inside, err := tensor.FromSlice([]float64{
		0.5, 0.5, 0.5,
		2.5, 0.5, 0.5,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	outside, err := tensor.FromSlice([]float64{
		0.5, 0.5, 0.5,
		10.5, 0.5, 0.5,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	e1, _, err := Build(inside, cell, 2.5)
	require.NoError(t, err)
	e2, _, err := Build(outside, cell, 2.5)
	require.NoError(t, err)

	// Translating atom 1 by two lattice vectors changes offsets but not
	// the edge set.
	assert.Equal(t, e1.Shape(), e2.Shape())
	assert.Equal(t, e1.Data(), e2.Data())
}

func TestBuildGraphAssemblesBatch(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{
		0, 0, 0,
		1.1, 0, 0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	numbers, err := tensor.FromSlice([]int64{7, 7}, tensor.Shape{2}, b)
	require.NoError(t, err)

	batch, err := BuildGraph(positions, numbers, nil, 5.0)
	require.NoError(t, err)
	require.NoError(t, batch.Validate())

	assert.Equal(t, 2, batch.NumAtoms())
	assert.Equal(t, 2, batch.NumEdges())
	assert.Equal(t, 1, batch.NumStructures())
	assert.False(t, batch.Periodic())
	require.NotNil(t, batch.Strain)
	assert.Equal(t, tensor.Shape{1, 3, 3}, batch.Strain.Shape())
}

func TestBuildGraphPeriodic(t *testing.T) {
	b := cpu.New()
	positions, err := tensor.FromSlice([]float64{0, 0, 0}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)
	numbers, err := tensor.FromSlice([]int64{6}, tensor.Shape{1}, b)
	require.NoError(t, err)
	cell, err := tensor.FromSlice([]float64{
		3, 0, 0,
		0, 3, 0,
		0, 0, 3,
	}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)

	batch, err := BuildGraph(positions, numbers, cell, 3.5)
	require.NoError(t, err)
	require.NoError(t, batch.Validate())

	assert.True(t, batch.Periodic())
	assert.Equal(t, tensor.Shape{1, 3, 3}, batch.Cell.Shape())
	// Six nearest images within 3.5 of a cubic cell of side 3.
	assert.Equal(t, 6, batch.NumEdges())
}