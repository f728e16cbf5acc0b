package nn

import (
	"math"
	"sort"
	"testing"

	"github.com/atomgrad/atomgrad/autodiff"
	"github.com/atomgrad/atomgrad/backend/cpu"
	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/neighbor"
	"github.com/atomgrad/atomgrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func dimerBatch(t *testing.T, b Backend, distance float64) *graph.Batch[Backend] {
	t.Helper()
	positions, err := tensor.FromSlice([]float64{
		0, 0, 0,
		distance, 0, 0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	numbers, err := tensor.FromSlice([]int64{1, 1}, tensor.Shape{2}, b)
	require.NoError(t, err)
	edges, err := tensor.FromSlice([]int64{0, 1, 1, 0}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	return &graph.Batch[Backend]{
		Positions:     positions,
		AtomicNumbers: numbers,
		EdgeIndex:     edges,
	}
}

func TestComputeEdgeDataDimer(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 1.5)

	require.NoError(t, ComputeEdgeData(batch, false, false))

	require.NotNil(t, batch.EdgeVector)
	require.NotNil(t, batch.EdgeLength)
	assert.Equal(t, tensor.Shape{2, 3}, batch.EdgeVector.Shape())
	assert.Equal(t, tensor.Shape{2}, batch.EdgeLength.Shape())

	// Edge 0 has center 0, neighbor 1, so its vector points from atom 1
	// to atom 0.
	assert.InDeltaSlice(t, []float64{-1.5, 0, 0, 1.5, 0, 0}, batch.EdgeVector.Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{1.5, 1.5}, batch.EdgeLength.Data(), 1e-12)
}

func TestStrainDeformationIsIdentity(t *testing.T) {
	b := newBackend()

	plain := dimerBatch(t, b, 1.1)
	require.NoError(t, ComputeEdgeData(plain, false, false))

	strained := dimerBatch(t, b, 1.1)
	require.NoError(t, ComputeEdgeData(strained, true, true))

	require.NotNil(t, strained.Strain)
	assert.Equal(t, tensor.Shape{1, 3, 3}, strained.Strain.Shape())
	assert.InDeltaSlice(t, plain.EdgeLength.Data(), strained.EdgeLength.Data(), 1e-12)
	assert.InDeltaSlice(t, plain.EdgeVector.Data(), strained.EdgeVector.Data(), 1e-12)
}

func TestZeroEdgesIsSafe(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 8.0)
	var err error
	batch.EdgeIndex, err = tensor.FromSlice([]int64{}, tensor.Shape{2, 0}, b)
	require.NoError(t, err)

	require.NoError(t, ComputeEdgeData(batch, true, true))
	assert.Equal(t, tensor.Shape{0, 3}, batch.EdgeVector.Shape())
	assert.Equal(t, tensor.Shape{0}, batch.EdgeLength.Shape())
}

func TestPeriodicSelfEdge(t *testing.T) {
	b := newBackend()
	positions, err := tensor.FromSlice([]float64{0, 0, 0}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)
	numbers, err := tensor.FromSlice([]int64{6}, tensor.Shape{1}, b)
	require.NoError(t, err)
	edges, err := tensor.FromSlice([]int64{0, 0}, tensor.Shape{2, 1}, b)
	require.NoError(t, err)
	cell, err := tensor.FromSlice([]float64{
		4, 0, 0,
		0, 4, 0,
		0, 0, 4,
	}, tensor.Shape{1, 3, 3}, b)
	require.NoError(t, err)
	offsets, err := tensor.FromSlice([]float64{1, 0, 0}, tensor.Shape{1, 3}, b)
	require.NoError(t, err)

	batch := &graph.Batch[Backend]{
		Positions:     positions,
		AtomicNumbers: numbers,
		EdgeIndex:     edges,
		Cell:          cell,
		CellOffsets:   offsets,
	}

	require.NoError(t, ComputeEdgeData(batch, false, false))
	assert.InDeltaSlice(t, []float64{-4, 0, 0}, batch.EdgeVector.Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{4}, batch.EdgeLength.Data(), 1e-12)
}

func TestPeriodicLatticeTranslationInvariance(t *testing.T) {
	b := newBackend()
	cell, err := tensor.FromSlice([]float64{
		5, 0, 0,
		0, 5, 0,
		0, 0, 5,
	}, tensor.Shape{3, 3}, b)
	require.NoError(t, err)
	numbers, err := tensor.FromSlice([]int64{11, 17}, tensor.Shape{2}, b)
	require.NoError(t, err)

	original, err := tensor.FromSlice([]float64{
		0.5, 0.5, 0.5,
		3.0, 3.0, 3.0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	// Second atom moved by one full lattice vector along x.
	translated, err := tensor.FromSlice([]float64{
		0.5, 0.5, 0.5,
		8.0, 3.0, 3.0,
	}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	lengthsFor := func(positions *tensor.Tensor[float64, Backend]) []float64 {
		batch, err := neighbor.BuildGraph(positions, numbers, cell, 4.5)
		require.NoError(t, err)
		require.NoError(t, ComputeEdgeData(batch, false, false))
		lengths := append([]float64(nil), batch.EdgeLength.Data()...)
		sort.Float64s(lengths)
		return lengths
	}

	a := lengthsFor(original)
	c := lengthsFor(translated)
	require.Equal(t, len(a), len(c))
	assert.InDeltaSlice(t, a, c, 1e-9)
}

func TestMultiStructurePeriodicGathersPerEdgeCell(t *testing.T) {
	b := newBackend()

	single := func(cellSize float64) *graph.Batch[Backend] {
		positions, err := tensor.FromSlice([]float64{0, 0, 0}, tensor.Shape{1, 3}, b)
		require.NoError(t, err)
		numbers, err := tensor.FromSlice([]int64{6}, tensor.Shape{1}, b)
		require.NoError(t, err)
		edges, err := tensor.FromSlice([]int64{0, 0}, tensor.Shape{2, 1}, b)
		require.NoError(t, err)
		cell, err := tensor.FromSlice([]float64{
			cellSize, 0, 0,
			0, cellSize, 0,
			0, 0, cellSize,
		}, tensor.Shape{1, 3, 3}, b)
		require.NoError(t, err)
		offsets, err := tensor.FromSlice([]float64{0, 0, 1}, tensor.Shape{1, 3}, b)
		require.NoError(t, err)
		return &graph.Batch[Backend]{
			Positions:     positions,
			AtomicNumbers: numbers,
			EdgeIndex:     edges,
			Cell:          cell,
			CellOffsets:   offsets,
		}
	}

	merged, err := graph.Collate(single(3), single(7))
	require.NoError(t, err)
	require.NoError(t, ComputeEdgeData(merged, false, false))

	// Each structure's self-image edge uses its own cell.
	assert.InDeltaSlice(t, []float64{3, 7}, merged.EdgeLength.Data(), 1e-12)
}

func TestEdgeVectorMatchesLength(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 2.5)
	require.NoError(t, ComputeEdgeData(batch, false, false))

	vec := batch.EdgeVector.Data()
	for e, l := range batch.EdgeLength.Data() {
		norm := math.Sqrt(vec[e*3]*vec[e*3] + vec[e*3+1]*vec[e*3+1] + vec[e*3+2]*vec[e*3+2])
		assert.InDelta(t, l, norm, 1e-12)
	}
}
