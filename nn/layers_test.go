package nn

import (
	"math"
	"testing"

	"github.com/atomgrad/atomgrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearShapes(t *testing.T) {
	b := newBackend()
	layer := NewLinear[Backend](4, 2, b)

	x := tensor.Ones[float64](tensor.Shape{3, 4}, b)
	y := layer.Forward(x)
	assert.Equal(t, tensor.Shape{3, 2}, y.Shape())
	assert.Len(t, layer.Parameters(), 2)
	assert.Equal(t, 4, layer.InFeatures())
	assert.Equal(t, 2, layer.OutFeatures())
}

func TestLinearNoBias(t *testing.T) {
	b := newBackend()
	layer := NewLinearNoBias[Backend](3, 3, b)
	assert.Len(t, layer.Parameters(), 1)

	// Zero input through a bias-free layer stays zero.
	y := layer.Forward(tensor.Zeros[float64](tensor.Shape{2, 3}, b))
	for _, v := range y.Data() {
		assert.Zero(t, v)
	}
}

func TestResolveActivation(t *testing.T) {
	for _, name := range []string{"silu", "swish", "sigmoid", "identity", "linear"} {
		_, err := ResolveActivation[Backend](name)
		assert.NoError(t, err, name)
	}
	_, err := ResolveActivation[Backend]("gelu6")
	assert.Error(t, err)
}

func TestSiLUValues(t *testing.T) {
	b := newBackend()
	act, err := ResolveActivation[Backend]("silu")
	require.NoError(t, err)

	x, err := tensor.FromSlice([]float64{0, 1, -1}, tensor.Shape{3}, b)
	require.NoError(t, err)
	y := act(x).Data()

	sigmoid := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }
	assert.InDelta(t, 0, y[0], 1e-12)
	assert.InDelta(t, 1*sigmoid(1), y[1], 1e-12)
	assert.InDelta(t, -1*sigmoid(-1), y[2], 1e-12)
}

func TestBesselBasis(t *testing.T) {
	b := newBackend()
	basis, err := NewBesselBasis[Backend](4, 5.0, b)
	require.NoError(t, err)
	assert.Equal(t, 4, basis.NumBasis())

	batch := dimerBatch(t, b, 1.5)
	require.NoError(t, ComputeEdgeData(batch, false, false))
	_, err = basis.Forward(batch)
	require.NoError(t, err)

	expanded := batch.Extra(KeyEdgeBasis)
	require.NotNil(t, expanded)
	assert.Equal(t, tensor.Shape{2, 4}, expanded.Shape())

	// First basis value at r: sqrt(2/rc) * sin(pi r / rc) / r * env(r).
	r, rc := 1.5, 5.0
	env := 0.5 * (math.Cos(math.Pi*r/rc) + 1)
	want := math.Sqrt(2/rc) * math.Sin(math.Pi*r/rc) / r * env
	assert.InDelta(t, want, expanded.At(0, 0), 1e-12)
}

func TestBesselBasisVanishesAtCutoff(t *testing.T) {
	b := newBackend()
	basis, err := NewBesselBasis[Backend](3, 2.0, b)
	require.NoError(t, err)

	batch := dimerBatch(t, b, 2.0)
	require.NoError(t, ComputeEdgeData(batch, false, false))
	_, err = basis.Forward(batch)
	require.NoError(t, err)

	for _, v := range batch.Extra(KeyEdgeBasis).Data() {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestBesselBasisRequiresEdgeLengths(t *testing.T) {
	b := newBackend()
	basis, err := NewBesselBasis[Backend](3, 5.0, b)
	require.NoError(t, err)

	batch := dimerBatch(t, b, 1.5)
	_, err = basis.Forward(batch)
	assert.Error(t, err)
}

func TestElementEmbedding(t *testing.T) {
	b := newBackend()
	embed := NewElementEmbedding[Backend](86, 8, b)

	batch := dimerBatch(t, b, 1.5)
	_, err := embed.Forward(batch)
	require.NoError(t, err)

	features := batch.Extra(KeyNodeFeatures)
	require.NotNil(t, features)
	assert.Equal(t, tensor.Shape{2, 8}, features.Shape())

	// Identical elements share a feature row.
	data := features.Data()
	assert.InDeltaSlice(t, data[:8], data[8:], 1e-12)
}

func TestElementEmbeddingRejectsOutOfRange(t *testing.T) {
	b := newBackend()
	embed := NewElementEmbedding[Backend](8, 4, b)

	batch := dimerBatch(t, b, 1.5)
	var err error
	batch.AtomicNumbers, err = tensor.FromSlice([]int64{1, 26}, tensor.Shape{2}, b)
	require.NoError(t, err)
	_, err = embed.Forward(batch)
	assert.Error(t, err)
}

func TestInteractionUpdatesFeatures(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 1.5)
	require.NoError(t, ComputeEdgeData(batch, false, false))

	embed := NewElementEmbedding[Backend](86, 8, b)
	_, err := embed.Forward(batch)
	require.NoError(t, err)
	before := append([]float64(nil), batch.Extra(KeyNodeFeatures).Data()...)

	basis, err := NewBesselBasis[Backend](4, 5.0, b)
	require.NoError(t, err)
	_, err = basis.Forward(batch)
	require.NoError(t, err)

	inter, err := NewInteraction[Backend](8, 4, "silu", b)
	require.NoError(t, err)
	_, err = inter.Forward(batch)
	require.NoError(t, err)

	after := batch.Extra(KeyNodeFeatures)
	assert.Equal(t, tensor.Shape{2, 8}, after.Shape())
	assert.NotEqual(t, before, after.Data())
	assert.NotEmpty(t, inter.Parameters())
}

func TestEnergyOutput(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 1.5)
	require.NoError(t, ComputeEdgeData(batch, false, false))

	embed := NewElementEmbedding[Backend](86, 8, b)
	_, err := embed.Forward(batch)
	require.NoError(t, err)

	head, err := NewEnergyOutput[Backend](8, "silu", b)
	require.NoError(t, err)
	_, err = head.Forward(batch)
	require.NoError(t, err)

	energy := batch.Extra(KeyEnergy)
	require.NotNil(t, energy)
	assert.Equal(t, tensor.Shape{1}, energy.Shape())
}

func TestEnergyOutputElementShifts(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 1.5)

	embed := NewElementEmbedding[Backend](86, 8, b)
	_, err := embed.Forward(batch)
	require.NoError(t, err)

	head, err := NewEnergyOutput[Backend](8, "silu", b)
	require.NoError(t, err)
	_, err = head.Forward(batch)
	require.NoError(t, err)
	base := batch.Extra(KeyEnergy).Item()

	require.NoError(t, head.SetElementShifts(map[int]float64{1: -0.5}, 86, b))
	_, err = head.Forward(batch)
	require.NoError(t, err)

	// Two hydrogen atoms pick up one shift each.
	assert.InDelta(t, base-1.0, batch.Extra(KeyEnergy).Item(), 1e-12)

	err = head.SetElementShifts(map[int]float64{95: -0.5}, 86, b)
	assert.Error(t, err)
}

func TestChargeOutput(t *testing.T) {
	b := newBackend()
	batch := dimerBatch(t, b, 1.5)

	embed := NewElementEmbedding[Backend](86, 8, b)
	_, err := embed.Forward(batch)
	require.NoError(t, err)

	head, err := NewChargeOutput[Backend](8, "sigmoid", b)
	require.NoError(t, err)
	_, err = head.Forward(batch)
	require.NoError(t, err)

	charges := batch.Extra(KeyCharges)
	require.NotNil(t, charges)
	assert.Equal(t, tensor.Shape{2}, charges.Shape())
}

func TestSequentialPipeline(t *testing.T) {
	b := newBackend()
	basis, err := NewBesselBasis[Backend](4, 5.0, b)
	require.NoError(t, err)
	inter, err := NewInteraction[Backend](8, 4, "silu", b)
	require.NoError(t, err)
	head, err := NewEnergyOutput[Backend](8, "silu", b)
	require.NoError(t, err)

	seq := NewSequential[Backend](
		NewEdgePrep[Backend](false, false),
		NewElementEmbedding[Backend](86, 8, b),
		basis,
		inter,
		head,
	)
	assert.Equal(t, 5, seq.Len())

	batch := dimerBatch(t, b, 1.5)
	out, err := seq.Forward(batch)
	require.NoError(t, err)
	require.NotNil(t, out.Extra(KeyEnergy))
	assert.NotEmpty(t, seq.Parameters())
}

func TestSequentialErrorNamesStage(t *testing.T) {
	b := newBackend()
	inter, err := NewInteraction[Backend](8, 4, "silu", b)
	require.NoError(t, err)

	seq := NewSequential[Backend](inter)
	batch := dimerBatch(t, b, 1.5)
	_, err = seq.Forward(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage 0")
}

func TestXavierBounds(t *testing.T) {
	b := newBackend()
	w := Xavier[Backend](16, 16, tensor.Shape{16, 16}, b)
	limit := math.Sqrt(6.0 / 32.0)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(v), limit)
	}
}
