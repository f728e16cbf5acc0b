package autodiff

import (
	"testing"

	"github.com/atomgrad/atomgrad/internal/backend/cpu"
	"github.com/atomgrad/atomgrad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend() *Backend[*cpu.Backend] {
	b := New(cpu.New())
	b.Tape().StartRecording()
	return b
}

func fromSlice(t *testing.T, b *Backend[*cpu.Backend], data []float64, shape tensor.Shape) *tensor.Tensor[float64, *Backend[*cpu.Backend]] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, b)
	require.NoError(t, err)
	return x
}

func TestGradSquare(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	y := x.Mul(x).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	assert.InDeltaSlice(t, []float64{2, 4, 6}, grads[0].AsFloat64(), 1e-12)
	assert.Equal(t, 0, b.Tape().NumOps(), "inference pass should clear the tape")
}

func TestGradDisconnectedInputIsZero(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2}, tensor.Shape{2})
	unused := fromSlice(t, b, []float64{5, 5, 5}, tensor.Shape{3})

	y := x.Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{unused.Raw()}, GradOptions{})

	require.Equal(t, tensor.Shape{3}, grads[0].Shape())
	assert.Equal(t, []float64{0, 0, 0}, grads[0].AsFloat64())
}

func TestGradUnitSeedSumsVectorOutput(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	// Per-row sums: the seed weights each row's output by one, so the
	// gradient matches differentiating the total sum.
	y := x.SumDim(1, false)
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	assert.Equal(t, []float64{1, 1, 1, 1}, grads[0].AsFloat64())
}

func TestGradBroadcastReduces(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	row := fromSlice(t, b, []float64{10, 20, 30}, tensor.Shape{1, 3})

	y := x.Add(row).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw(), row.Raw()}, GradOptions{})

	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, grads[0].AsFloat64())
	require.Equal(t, tensor.Shape{1, 3}, grads[1].Shape())
	assert.Equal(t, []float64{2, 2, 2}, grads[1].AsFloat64())
}

func TestGradMatMul(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	w := fromSlice(t, b, []float64{1, 0, 0, 1}, tensor.Shape{2, 2})

	y := x.MatMul(w).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw(), w.Raw()}, GradOptions{})

	// d(sum(x@I))/dx = ones@I^T = ones.
	assert.Equal(t, []float64{1, 1, 1, 1}, grads[0].AsFloat64())
	// d(sum(x@w))/dw = x^T@ones: column sums of x in every column.
	assert.Equal(t, []float64{4, 4, 6, 6}, grads[1].AsFloat64())
}

func TestGradIndexSelectScatters(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3}, tensor.Shape{3, 1})
	idx, err := tensor.FromSlice([]int64{0, 0, 2}, tensor.Shape{3}, b)
	require.NoError(t, err)

	y := x.IndexSelect(idx).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	assert.Equal(t, []float64{2, 0, 1}, grads[0].AsFloat64())
}

func TestGradIndexAddGathers(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2, 3}, tensor.Shape{3, 1})
	idx, err := tensor.FromSlice([]int64{1, 1, 0}, tensor.Shape{3}, b)
	require.NoError(t, err)

	y := x.IndexAdd(idx, 2).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	assert.Equal(t, []float64{1, 1, 1}, grads[0].AsFloat64())
}

func TestGradNormComposition(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{3, 4}, tensor.Shape{1, 2})

	y := x.Norm().Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	// d|x|/dx = x/|x|.
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, grads[0].AsFloat64(), 1e-12)
}

func TestGradRetainGraphAllowsSecondPass(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{2}, tensor.Shape{1})

	y := x.Mul(x).Sum()
	first := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{RetainGraph: true})
	second := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{RetainGraph: true})

	assert.InDelta(t, 4, first[0].AsFloat64()[0], 1e-12)
	assert.InDelta(t, 4, second[0].AsFloat64()[0], 1e-12)
}

func TestGradCreateGraphSecondOrder(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{2}, tensor.Shape{1})

	// y = x^3, dy/dx = 3x^2 = 12, d2y/dx2 = 6x = 12.
	y := x.Mul(x).Mul(x).Sum()
	first := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{
		RetainGraph: true,
		CreateGraph: true,
	})
	require.InDelta(t, 12, first[0].AsFloat64()[0], 1e-12)

	gradSum := b.Sum(first[0])
	second := Grad(b, gradSum, []*tensor.RawTensor{x.Raw()}, GradOptions{})
	assert.InDelta(t, 12, second[0].AsFloat64()[0], 1e-12)
}

func TestGradAliasedPassthroughAccumulation(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1}, tensor.Shape{1})

	// x appears twice: grad must accumulate to 2 without the two
	// pass-through gradients corrupting each other.
	y := x.Add(x).Sum()
	grads := Grad(b, y.Raw(), []*tensor.RawTensor{x.Raw()}, GradOptions{})

	assert.InDelta(t, 2, grads[0].AsFloat64()[0], 1e-12)
}

func TestTapeStopRecording(t *testing.T) {
	b := newBackend()
	x := fromSlice(t, b, []float64{1, 2}, tensor.Shape{2})

	b.Tape().StopRecording()
	_ = x.Mul(x)
	assert.Equal(t, 0, b.Tape().NumOps())
}
