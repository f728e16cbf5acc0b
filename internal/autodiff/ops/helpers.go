package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// reduceBroadcast sums a gradient down to the shape of the input it
// belongs to, undoing NumPy-style broadcasting: leading added dimensions
// are summed away and size-1 dimensions are summed with keepDim.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	for len(grad.Shape()) > len(target) {
		grad = backend.SumDim(grad, 0, false)
	}
	for d, size := range target {
		if size == 1 && grad.Shape()[d] > 1 {
			grad = backend.SumDim(grad, d, true)
		}
	}
	return grad
}
