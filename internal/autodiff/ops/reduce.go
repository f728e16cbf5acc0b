package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// SumOp represents a full reduction: output = sum(x), shape (1,).
// Backward broadcasts the gradient to the input shape.
type SumOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward broadcasts the gradient across all input elements.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Expand(outputGrad, op.inputs[0].Shape())}
}

// Inputs returns the input tensors [x].
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor sum(x).
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// SumDimOp represents a reduction along one dimension:
// output = sum(x, dim, keepDim).
// Backward broadcasts the gradient back along the reduced dimension.
type SumDimOp struct {
	inputs  []*tensor.RawTensor // [x]
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{
		inputs:  []*tensor.RawTensor{x},
		output:  output,
		dim:     dim,
		keepDim: keepDim,
	}
}

// Backward broadcasts the gradient back along the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad
	if !op.keepDim {
		dim := op.dim
		if dim < 0 {
			dim = len(x.Shape()) + dim
		}
		grad = backend.Unsqueeze(grad, dim)
	}
	return []*tensor.RawTensor{backend.Expand(grad, x.Shape())}
}

// Inputs returns the input tensors [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the reduced output tensor.
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}
