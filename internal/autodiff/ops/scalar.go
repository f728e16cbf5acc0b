package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// AddScalarOp represents output = x + s for a constant scalar s.
// Backward: gradient passes through unchanged.
type AddScalarOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
	}
}

// Backward passes the gradient through.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensors [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor x + s.
func (op *AddScalarOp) Output() *tensor.RawTensor {
	return op.output
}

// MulScalarOp represents output = x * s for a constant scalar s.
// Backward: grad_x = outputGrad * s.
type MulScalarOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{
		inputs: []*tensor.RawTensor{x},
		output: output,
		scalar: scalar,
	}
}

// Backward scales the gradient by the recorded scalar.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns the input tensors [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor x * s.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}
