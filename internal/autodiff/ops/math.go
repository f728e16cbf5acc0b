package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// unaryOp is the common state of element-wise math operations.
type unaryOp struct {
	inputs []*tensor.RawTensor // [x]
	output *tensor.RawTensor
}

// Inputs returns the input tensors [x].
func (op *unaryOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *unaryOp) Output() *tensor.RawTensor {
	return op.output
}

// ExpOp represents output = exp(x). Backward: grad * exp(x) = grad * output.
type ExpOp struct{ unaryOp }

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad * output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// SqrtOp represents output = sqrt(x). Backward: grad * 0.5 / sqrt(x).
//
// A zero input yields an infinite derivative; a zero edge length means
// two atoms occupy the same point, which is a degenerate structure, so
// no special handling is done here.
type SqrtOp struct{ unaryOp }

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad * 0.5 / output.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(backend.MulScalar(outputGrad, 0.5), op.output)}
}

// SinOp represents output = sin(x). Backward: grad * cos(x).
type SinOp struct{ unaryOp }

// NewSinOp creates a new SinOp.
func NewSinOp(x, output *tensor.RawTensor) *SinOp {
	return &SinOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad * cos(x).
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.inputs[0]))}
}

// CosOp represents output = cos(x). Backward: -grad * sin(x).
type CosOp struct{ unaryOp }

// NewCosOp creates a new CosOp.
func NewCosOp(x, output *tensor.RawTensor) *CosOp {
	return &CosOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes -grad * sin(x).
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(backend.Mul(outputGrad, backend.Sin(op.inputs[0])), -1)}
}

// SigmoidOp represents output = σ(x). Backward: grad * σ(x) * (1 - σ(x)).
type SigmoidOp struct{ unaryOp }

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{unaryOp{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad * output * (1 - output).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.AddScalar(backend.MulScalar(op.output, -1), 1)
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Mul(op.output, oneMinus))}
}
