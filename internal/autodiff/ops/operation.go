// Package ops defines the differentiable operations recorded on the
// gradient tape. Each operation stores its inputs and output during the
// forward pass and computes input gradients during the backward pass.
//
// Backward implementations route their arithmetic through the provided
// backend. When the backend is a recording autodiff backend, the
// backward pass itself lands on the tape, which is what makes
// force-matching losses (gradients of gradients) possible.
package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input tensor; nil entries mean no
	// gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
