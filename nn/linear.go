// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/tensor"
)

// Linear implements a fully connected layer: y = x @ Wᵀ + b.
//
// Linear is a building block used inside stages, not a batch stage
// itself; it maps feature tensors of shape (rows, inFeatures) to
// (rows, outFeatures). Weights use Xavier initialization, biases start
// at zero.
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // (outFeatures, inFeatures)
	bias        *Parameter[B] // (1, outFeatures), nil when disabled
	backend     B
}

// NewLinear creates a linear layer with a bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weight := NewParameter("weight",
		Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, backend))
	bias := NewParameter("bias",
		tensor.Zeros[float64](tensor.Shape{1, outFeatures}, backend))
	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// NewLinearNoBias creates a linear layer without a bias term.
func NewLinearNoBias[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weight := NewParameter("weight",
		Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, backend))
	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		backend:     backend,
	}
}

// Forward computes y = x @ Wᵀ + b for input of shape
// (rows, inFeatures).
func (l *Linear[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input (rows, features), got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	output := input.MatMul(l.weight.Tensor().Transpose(1, 0))
	if l.bias != nil {
		output = output.Add(l.bias.Tensor())
	}
	return output
}

// Parameters returns the trainable parameters of this layer.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// InFeatures returns the input feature count.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output feature count.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }
