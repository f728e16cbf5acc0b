// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math"
	"math/rand"

	"github.com/atomgrad/atomgrad/tensor"
)

// Parameter represents a trainable parameter of a potential stage.
//
// Parameters are float64 tensors. Their gradients with respect to a
// loss are obtained from the same tape walk that derives forces, keyed
// by the parameter's raw tensor.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float64, B]
	grad   *tensor.Tensor[float64, B]
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float64, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before any backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float64, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float64, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// Xavier creates a tensor initialized with Xavier/Glorot uniform
// values for the given fan-in and fan-out.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float64, B] {
	t := tensor.Zeros[float64](shape, backend)
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	data := t.Data()
	for i := range data {
		data[i] = (2.0*rand.Float64() - 1.0) * limit
	}
	return t
}
