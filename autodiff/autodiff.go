// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation using
// a gradient tape. It wraps any backend to add autodiff capabilities.
// Forces and virials are gradients of a recorded energy, so every
// potential evaluation that needs them runs on an autodiff backend.
//
// Example:
//
//	import (
//	    "github.com/atomgrad/atomgrad/autodiff"
//	    "github.com/atomgrad/atomgrad/backend/cpu"
//	    "github.com/atomgrad/atomgrad/tensor"
//	)
//
//	func main() {
//	    base := cpu.New()
//	    backend := autodiff.New(base)
//
//	    backend.Tape().StartRecording()
//	    pos := tensor.Randn[float64](tensor.Shape{4, 3}, backend)
//	    energy := pos.Mul(pos).Sum()
//
//	    grads := autodiff.Grad(backend, energy.Raw(),
//	        []*tensor.RawTensor{pos.Raw()}, autodiff.GradOptions{})
//	    _ = grads
//	}
package autodiff

import (
	"github.com/atomgrad/atomgrad/internal/autodiff"
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the interface for backends that support gradient
// derivation.
type BackwardCapable = autodiff.BackwardCapable

// GradOptions controls a backward pass.
type GradOptions = autodiff.GradOptions

// Grad computes gradients of output with respect to each input.
//
// The output is seeded with ones, so a vector of per-structure energies
// is implicitly summed before differentiation. Inputs that did not
// participate in the computation receive zero gradients.
func Grad(backend BackwardCapable, output *tensor.RawTensor, inputs []*tensor.RawTensor, opts GradOptions) []*tensor.RawTensor {
	return autodiff.Grad(backend, output, inputs, opts)
}
