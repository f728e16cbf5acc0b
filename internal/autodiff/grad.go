package autodiff

import (
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// BackwardCapable is the interface a backend must satisfy for gradient
// derivation. The autodiff Backend decorator implements it.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GradOptions controls a backward pass.
type GradOptions struct {
	// RetainGraph keeps the tape after the walk so another backward
	// pass over the same forward computation is possible. Training
	// loops need this when a loss on the derived gradients is
	// differentiated again.
	RetainGraph bool

	// CreateGraph keeps recording during the backward walk, so the
	// computed gradients are themselves differentiable.
	CreateGraph bool
}

// Grad computes the gradients of output with respect to each input.
//
// The output is seeded with ones, so a vector of per-structure scalars
// is implicitly summed before differentiation. Inputs that did not
// participate in the computation of output receive a zero gradient of
// their own shape rather than a missing entry.
func Grad(backend BackwardCapable, output *tensor.RawTensor, inputs []*tensor.RawTensor, opts GradOptions) []*tensor.RawTensor {
	tape := backend.GetTape()

	seed := tensor.OnesLike(output)
	grads := tape.BackwardFrom(output, seed, backend, opts.CreateGraph)

	results := make([]*tensor.RawTensor, len(inputs))
	for i, input := range inputs {
		if g, ok := grads[input]; ok {
			results[i] = g
		} else {
			results[i] = tensor.ZerosLike(input)
		}
	}

	if !opts.RetainGraph {
		tape.Clear()
	}
	return results
}
