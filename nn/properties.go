// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/autodiff"
	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Output names produced by property derivation.
const (
	KeyEnergy = "energy"
	KeyForces = "forces"
	KeyVirial = "virial"
)

// PropertyOptions selects which derived properties to compute and how
// the tape is treated afterwards.
type PropertyOptions struct {
	ComputeForces bool
	ComputeVirial bool

	// Training keeps the recorded graph alive for a later parameter
	// backward pass and makes the derived gradients themselves
	// differentiable, so losses on forces can be trained. During
	// inference the tape is cleared after derivation.
	Training bool

	// ExtraProperties names stage-produced batch extras to copy into
	// the output verbatim.
	ExtraProperties []string
}

// Results maps property names to tensors. It always contains at least
// the energy.
type Results[B tensor.Backend] map[string]*tensor.Tensor[float64, B]

// ComputeProperties derives the requested properties from an energy
// recorded on the backend's tape.
//
// The energy has one scalar per structure. The backward pass is seeded
// with unit weights, which equals independent per-structure gradients
// because structures share no atoms. Forces are the negated position
// gradient and the virial the negated strain gradient; both come from
// one tape walk even when both are requested. An energy that does not
// depend on positions or strain yields zero tensors of the right shape,
// not an error.
func ComputeProperties[B autodiff.BackwardCapable](batch *graph.Batch[B], energy *tensor.Tensor[float64, B], opts PropertyOptions) (Results[B], error) {
	if energy == nil {
		return nil, fmt.Errorf("properties: energy missing")
	}
	backend := energy.Backend()

	out := Results[B]{KeyEnergy: energy}

	var inputs []*tensor.RawTensor
	if opts.ComputeForces {
		inputs = append(inputs, batch.Positions.Raw())
	}
	if opts.ComputeVirial {
		if batch.Strain == nil {
			return nil, fmt.Errorf("properties: virial requested but batch has no strain anchor; run edge preparation with virial enabled")
		}
		inputs = append(inputs, batch.Strain.Raw())
	}

	if len(inputs) > 0 {
		grads := autodiff.Grad(backend, energy.Raw(), inputs, autodiff.GradOptions{
			RetainGraph: opts.Training,
			CreateGraph: opts.Training,
		})
		i := 0
		if opts.ComputeForces {
			forces := backend.MulScalar(grads[i], -1)
			out[KeyForces] = tensor.New[float64](forces, backend)
			i++
		}
		if opts.ComputeVirial {
			virial := backend.MulScalar(grads[i], -1)
			out[KeyVirial] = tensor.New[float64](virial, backend)
		}
	}

	for _, name := range opts.ExtraProperties {
		extra := batch.Extra(name)
		if extra == nil {
			return nil, fmt.Errorf("properties: extra property %q not present in batch", name)
		}
		out[name] = extra
	}

	return out, nil
}

// ComputeForces derives forces only. See ComputeProperties.
func ComputeForces[B autodiff.BackwardCapable](batch *graph.Batch[B], energy *tensor.Tensor[float64, B], training bool) (*tensor.Tensor[float64, B], error) {
	res, err := ComputeProperties(batch, energy, PropertyOptions{ComputeForces: true, Training: training})
	if err != nil {
		return nil, err
	}
	return res[KeyForces], nil
}

// ComputeVirial derives the virial only. See ComputeProperties.
func ComputeVirial[B autodiff.BackwardCapable](batch *graph.Batch[B], energy *tensor.Tensor[float64, B], training bool) (*tensor.Tensor[float64, B], error) {
	res, err := ComputeProperties(batch, energy, PropertyOptions{ComputeVirial: true, Training: training})
	if err != nil {
		return nil, err
	}
	return res[KeyVirial], nil
}

// ComputeForcesAndVirial derives both properties in a single backward
// pass. See ComputeProperties.
func ComputeForcesAndVirial[B autodiff.BackwardCapable](batch *graph.Batch[B], energy *tensor.Tensor[float64, B], training bool) (forces, virial *tensor.Tensor[float64, B], err error) {
	res, err := ComputeProperties(batch, energy, PropertyOptions{ComputeForces: true, ComputeVirial: true, Training: training})
	if err != nil {
		return nil, nil, err
	}
	return res[KeyForces], res[KeyVirial], nil
}
