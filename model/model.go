// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model composes interatomic potentials: edge preparation,
// a sequence of learned stages, then gradient-derived properties.
package model

import (
	"fmt"

	"github.com/atomgrad/atomgrad/autodiff"
	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/nn"
	"github.com/atomgrad/atomgrad/tensor"
)

// Model is a complete potential. A forward call runs three strictly
// linear phases: edge/strain preparation, the learned stages, and
// property derivation. Stage failures propagate unmodified.
type Model[B autodiff.BackwardCapable] struct {
	name            string
	stages          *nn.Sequential[B]
	extraProperties []string
	training        bool
}

// New assembles a model from learned stages. The stages must end with
// one that writes the per-structure energy into the batch.
func New[B autodiff.BackwardCapable](name string, stages ...nn.Module[B]) *Model[B] {
	return &Model[B]{
		name:   name,
		stages: nn.NewSequential(stages...),
	}
}

// Name returns the architecture name.
func (m *Model[B]) Name() string {
	return m.name
}

// Train puts the model in training mode: the recorded graph survives
// property derivation for a later parameter backward pass, and derived
// forces/virial are themselves differentiable. The training loop owns
// the tape in this mode and clears it after the optimizer step via
// backend.Tape().Clear().
func (m *Model[B]) Train() {
	m.training = true
}

// Eval puts the model in inference mode: the tape is cleared after
// property derivation.
func (m *Model[B]) Eval() {
	m.training = false
}

// Training reports whether the model is in training mode.
func (m *Model[B]) Training() bool {
	return m.training
}

// DeclareExtraProperty adds a stage-produced property name to every
// forward output.
func (m *Model[B]) DeclareExtraProperty(name string) {
	m.extraProperties = append(m.extraProperties, name)
}

// Parameters returns all trainable parameters of all stages.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	return m.stages.Parameters()
}

// Forward evaluates the potential on a batch. The result always maps
// "energy" to a (S,) tensor; "forces" and "virial" are present when
// requested, and declared extra properties are copied from the batch.
func (m *Model[B]) Forward(batch *graph.Batch[B], computeForces, computeVirial bool) (nn.Results[B], error) {
	backend := batch.Positions.Backend()
	backend.GetTape().StartRecording()

	if err := nn.ComputeEdgeData(batch, computeForces, computeVirial); err != nil {
		return nil, fmt.Errorf("model %s: edge preparation: %w", m.name, err)
	}

	out, err := m.stages.Forward(batch)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.name, err)
	}

	energy := out.Extra(nn.KeyEnergy)
	if energy == nil {
		return nil, fmt.Errorf("model %s: stages produced no energy", m.name)
	}

	results, err := nn.ComputeProperties(out, energy, nn.PropertyOptions{
		ComputeForces:   computeForces,
		ComputeVirial:   computeVirial,
		Training:        m.training,
		ExtraProperties: m.extraProperties,
	})
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.name, err)
	}

	// Energy-only inference runs no backward pass, so the tape must be
	// dropped here instead.
	if !m.training && !computeForces && !computeVirial {
		backend.GetTape().Clear()
	}
	return results, nil
}

// EnergyTensor is a convenience accessor for the per-structure energy
// in a forward result.
func EnergyTensor[B autodiff.BackwardCapable](results nn.Results[B]) (*tensor.Tensor[float64, B], error) {
	e, ok := results[nn.KeyEnergy]
	if !ok {
		return nil, fmt.Errorf("model: results carry no energy")
	}
	return e, nil
}
