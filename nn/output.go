// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// EnergyOutput reduces node features to one energy per structure.
//
// Per-atom energies come from a two-layer head over the node features,
// optionally offset by a fixed per-element shift (isolated-atom
// reference energies), then scatter-summed per structure. The energy
// tensor has shape (S,) and is stored under KeyEnergy.
type EnergyOutput[B tensor.Backend] struct {
	hidden *Linear[B]
	out    *Linear[B]
	act    ActivationFunc[B]
	shifts *tensor.Tensor[float64, B] // (maxZ+1, 1), nil when disabled
}

// NewEnergyOutput creates an energy head over numFeatures-wide node
// features.
func NewEnergyOutput[B tensor.Backend](numFeatures int, activation string, backend B) (*EnergyOutput[B], error) {
	act, err := ResolveActivation[B](activation)
	if err != nil {
		return nil, err
	}
	return &EnergyOutput[B]{
		hidden: NewLinear[B](numFeatures, numFeatures, backend),
		out:    NewLinear[B](numFeatures, 1, backend),
		act:    act,
	}, nil
}

// SetElementShifts installs fixed per-element energy shifts, given as a
// map from atomic number to reference energy. maxZ bounds the lookup
// table. Shifts are frozen reference values and do not appear in
// Parameters.
func (o *EnergyOutput[B]) SetElementShifts(shifts map[int]float64, maxZ int, backend B) error {
	table := tensor.Zeros[float64](tensor.Shape{maxZ + 1, 1}, backend)
	data := table.Data()
	for z, e := range shifts {
		if z < 1 || z > maxZ {
			return fmt.Errorf("energy output: shift for atomic number %d outside table size %d", z, maxZ)
		}
		data[z] = e
	}
	o.shifts = table
	return nil
}

// Forward writes the per-structure energy into the batch.
func (o *EnergyOutput[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	features := batch.Extra(KeyNodeFeatures)
	if features == nil {
		return nil, fmt.Errorf("energy output: node features missing; run an embedding stage first")
	}

	atomic := o.out.Forward(o.act(o.hidden.Forward(features))) // (N, 1)
	if o.shifts != nil {
		atomic = atomic.Add(o.shifts.IndexSelect(batch.AtomicNumbers))
	}

	index := structureIndex(batch)
	energy := atomic.IndexAdd(index, batch.NumStructures()).Squeeze(1) // (S,)
	batch.SetExtra(KeyEnergy, energy)
	return batch, nil
}

// Parameters returns the head's trainable parameters. Element shifts
// are fixed reference values, not parameters.
func (o *EnergyOutput[B]) Parameters() []*Parameter[B] {
	return append(o.hidden.Parameters(), o.out.Parameters()...)
}

// ChargeOutput predicts one partial charge per atom from the node
// features and stores them under KeyCharges. Charges are an extra
// property: property derivation copies them into the output verbatim
// when requested.
type ChargeOutput[B tensor.Backend] struct {
	hidden *Linear[B]
	out    *Linear[B]
	act    ActivationFunc[B]
}

// NewChargeOutput creates a charge head over numFeatures-wide node
// features.
func NewChargeOutput[B tensor.Backend](numFeatures int, activation string, backend B) (*ChargeOutput[B], error) {
	act, err := ResolveActivation[B](activation)
	if err != nil {
		return nil, err
	}
	return &ChargeOutput[B]{
		hidden: NewLinear[B](numFeatures, numFeatures, backend),
		out:    NewLinear[B](numFeatures, 1, backend),
		act:    act,
	}, nil
}

// Forward writes per-atom charges into the batch.
func (c *ChargeOutput[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	features := batch.Extra(KeyNodeFeatures)
	if features == nil {
		return nil, fmt.Errorf("charge output: node features missing; run an embedding stage first")
	}
	charges := c.out.Forward(c.act(c.hidden.Forward(features))).Squeeze(1) // (N,)
	batch.SetExtra(KeyCharges, charges)
	return batch, nil
}

// Parameters returns the head's trainable parameters.
func (c *ChargeOutput[B]) Parameters() []*Parameter[B] {
	return append(c.hidden.Parameters(), c.out.Parameters()...)
}

// structureIndex returns the per-atom structure assignment, building an
// all-zeros index for implicit single-structure batches.
func structureIndex[B tensor.Backend](batch *graph.Batch[B]) *tensor.Tensor[int64, B] {
	if batch.Batch != nil {
		return batch.Batch
	}
	return tensor.Zeros[int64](tensor.Shape{batch.NumAtoms()}, batch.Positions.Backend())
}
