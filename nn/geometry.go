// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// ComputeEdgeData prepares the batch for the learned stages: it injects
// the strain deformation when a virial is requested and resolves every
// edge into a displacement vector and length, with periodic-image
// corrections.
//
// When computeVirial is set, the per-structure strain tensor is
// symmetrized as 0.5*(S + Sᵀ), broadcast to each structure's atoms, and
// applied as pos' = pos + pos·S_sym and cell' = cell + cell·S_sym. The
// strain is zero, so the deformation is the identity; it exists only so
// the energy becomes a differentiable function of strain. The deformed
// positions and cell feed the edge geometry but are not stored back:
// batch.Positions and batch.Cell stay the caller's tensors, which are
// the roots that property derivation differentiates against.
//
// Edge vectors point from neighbor to center. For periodic batches the
// per-edge lattice shift is cell_offsets contracted with the cell of
// the structure owning the edge's neighbor atom; heterogeneous batches
// therefore gather a cell per edge. A self-edge with a nonzero offset
// is an atom interacting with its own periodic image and resolves like
// any other edge. An empty edge set yields empty edge tensors.
//
// The results are stored into batch.EdgeVector and batch.EdgeLength.
func ComputeEdgeData[B tensor.Backend](batch *graph.Batch[B], computeForces, computeVirial bool) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	backend := batch.Positions.Backend()
	numStructures := batch.NumStructures()
	numAtoms := batch.NumAtoms()

	pos := batch.Positions
	cell := batch.Cell
	if computeForces {
		pos.RequireGrad()
	}

	if computeVirial {
		if batch.Strain == nil {
			batch.Strain = tensor.Zeros[float64](tensor.Shape{numStructures, 3, 3}, backend)
		}
		strain := batch.Strain.RequireGrad()

		symm := strain.Add(strain.Transpose(0, 2, 1)).MulScalar(0.5)

		var perAtom *tensor.Tensor[float64, B]
		if batch.Batch != nil {
			perAtom = symm.IndexSelect(batch.Batch)
		} else {
			perAtom = symm.Expand(numAtoms, 3, 3)
		}

		pos = pos.Add(pos.Unsqueeze(1).BatchMatMul(perAtom).Squeeze(1))
		if cell != nil {
			cell = cell.Add(cell.BatchMatMul(symm))
		}
	}

	center, neighbor, err := edgeEndpoints(batch)
	if err != nil {
		return err
	}

	vectors := pos.IndexSelect(center).Sub(pos.IndexSelect(neighbor))

	if cell != nil {
		if batch.SingleStructure() {
			shifts := batch.CellOffsets.MatMul(cell.Reshape(3, 3))
			vectors = vectors.Sub(shifts)
		} else {
			edgeStructure := batch.Batch.IndexSelect(neighbor)
			edgeCell := cell.IndexSelect(edgeStructure)
			shifts := batch.CellOffsets.Unsqueeze(1).BatchMatMul(edgeCell).Squeeze(1)
			vectors = vectors.Sub(shifts)
		}
	}

	batch.EdgeVector = vectors
	batch.EdgeLength = vectors.Norm()
	return nil
}

// edgeEndpoints splits the (2, E) edge index into its center and
// neighbor rows. Index tensors carry no gradients, so the split copies
// host data rather than composing backend views.
func edgeEndpoints[B tensor.Backend](batch *graph.Batch[B]) (center, neighbor *tensor.Tensor[int64, B], err error) {
	numEdges := batch.NumEdges()
	backend := batch.EdgeIndex.Backend()
	data := batch.EdgeIndex.Data()

	center, err = tensor.FromSlice(data[:numEdges], tensor.Shape{numEdges}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("edge centers: %w", err)
	}
	neighbor, err = tensor.FromSlice(data[numEdges:], tensor.Shape{numEdges}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("edge neighbors: %w", err)
	}
	return center, neighbor, nil
}

// EdgePrep is the module form of ComputeEdgeData, so edge preparation
// can head a stage pipeline.
type EdgePrep[B tensor.Backend] struct {
	ComputeForces bool
	ComputeVirial bool
}

// NewEdgePrep creates an edge preparation stage.
func NewEdgePrep[B tensor.Backend](computeForces, computeVirial bool) *EdgePrep[B] {
	return &EdgePrep[B]{ComputeForces: computeForces, ComputeVirial: computeVirial}
}

// Forward resolves edge geometry into the batch.
func (e *EdgePrep[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	if err := ComputeEdgeData(batch, e.ComputeForces, e.ComputeVirial); err != nil {
		return nil, err
	}
	return batch, nil
}

// Parameters returns an empty slice; edge preparation has no learnable
// state.
func (e *EdgePrep[B]) Parameters() []*Parameter[B] {
	return nil
}
