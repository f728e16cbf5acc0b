// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph defines the structure batch: one or more atomic
// structures concatenated along the atom axis, with explicit optional
// fields for periodicity and batching.
package graph

import (
	"github.com/atomgrad/atomgrad/tensor"
)

// Batch holds one or more atomic structures concatenated along the atom
// axis. Optional fields are nil when absent; consumers branch on typed
// optionality instead of probing a string-keyed map.
//
// Shapes, with N atoms, E edges and S structures:
//
//	Positions     (N, 3)    float64
//	AtomicNumbers (N,)      int64
//	EdgeIndex     (2, E)    int64, row 0 = center, row 1 = neighbor
//	Cell          (S, 3, 3) float64, nil for aperiodic batches
//	CellOffsets   (E, 3)    float64, nil iff Cell is nil
//	Batch         (N,)      int64, nil implies a single structure
//	BatchPtr      (S+1,)    int64
//	Strain        (S, 3, 3) float64, zero differentiation anchor
//
// Edge vectors point from neighbor to center. CellOffsets entries are
// lattice-image triplets; they are stored as float64 and real values
// are permitted, though integer images are the common case.
type Batch[B tensor.Backend] struct {
	Positions     *tensor.Tensor[float64, B]
	AtomicNumbers *tensor.Tensor[int64, B]
	EdgeIndex     *tensor.Tensor[int64, B]

	Cell        *tensor.Tensor[float64, B]
	CellOffsets *tensor.Tensor[float64, B]

	Batch    *tensor.Tensor[int64, B]
	BatchPtr *tensor.Tensor[int64, B]

	Strain *tensor.Tensor[float64, B]

	// Derived per-edge geometry, written by edge preparation.
	EdgeLength *tensor.Tensor[float64, B]
	EdgeVector *tensor.Tensor[float64, B]

	// Extras holds named per-atom or per-structure properties produced
	// by learned stages (charges, dipoles). Property derivation copies
	// requested extras into the output verbatim.
	Extras map[string]*tensor.Tensor[float64, B]
}

// NumAtoms returns the number of atoms in the batch.
func (b *Batch[B]) NumAtoms() int {
	return b.Positions.Shape()[0]
}

// NumEdges returns the number of directed edges.
func (b *Batch[B]) NumEdges() int {
	return b.EdgeIndex.Shape()[1]
}

// NumStructures returns the number of structures in the batch.
func (b *Batch[B]) NumStructures() int {
	if b.BatchPtr != nil {
		return b.BatchPtr.Shape()[0] - 1
	}
	if b.Batch == nil {
		return 1
	}
	max := int64(0)
	for _, v := range b.Batch.Data() {
		if v > max {
			max = v
		}
	}
	return int(max) + 1
}

// SingleStructure reports whether every atom belongs to structure 0.
func (b *Batch[B]) SingleStructure() bool {
	if b.Batch == nil {
		return true
	}
	for _, v := range b.Batch.Data() {
		if v != 0 {
			return false
		}
	}
	return true
}

// Periodic reports whether the batch carries lattice vectors.
func (b *Batch[B]) Periodic() bool {
	return b.Cell != nil
}

// SetExtra stores a named stage-produced property.
func (b *Batch[B]) SetExtra(name string, t *tensor.Tensor[float64, B]) {
	if b.Extras == nil {
		b.Extras = make(map[string]*tensor.Tensor[float64, B])
	}
	b.Extras[name] = t
}

// Extra returns a named stage-produced property, or nil.
func (b *Batch[B]) Extra(name string) *tensor.Tensor[float64, B] {
	return b.Extras[name]
}
