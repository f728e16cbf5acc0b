// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"

	"github.com/atomgrad/atomgrad/tensor"
)

// Collate merges independent structure batches into a single batch.
// Atom indices in the edge lists are offset so they keep pointing at
// the same atoms, per-structure cells are stacked, and the structure
// assignment fields are rebuilt from scratch.
//
// Every input must be either periodic or aperiodic; mixing the two in
// one batch is rejected. Collation runs on host data before any
// gradient recording starts, so it copies rather than composing backend
// operations.
func Collate[B tensor.Backend](batches ...*Batch[B]) (*Batch[B], error) {
	if len(batches) == 0 {
		return nil, fmt.Errorf("collate: no batches")
	}

	periodic := batches[0].Periodic()
	backend := batches[0].Positions.Backend()

	var (
		positions []float64
		numbers   []int64
		centers   []int64
		neighbors []int64
		cells     []float64
		offsets   []float64
		assign    []int64
		ptr       = []int64{0}
	)

	atomOffset := int64(0)
	structOffset := int64(0)
	for i, b := range batches {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("collate: batch %d: %w", i, err)
		}
		if b.Periodic() != periodic {
			return nil, fmt.Errorf("collate: batch %d mixes periodic and aperiodic structures", i)
		}

		positions = append(positions, b.Positions.Data()...)
		numbers = append(numbers, b.AtomicNumbers.Data()...)

		numEdges := b.NumEdges()
		edges := b.EdgeIndex.Data()
		for e := 0; e < numEdges; e++ {
			centers = append(centers, edges[e]+atomOffset)
			neighbors = append(neighbors, edges[numEdges+e]+atomOffset)
		}

		if periodic {
			cells = append(cells, b.Cell.Data()...)
			offsets = append(offsets, b.CellOffsets.Data()...)
		}

		numStructures := int64(b.NumStructures())
		if b.Batch != nil {
			for _, s := range b.Batch.Data() {
				assign = append(assign, s+structOffset)
			}
		} else {
			for a := 0; a < b.NumAtoms(); a++ {
				assign = append(assign, structOffset)
			}
		}
		if b.BatchPtr != nil {
			ptrData := b.BatchPtr.Data()
			for _, p := range ptrData[1:] {
				ptr = append(ptr, p+atomOffset)
			}
		} else {
			ptr = append(ptr, atomOffset+int64(b.NumAtoms()))
		}

		atomOffset += int64(b.NumAtoms())
		structOffset += numStructures
	}

	numAtoms := int(atomOffset)
	numStructures := int(structOffset)
	numEdges := len(centers)

	out := &Batch[B]{}
	var err error
	out.Positions, err = tensor.FromSlice(positions, tensor.Shape{numAtoms, 3}, backend)
	if err != nil {
		return nil, fmt.Errorf("collate: positions: %w", err)
	}
	out.AtomicNumbers, err = tensor.FromSlice(numbers, tensor.Shape{numAtoms}, backend)
	if err != nil {
		return nil, fmt.Errorf("collate: atomic numbers: %w", err)
	}
	out.EdgeIndex, err = tensor.FromSlice(append(centers, neighbors...), tensor.Shape{2, numEdges}, backend)
	if err != nil {
		return nil, fmt.Errorf("collate: edge index: %w", err)
	}
	if periodic {
		out.Cell, err = tensor.FromSlice(cells, tensor.Shape{numStructures, 3, 3}, backend)
		if err != nil {
			return nil, fmt.Errorf("collate: cell: %w", err)
		}
		out.CellOffsets, err = tensor.FromSlice(offsets, tensor.Shape{numEdges, 3}, backend)
		if err != nil {
			return nil, fmt.Errorf("collate: cell offsets: %w", err)
		}
	}
	out.Batch, err = tensor.FromSlice(assign, tensor.Shape{numAtoms}, backend)
	if err != nil {
		return nil, fmt.Errorf("collate: structure assignment: %w", err)
	}
	out.BatchPtr, err = tensor.FromSlice(ptr, tensor.Shape{numStructures + 1}, backend)
	if err != nil {
		return nil, fmt.Errorf("collate: batch ptr: %w", err)
	}
	out.Strain = tensor.Zeros[float64](tensor.Shape{numStructures, 3, 3}, backend)

	return out, nil
}
