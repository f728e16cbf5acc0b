// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
)

// Validate checks the batch invariants. It returns the first violation
// found as an error; a nil return means the batch is safe to feed into
// edge preparation.
func (b *Batch[B]) Validate() error {
	if b.Positions == nil {
		return fmt.Errorf("batch: positions missing")
	}
	posShape := b.Positions.Shape()
	if len(posShape) != 2 || posShape[1] != 3 {
		return fmt.Errorf("batch: positions must have shape (N, 3), got %v", posShape)
	}
	n := posShape[0]

	if b.AtomicNumbers == nil {
		return fmt.Errorf("batch: atomic numbers missing")
	}
	zShape := b.AtomicNumbers.Shape()
	if len(zShape) != 1 || zShape[0] != n {
		return fmt.Errorf("batch: atomic numbers must have shape (%d,), got %v", n, zShape)
	}
	for i, z := range b.AtomicNumbers.Data() {
		if z <= 0 {
			return fmt.Errorf("batch: atomic number at index %d is %d, must be positive", i, z)
		}
	}

	if b.EdgeIndex == nil {
		return fmt.Errorf("batch: edge index missing")
	}
	eiShape := b.EdgeIndex.Shape()
	if len(eiShape) != 2 || eiShape[0] != 2 {
		return fmt.Errorf("batch: edge index must have shape (2, E), got %v", eiShape)
	}
	numEdges := eiShape[1]
	for i, idx := range b.EdgeIndex.Data() {
		if idx < 0 || idx >= int64(n) {
			return fmt.Errorf("batch: edge index entry %d is %d, out of range [0, %d)", i, idx, n)
		}
	}

	if b.Cell != nil {
		cellShape := b.Cell.Shape()
		if len(cellShape) != 3 || cellShape[1] != 3 || cellShape[2] != 3 {
			return fmt.Errorf("batch: cell must have shape (S, 3, 3), got %v", cellShape)
		}
		if b.CellOffsets == nil {
			return fmt.Errorf("batch: cell present but cell offsets missing")
		}
		offShape := b.CellOffsets.Shape()
		if len(offShape) != 2 || offShape[0] != numEdges || offShape[1] != 3 {
			return fmt.Errorf("batch: cell offsets must have shape (%d, 3), got %v", numEdges, offShape)
		}
	} else if b.CellOffsets != nil {
		return fmt.Errorf("batch: cell offsets present without a cell")
	}

	if b.Batch != nil {
		bShape := b.Batch.Shape()
		if len(bShape) != 1 || bShape[0] != n {
			return fmt.Errorf("batch: structure assignment must have shape (%d,), got %v", n, bShape)
		}
	}

	if b.BatchPtr != nil {
		ptr := b.BatchPtr.Data()
		if len(ptr) < 2 {
			return fmt.Errorf("batch: batch ptr must have at least 2 entries, got %d", len(ptr))
		}
		if ptr[0] != 0 {
			return fmt.Errorf("batch: batch ptr must start at 0, got %d", ptr[0])
		}
		if ptr[len(ptr)-1] != int64(n) {
			return fmt.Errorf("batch: batch ptr must end at atom count %d, got %d", n, ptr[len(ptr)-1])
		}
		for i := 1; i < len(ptr); i++ {
			if ptr[i] <= ptr[i-1] {
				return fmt.Errorf("batch: batch ptr must be strictly increasing, entry %d is %d after %d", i, ptr[i], ptr[i-1])
			}
		}
	}

	if b.Strain != nil {
		s := b.NumStructures()
		strShape := b.Strain.Shape()
		if len(strShape) != 3 || strShape[0] != s || strShape[1] != 3 || strShape[2] != 3 {
			return fmt.Errorf("batch: strain must have shape (%d, 3, 3), got %v", s, strShape)
		}
	}

	if b.Cell != nil {
		s := b.NumStructures()
		if cells := b.Cell.Shape()[0]; cells != s {
			return fmt.Errorf("batch: %d cells for %d structures", cells, s)
		}
	}

	return nil
}
