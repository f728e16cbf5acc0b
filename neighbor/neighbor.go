// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package neighbor builds cutoff neighbor lists, including periodic
// images, producing the edge index and cell offsets a structure batch
// needs.
package neighbor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Build computes all directed edges with interatomic distance below
// cutoff. Positions have shape (N, 3). For periodic structures cell is
// the (3, 3) lattice matrix with lattice vectors as rows; pass nil for
// an isolated structure.
//
// The returned edge index has shape (2, E) with centers in row 0, and
// offsets (E, 3) hold integer image triplets (all zero when cell is
// nil). Edges are directed: each pair within cutoff appears once per
// direction. A self edge appears only across a periodic image, never
// with a zero offset.
//
// Positions outside the cell are handled: the scan works on wrapped
// coordinates and folds the wrap counts back into the offsets, so the
// edge list is invariant under translating any atom by a lattice
// vector.
func Build[B tensor.Backend](positions *tensor.Tensor[float64, B], cell *tensor.Tensor[float64, B], cutoff float64) (*tensor.Tensor[int64, B], *tensor.Tensor[float64, B], error) {
	if cutoff <= 0 {
		return nil, nil, fmt.Errorf("neighbor: cutoff must be positive, got %g", cutoff)
	}
	shape := positions.Shape()
	if len(shape) != 2 || shape[1] != 3 {
		return nil, nil, fmt.Errorf("neighbor: positions must have shape (N, 3), got %v", shape)
	}
	n := shape[0]
	pos := positions.Data()
	backend := positions.Backend()

	var cellData []float64
	wraps := make([][3]int, n)
	images := [][3]int{{0, 0, 0}}
	if cell != nil {
		cShape := cell.Shape()
		if len(cShape) != 2 || cShape[0] != 3 || cShape[1] != 3 {
			return nil, nil, fmt.Errorf("neighbor: cell must have shape (3, 3), got %v", cShape)
		}
		cellData = cell.Data()
		var err error
		var wrapped []float64
		wrapped, wraps, err = wrapIntoCell(pos, cellData)
		if err != nil {
			return nil, nil, err
		}
		pos = wrapped
		images, err = imageRange(cellData, cutoff)
		if err != nil {
			return nil, nil, err
		}
	}

	var centers, neighbors []int64
	var offsets []float64
	cutoffSq := cutoff * cutoff

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for _, img := range images {
				if i == j && img[0] == 0 && img[1] == 0 && img[2] == 0 {
					continue
				}
				var shift [3]float64
				if cellData != nil {
					for d := 0; d < 3; d++ {
						shift[d] = float64(img[0])*cellData[0*3+d] +
							float64(img[1])*cellData[1*3+d] +
							float64(img[2])*cellData[2*3+d]
					}
				}
				distSq := 0.0
				for d := 0; d < 3; d++ {
					diff := pos[i*3+d] - pos[j*3+d] - shift[d]
					distSq += diff * diff
				}
				if distSq < cutoffSq {
					centers = append(centers, int64(i))
					neighbors = append(neighbors, int64(j))
					offsets = append(offsets,
						float64(img[0]+wraps[i][0]-wraps[j][0]),
						float64(img[1]+wraps[i][1]-wraps[j][1]),
						float64(img[2]+wraps[i][2]-wraps[j][2]))
				}
			}
		}
	}

	numEdges := len(centers)
	edgeIndex, err := tensor.FromSlice(append(centers, neighbors...), tensor.Shape{2, numEdges}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("neighbor: edge index: %w", err)
	}
	offsetTensor, err := tensor.FromSlice(offsets, tensor.Shape{numEdges, 3}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("neighbor: offsets: %w", err)
	}
	return edgeIndex, offsetTensor, nil
}

// wrapIntoCell maps every position into the unit cell. It returns the
// wrapped coordinates and, per atom, the integer lattice triplet that
// was subtracted, so pos[i] = wrapped[i] + wraps[i]·cell.
func wrapIntoCell(pos, cellData []float64) ([]float64, [][3]int, error) {
	lattice := mat.NewDense(3, 3, cellData)
	var inv mat.Dense
	if err := inv.Inverse(lattice); err != nil {
		return nil, nil, fmt.Errorf("neighbor: singular cell: %w", err)
	}

	n := len(pos) / 3
	wrapped := make([]float64, len(pos))
	wraps := make([][3]int, n)
	for i := 0; i < n; i++ {
		var frac [3]float64
		for k := 0; k < 3; k++ {
			for d := 0; d < 3; d++ {
				frac[k] += pos[i*3+d] * inv.At(d, k)
			}
		}
		var rem [3]float64
		for k := 0; k < 3; k++ {
			f := math.Floor(frac[k])
			wraps[i][k] = int(f)
			rem[k] = frac[k] - f
		}
		for d := 0; d < 3; d++ {
			for k := 0; k < 3; k++ {
				wrapped[i*3+d] += rem[k] * cellData[k*3+d]
			}
		}
	}
	return wrapped, wraps, nil
}

// imageRange returns every lattice image triplet within reach of the
// cutoff. The number of images per direction comes from the cell's
// perpendicular widths, read off the inverse lattice matrix.
func imageRange(cellData []float64, cutoff float64) ([][3]int, error) {
	lattice := mat.NewDense(3, 3, cellData)
	var inv mat.Dense
	if err := inv.Inverse(lattice); err != nil {
		return nil, fmt.Errorf("neighbor: singular cell: %w", err)
	}

	var bounds [3]int
	for k := 0; k < 3; k++ {
		norm := math.Hypot(math.Hypot(inv.At(0, k), inv.At(1, k)), inv.At(2, k))
		bounds[k] = int(math.Ceil(cutoff * norm))
	}

	var images [][3]int
	for a := -bounds[0]; a <= bounds[0]; a++ {
		for b := -bounds[1]; b <= bounds[1]; b++ {
			for c := -bounds[2]; c <= bounds[2]; c++ {
				images = append(images, [3]int{a, b, c})
			}
		}
	}
	return images, nil
}

// BuildGraph assembles a single-structure batch: it runs Build and
// fills in the structure bookkeeping and a zero strain anchor.
// A nil cell builds an aperiodic batch.
func BuildGraph[B tensor.Backend](positions *tensor.Tensor[float64, B], numbers *tensor.Tensor[int64, B], cell *tensor.Tensor[float64, B], cutoff float64) (*graph.Batch[B], error) {
	edgeIndex, offsets, err := Build(positions, cell, cutoff)
	if err != nil {
		return nil, err
	}
	backend := positions.Backend()
	n := positions.Shape()[0]

	batch := &graph.Batch[B]{
		Positions:     positions,
		AtomicNumbers: numbers,
		EdgeIndex:     edgeIndex,
		Strain:        tensor.Zeros[float64](tensor.Shape{1, 3, 3}, backend),
	}
	if cell != nil {
		batch.Cell, err = tensor.FromSlice(cell.Data(), tensor.Shape{1, 3, 3}, backend)
		if err != nil {
			return nil, fmt.Errorf("neighbor: cell: %w", err)
		}
		batch.CellOffsets = offsets
	}
	batch.BatchPtr, err = tensor.FromSlice([]int64{0, int64(n)}, tensor.Shape{2}, backend)
	if err != nil {
		return nil, fmt.Errorf("neighbor: batch ptr: %w", err)
	}
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	return batch, nil
}
