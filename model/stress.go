// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/atomgrad/atomgrad/tensor"
)

// Stress converts a per-structure virial into stress by dividing each
// structure's virial by its cell volume. Both tensors have shape
// (S, 3, 3). The division runs through the backend, so a stress used
// in a loss stays differentiable back to the virial.
func Stress[B tensor.Backend](virial, cell *tensor.Tensor[float64, B]) (*tensor.Tensor[float64, B], error) {
	vShape := virial.Shape()
	if len(vShape) != 3 || vShape[1] != 3 || vShape[2] != 3 {
		return nil, fmt.Errorf("stress: virial must have shape (S, 3, 3), got %v", vShape)
	}
	if cell == nil {
		return nil, fmt.Errorf("stress: aperiodic structure has no cell volume")
	}
	cShape := cell.Shape()
	if len(cShape) != 3 || cShape[0] != vShape[0] || cShape[1] != 3 || cShape[2] != 3 {
		return nil, fmt.Errorf("stress: cell shape %v does not match virial shape %v", cShape, vShape)
	}

	numStructures := vShape[0]
	inverseVolumes := make([]float64, numStructures)
	cellData := cell.Data()
	for s := 0; s < numStructures; s++ {
		m := mat.NewDense(3, 3, cellData[s*9:(s+1)*9])
		volume := math.Abs(mat.Det(m))
		if volume == 0 {
			return nil, fmt.Errorf("stress: structure %d has a degenerate cell", s)
		}
		inverseVolumes[s] = 1.0 / volume
	}

	scale, err := tensor.FromSlice(inverseVolumes, tensor.Shape{numStructures, 1, 1}, virial.Backend())
	if err != nil {
		return nil, fmt.Errorf("stress: %w", err)
	}
	return virial.Mul(scale), nil
}
