// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package elements

import (
	"fmt"

	"github.com/atomgrad/atomgrad/tensor"
)

// Centroid returns the mass-weighted center of the given positions.
// Positions have shape (N, 3) and numbers shape (N,). This is a host
// computation; it does not participate in gradient recording.
func Centroid[B tensor.Backend](positions *tensor.Tensor[float64, B], numbers *tensor.Tensor[int64, B]) ([3]float64, error) {
	shape := positions.Shape()
	if len(shape) != 2 || shape[1] != 3 {
		return [3]float64{}, fmt.Errorf("elements: positions must have shape (N, 3), got %v", shape)
	}
	n := shape[0]
	if numbers.Shape()[0] != n {
		return [3]float64{}, fmt.Errorf("elements: %d atomic numbers for %d positions", numbers.Shape()[0], n)
	}
	if n == 0 {
		return [3]float64{}, fmt.Errorf("elements: centroid of empty structure")
	}

	pos := positions.Data()
	var center [3]float64
	var total float64
	for i, z := range numbers.Data() {
		m, err := Mass(int(z))
		if err != nil {
			return [3]float64{}, err
		}
		total += m
		for d := 0; d < 3; d++ {
			center[d] += m * pos[i*3+d]
		}
	}
	for d := 0; d < 3; d++ {
		center[d] /= total
	}
	return center, nil
}
