// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"math"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// BesselBasis expands edge lengths into spherical Bessel radial basis
// functions with a cosine cutoff envelope:
//
//	b_n(r) = sqrt(2/rc) * sin(f_n r) / r * env(r)
//	env(r) = 0.5 * (cos(pi r / rc) + 1)
//
// The frequencies start at f_n = n*pi/rc and are trainable. The
// envelope takes the basis smoothly to zero at the cutoff, keeping
// forces continuous as neighbors enter and leave the edge list.
type BesselBasis[B tensor.Backend] struct {
	numBasis int
	cutoff   float64
	freqs    *Parameter[B] // (1, numBasis)
}

// NewBesselBasis creates a radial basis stage with the given number of
// basis functions and cutoff radius.
func NewBesselBasis[B tensor.Backend](numBasis int, cutoff float64, backend B) (*BesselBasis[B], error) {
	if numBasis < 1 {
		return nil, fmt.Errorf("rbf: need at least one basis function, got %d", numBasis)
	}
	if cutoff <= 0 {
		return nil, fmt.Errorf("rbf: cutoff must be positive, got %g", cutoff)
	}
	freqs := tensor.Zeros[float64](tensor.Shape{1, numBasis}, backend)
	data := freqs.Data()
	for n := range data {
		data[n] = float64(n+1) * math.Pi / cutoff
	}
	return &BesselBasis[B]{
		numBasis: numBasis,
		cutoff:   cutoff,
		freqs:    NewParameter("bessel_freqs", freqs),
	}, nil
}

// Forward expands batch.EdgeLength into the per-edge basis and stores
// it in the batch. Edge preparation must have run first.
func (r *BesselBasis[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	if batch.EdgeLength == nil {
		return nil, fmt.Errorf("rbf: edge lengths missing; run edge preparation first")
	}

	lengths := batch.EdgeLength.Unsqueeze(1) // (E, 1)

	basis := lengths.Mul(r.freqs.Tensor()).Sin().Div(lengths).
		MulScalar(math.Sqrt(2.0 / r.cutoff)) // (E, numBasis)

	envelope := lengths.MulScalar(math.Pi / r.cutoff).Cos().
		AddScalar(1).MulScalar(0.5) // (E, 1)

	batch.SetExtra(KeyEdgeBasis, basis.Mul(envelope))
	return batch, nil
}

// Parameters returns the trainable frequencies.
func (r *BesselBasis[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{r.freqs}
}

// NumBasis returns the number of basis functions.
func (r *BesselBasis[B]) NumBasis() int { return r.numBasis }

// Cutoff returns the cutoff radius.
func (r *BesselBasis[B]) Cutoff() float64 { return r.cutoff }
