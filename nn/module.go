// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn implements the building blocks of graph interatomic
// potentials.
//
// The package provides:
//   - Module interface: a learned stage consuming and returning a
//     structure batch
//   - ComputeEdgeData: strain injection and periodic edge resolution
//   - ComputeProperties: forces and virial derived from the energy by
//     reverse-mode differentiation
//   - Learned stages: element embedding, radial basis, invariant
//     message passing, energy and charge heads
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Module is the base interface for all potential stages.
//
// A stage consumes a structure batch and returns it with fields added
// or updated. Stages never remove required geometry fields. Failures
// are deterministic (shape mismatches, missing fields) and propagate
// unmodified to the caller.
type Module[B tensor.Backend] interface {
	// Forward transforms the batch. The returned batch is usually the
	// input batch mutated in place; returning a different batch is
	// allowed.
	Forward(batch *graph.Batch[B]) (*graph.Batch[B], error)

	// Parameters returns all trainable parameters of this module,
	// including nested module parameters. Stages without trainable
	// state return an empty slice.
	Parameters() []*Parameter[B]
}
