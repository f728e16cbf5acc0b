// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Batch extras written and read by the learned stages.
const (
	KeyNodeFeatures = "node_features"
	KeyEdgeBasis    = "edge_basis"
	KeyCharges      = "charges"
)

// ElementEmbedding maps atomic numbers to learned feature vectors. The
// embedding table has one row per atomic number up to maxZ; the lookup
// is a differentiable row gather, so embedding rows receive gradients
// from the same tape walk that derives forces.
type ElementEmbedding[B tensor.Backend] struct {
	maxZ        int
	numFeatures int
	weight      *Parameter[B] // (maxZ+1, numFeatures)
}

// NewElementEmbedding creates an embedding stage covering atomic
// numbers 1..maxZ.
func NewElementEmbedding[B tensor.Backend](maxZ, numFeatures int, backend B) *ElementEmbedding[B] {
	weight := NewParameter("element_embedding",
		Xavier(numFeatures, numFeatures, tensor.Shape{maxZ + 1, numFeatures}, backend))
	return &ElementEmbedding[B]{
		maxZ:        maxZ,
		numFeatures: numFeatures,
		weight:      weight,
	}
}

// Forward writes initial node features into the batch.
func (e *ElementEmbedding[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	for i, z := range batch.AtomicNumbers.Data() {
		if z > int64(e.maxZ) {
			return nil, fmt.Errorf("embedding: atomic number %d at atom %d exceeds table size %d", z, i, e.maxZ)
		}
	}
	features := e.weight.Tensor().IndexSelect(batch.AtomicNumbers)
	batch.SetExtra(KeyNodeFeatures, features)
	return batch, nil
}

// Parameters returns the embedding table.
func (e *ElementEmbedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.weight}
}

// NumFeatures returns the feature width.
func (e *ElementEmbedding[B]) NumFeatures() int { return e.numFeatures }
