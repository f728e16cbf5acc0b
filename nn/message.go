// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Interaction is an invariant message-passing stage. Each edge carries
// a message built from the neighbor's features modulated by a learned
// filter over the radial basis; messages are scatter-summed onto the
// center atoms and passed through an update network with a residual
// connection:
//
//	m_e  = (W_self h)[neighbor_e] * (W_filter rbf_e)
//	h_i += act(W_update sum_{e: center_e = i} m_e)
type Interaction[B tensor.Backend] struct {
	filter *Linear[B]
	self   *Linear[B]
	update *Linear[B]
	act    ActivationFunc[B]
}

// NewInteraction creates a message-passing stage for numFeatures-wide
// node features and numBasis-wide edge bases.
func NewInteraction[B tensor.Backend](numFeatures, numBasis int, activation string, backend B) (*Interaction[B], error) {
	act, err := ResolveActivation[B](activation)
	if err != nil {
		return nil, err
	}
	return &Interaction[B]{
		filter: NewLinearNoBias[B](numBasis, numFeatures, backend),
		self:   NewLinear[B](numFeatures, numFeatures, backend),
		update: NewLinear[B](numFeatures, numFeatures, backend),
		act:    act,
	}, nil
}

// Forward updates the node features in place.
func (m *Interaction[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	features := batch.Extra(KeyNodeFeatures)
	if features == nil {
		return nil, fmt.Errorf("interaction: node features missing; run an embedding stage first")
	}
	basis := batch.Extra(KeyEdgeBasis)
	if basis == nil {
		return nil, fmt.Errorf("interaction: edge basis missing; run a radial basis stage first")
	}

	center, neighbor, err := edgeEndpoints(batch)
	if err != nil {
		return nil, err
	}

	messages := m.self.Forward(features).IndexSelect(neighbor).
		Mul(m.filter.Forward(basis)) // (E, F)
	aggregated := messages.IndexAdd(center, batch.NumAtoms()) // (N, F)

	updated := features.Add(m.act(m.update.Forward(aggregated)))
	batch.SetExtra(KeyNodeFeatures, updated)
	return batch, nil
}

// Parameters returns the parameters of the three linear maps.
func (m *Interaction[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	params = append(params, m.filter.Parameters()...)
	params = append(params, m.self.Parameters()...)
	params = append(params, m.update.Parameters()...)
	return params
}
