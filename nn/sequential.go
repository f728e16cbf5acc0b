// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/graph"
	"github.com/atomgrad/atomgrad/tensor"
)

// Sequential chains stages: each stage's output batch becomes the next
// stage's input. A stage failure stops the chain and propagates.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Forward applies all stages in order.
func (s *Sequential[B]) Forward(batch *graph.Batch[B]) (*graph.Batch[B], error) {
	out := batch
	for i, module := range s.modules {
		var err error
		out, err = module.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return out, nil
}

// Parameters returns all trainable parameters from all stages.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a stage.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of stages.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the stage at the given index.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}
