// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/atomgrad/atomgrad/internal/backend/cpu"
	"github.com/atomgrad/atomgrad/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of all tensor
// operations, with gonum matrix routines for float64 matrix products
// and parallel element-wise kernels.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/atomgrad/atomgrad/backend/cpu"
//	    "github.com/atomgrad/atomgrad/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	    _ = x
//	}
func New() *Backend {
	return internalcpu.New()
}
