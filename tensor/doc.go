// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for atomistic
// machine learning.
//
// # Overview
//
// Tensors are the fundamental data structure in AtomGrad. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy views and copy-on-write buffers
//   - Device abstraction
//
// # Basic Usage
//
//	import (
//	    "github.com/atomgrad/atomgrad/tensor"
//	    "github.com/atomgrad/atomgrad/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    pos := tensor.Zeros[float64](tensor.Shape{8, 3}, backend)
//	    ones := tensor.Ones[float64](tensor.Shape{8, 3}, backend)
//
//	    shifted := pos.Add(ones)
//	    lengths := shifted.Norm()
//	    _ = lengths
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType
// constraint:
//   - float32, float64 (floating-point; coordinates, energies, cells)
//   - int32, int64 (signed integers; graph indices use int64)
//   - bool (boolean masks)
//
// Interatomic geometry is float64 throughout. Forces are gradients of
// energies over angstrom-scale displacements, and float32 round-off is
// visible in finite-difference checks at that scale.
package tensor
