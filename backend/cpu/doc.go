// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - gonum BLAS routines for float64 matrix multiplication
//   - Parallel element-wise kernels for large tensors
//   - Float32, Float64 and Int64 kernels
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/atomgrad/atomgrad/backend/cpu"
//	    "github.com/atomgrad/atomgrad/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    cell := tensor.Eye[float64](3, backend)
//	    offsets := tensor.Zeros[float64](tensor.Shape{4, 3}, backend)
//	    shifts := offsets.MatMul(cell)
//	    _ = shifts
//	}
//
// For gradient computation, wrap the backend with autodiff:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
package cpu
