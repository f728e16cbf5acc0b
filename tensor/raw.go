// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat64(), AsInt64(), etc.
//   - Copy-on-write semantics via Clone()
//   - Reference counting for efficient memory management
//
// Most users should use the high-level Tensor[T, B] type instead.
// RawTensor identity matters for gradient derivation: the tensors passed
// to autodiff.Grad as inputs must be the same *RawTensor values that
// entered the recorded computation.
type RawTensor = tensor.RawTensor
