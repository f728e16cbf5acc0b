// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/atomgrad/atomgrad/tensor"
)

// ActivationFunc is an element-wise nonlinearity applied between
// learned layers.
type ActivationFunc[B tensor.Backend] func(*tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]

// SiLU computes x * sigmoid(x), the smooth default for potentials:
// energies need continuous derivatives for forces to be continuous.
func SiLU[B tensor.Backend](x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return x.Mul(x.Sigmoid())
}

// Sigmoid computes the logistic function.
func Sigmoid[B tensor.Backend](x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return x.Sigmoid()
}

// Identity passes the input through unchanged.
func Identity[B tensor.Backend](x *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return x
}

// ResolveActivation maps an activation name to its function. Unknown
// names are rejected before any computation.
func ResolveActivation[B tensor.Backend](name string) (ActivationFunc[B], error) {
	switch name {
	case "silu", "swish":
		return SiLU[B], nil
	case "sigmoid":
		return Sigmoid[B], nil
	case "identity", "linear":
		return Identity[B], nil
	default:
		return nil, fmt.Errorf("nn: unsupported activation %q", name)
	}
}
