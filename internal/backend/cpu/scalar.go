package cpu

import (
	"fmt"

	"github.com/atomgrad/atomgrad/internal/parallel"
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (c *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("addscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s := float32(scalar)
		parallel.For(len(src), func(i int) { dst[i] = src[i] + s }, c.par)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) { dst[i] = src[i] + scalar }, c.par)
	default:
		panic(fmt.Sprintf("addscalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// MulScalar multiplies every element by a scalar.
func (c *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s := float32(scalar)
		parallel.For(len(src), func(i int) { dst[i] = src[i] * s }, c.par)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) { dst[i] = src[i] * scalar }, c.par)
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}
	return result
}
