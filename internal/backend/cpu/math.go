package cpu

import (
	"fmt"
	"math"

	"github.com/atomgrad/atomgrad/internal/parallel"
	"github.com/atomgrad/atomgrad/internal/tensor"
)

func (c *Backend) unaryOp(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(src), func(i int) { dst[i] = float32(f(float64(src[i]))) }, c.par)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) { dst[i] = f(src[i]) }, c.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}

// Exp computes the element-wise exponential.
func (c *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("exp", x, math.Exp)
}

// Sqrt computes the element-wise square root.
func (c *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("sqrt", x, math.Sqrt)
}

// Sin computes the element-wise sine.
func (c *Backend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("sin", x, math.Sin)
}

// Cos computes the element-wise cosine.
func (c *Backend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("cos", x, math.Cos)
}

// Sigmoid computes the element-wise logistic function.
func (c *Backend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("sigmoid", x, func(v float64) float64 {
		return 1.0 / (1.0 + math.Exp(-v))
	})
}
