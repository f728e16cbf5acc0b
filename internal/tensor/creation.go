package tensor

import (
	"fmt"
	"math/rand"
)

func mustRaw[T DType](shape Shape, device Device) *RawTensor {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), device)
	if err != nil {
		panic(fmt.Sprintf("tensor creation: %v", err))
	}
	return raw
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return New[T, B](mustRaw[T](shape, b.Device()), b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(value)
		}
	case []float64:
		for i := range data {
			data[i] = value
		}
	case []int32:
		for i := range data {
			data[i] = int32(value)
		}
	case []int64:
		for i := range data {
			data[i] = int64(value)
		}
	case []bool:
		for i := range data {
			data[i] = value != 0
		}
	}
	return t
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1). Only floating-point element types are supported.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	case []float64:
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	default:
		panic("Randn: only float32 and float64 are supported")
	}
	return t
}

// Eye creates a 2D identity matrix of size n.
func Eye[T DType, B Backend](n int, b B) *Tensor[T, B] {
	t := Zeros[T, B](Shape{n, n}, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := 0; i < n; i++ {
			data[i*n+i] = 1
		}
	case []float64:
		for i := 0; i < n; i++ {
			data[i*n+i] = 1
		}
	default:
		panic("Eye: only float32 and float64 are supported")
	}
	return t
}

// ZerosLike creates a zero tensor with the same shape and dtype as the
// given raw tensor. This is the disconnected-gradient fallback shape.
func ZerosLike(r *RawTensor) *RawTensor {
	out, err := NewRaw(r.Shape(), r.DType(), r.Device())
	if err != nil {
		panic(fmt.Sprintf("ZerosLike: %v", err))
	}
	return out
}

// OnesLike creates a tensor of ones with the same shape and dtype as the
// given raw tensor. Used to seed unit-weighted backward passes.
func OnesLike(r *RawTensor) *RawTensor {
	out := ZerosLike(r)
	switch out.DType() {
	case Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("OnesLike: unsupported dtype %s", out.DType()))
	}
	return out
}
