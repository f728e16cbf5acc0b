// Package cpu implements the CPU compute backend.
//
// Elementwise kernels are plain Go loops parallelized with the internal
// parallel helper; float64 matrix products delegate to gonum.
package cpu

import (
	"fmt"

	"github.com/atomgrad/atomgrad/internal/parallel"
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// Backend implements tensor operations on the CPU.
type Backend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (c *Backend) Device() tensor.Device {
	return c.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("add", a, b, addKernel)
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("sub", a, b, subKernel)
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("mul", a, b, mulKernel)
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("div", a, b, divKernel)
}

// binaryKind selects the arithmetic performed by a binary kernel.
type binaryKind int

const (
	addKernel binaryKind = iota
	subKernel
	mulKernel
	divKernel
)

func (c *Backend) binaryOp(name string, a, b *tensor.RawTensor, kind binaryKind) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	// Inplace fast path: same shape and sole buffer reference. The
	// autodiff decorator pins inputs with ForceNonUnique so recorded
	// operations never alias their inputs.
	if !needsBroadcast && a.IsUnique() && a.DType() != tensor.Bool {
		binaryInplace(a, b, kind)
		return a
	}

	result, err := tensor.NewRaw(outShape, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryDispatch(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast, kind, c.par)
	case tensor.Float64:
		binaryDispatch(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast, kind, c.par)
	case tensor.Int32:
		binaryDispatch(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast, kind, c.par)
	case tensor.Int64:
		binaryDispatch(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, needsBroadcast, kind, c.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

type number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

func binaryInplace(a, b *tensor.RawTensor, kind binaryKind) {
	switch a.DType() {
	case tensor.Float32:
		binaryInplaceKernel(a.AsFloat32(), b.AsFloat32(), kind)
	case tensor.Float64:
		binaryInplaceKernel(a.AsFloat64(), b.AsFloat64(), kind)
	case tensor.Int32:
		binaryInplaceKernel(a.AsInt32(), b.AsInt32(), kind)
	case tensor.Int64:
		binaryInplaceKernel(a.AsInt64(), b.AsInt64(), kind)
	default:
		panic(fmt.Sprintf("binary op: unsupported dtype %s", a.DType()))
	}
}

func binaryInplaceKernel[T number](a, b []T, kind binaryKind) {
	switch kind {
	case addKernel:
		for i := range a {
			a[i] += b[i]
		}
	case subKernel:
		for i := range a {
			a[i] -= b[i]
		}
	case mulKernel:
		for i := range a {
			a[i] *= b[i]
		}
	case divKernel:
		for i := range a {
			a[i] /= b[i]
		}
	}
}

func binaryDispatch[T number](out, a, b []T, aShape, bShape, outShape tensor.Shape, needsBroadcast bool, kind binaryKind, par parallel.Config) {
	if !needsBroadcast {
		binaryVectorized(out, a, b, kind, par)
		return
	}
	binaryBroadcast(out, a, b, aShape, bShape, outShape, kind)
}

func binaryVectorized[T number](out, a, b []T, kind binaryKind, par parallel.Config) {
	switch kind {
	case addKernel:
		parallel.For(len(out), func(i int) { out[i] = a[i] + b[i] }, par)
	case subKernel:
		parallel.For(len(out), func(i int) { out[i] = a[i] - b[i] }, par)
	case mulKernel:
		parallel.For(len(out), func(i int) { out[i] = a[i] * b[i] }, par)
	case divKernel:
		parallel.For(len(out), func(i int) { out[i] = a[i] / b[i] }, par)
	}
}

func binaryBroadcast[T number](out, a, b []T, aShape, bShape, outShape tensor.Shape, kind binaryKind) {
	outStrides := outShape.ComputeStrides()
	aIdx := broadcastIndexer(aShape, outShape, outStrides)
	bIdx := broadcastIndexer(bShape, outShape, outStrides)

	for i := range out {
		x, y := a[aIdx(i)], b[bIdx(i)]
		switch kind {
		case addKernel:
			out[i] = x + y
		case subKernel:
			out[i] = x - y
		case mulKernel:
			out[i] = x * y
		case divKernel:
			out[i] = x / y
		}
	}
}

// broadcastIndexer maps a flat output index to the flat index of an
// operand that may be broadcast along leading or size-1 dimensions.
func broadcastIndexer(srcShape, outShape tensor.Shape, outStrides []int) func(int) int {
	srcStrides := srcShape.ComputeStrides()
	shift := len(outShape) - len(srcShape)

	return func(flat int) int {
		srcIdx := 0
		rem := flat
		for d := 0; d < len(outShape); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]

			sd := d - shift
			if sd < 0 {
				continue
			}
			if srcShape[sd] == 1 {
				continue
			}
			srcIdx += coord * srcStrides[sd]
		}
		return srcIdx
	}
}
