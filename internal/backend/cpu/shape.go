package cpu

import (
	"fmt"

	"github.com/atomgrad/atomgrad/internal/tensor"
)

// Reshape returns a view with the same data and a different shape.
func (c *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v to %v", t.Shape(), newShape))
	}
	return t.View(newShape)
}

// Transpose permutes the tensor's dimensions. With no axes, all
// dimensions are reversed.
func (c *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()
	n := t.NumElements()

	copyIdx := func(i int) int {
		// destination coordinates -> source flat index
		srcIdx := 0
		rem := i
		for d := 0; d < ndim; d++ {
			coord := rem / dstStrides[d]
			rem %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		return srcIdx
	}

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			dst[i] = src[copyIdx(i)]
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for i := 0; i < n; i++ {
			dst[i] = src[copyIdx(i)]
		}
	case tensor.Int32:
		src, dst := t.AsInt32(), result.AsInt32()
		for i := 0; i < n; i++ {
			dst[i] = src[copyIdx(i)]
		}
	case tensor.Int64:
		src, dst := t.AsInt64(), result.AsInt64()
		for i := 0; i < n; i++ {
			dst[i] = src[copyIdx(i)]
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

// Unsqueeze inserts a dimension of size 1 at the given position.
func (c *Backend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dim %d out of range for %dD tensor", dim, ndim))
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return x.View(newShape)
}

// Squeeze removes a dimension of size 1 at the given position.
func (c *Backend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("squeeze: dim %d out of range for %dD tensor", dim, ndim))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, not 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, ndim-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)
	return x.View(newShape)
}

// Expand broadcasts the tensor to the given shape. Dimensions of size 1
// (and missing leading dimensions) are repeated.
func (c *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	srcShape := x.Shape()
	if srcShape.Equal(shape) {
		return x.View(shape)
	}

	shift := len(shape) - len(srcShape)
	if shift < 0 {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", srcShape, shape))
	}
	for d, size := range srcShape {
		if size != 1 && size != shape[d+shift] {
			panic(fmt.Sprintf("expand: cannot expand %v to %v", srcShape, shape))
		}
	}

	result, err := tensor.NewRaw(shape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	outStrides := shape.ComputeStrides()
	idx := broadcastIndexer(srcShape, shape, outStrides)
	n := shape.NumElements()

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i := 0; i < n; i++ {
			dst[i] = src[idx(i)]
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i := 0; i < n; i++ {
			dst[i] = src[idx(i)]
		}
	case tensor.Int64:
		src, dst := x.AsInt64(), result.AsInt64()
		for i := 0; i < n; i++ {
			dst[i] = src[idx(i)]
		}
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}
	return result
}
