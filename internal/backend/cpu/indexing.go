package cpu

import (
	"fmt"

	"github.com/atomgrad/atomgrad/internal/tensor"
)

// rowSize returns the number of elements in one dim-0 row.
func rowSize(s tensor.Shape) int {
	n := 1
	for _, d := range s[1:] {
		n *= d
	}
	return n
}

func indexData(index *tensor.RawTensor) []int64 {
	if len(index.Shape()) != 1 {
		panic(fmt.Sprintf("index tensor must be 1D, got %v", index.Shape()))
	}
	if index.DType() != tensor.Int64 {
		panic(fmt.Sprintf("index tensor must be int64, got %s", index.DType()))
	}
	return index.AsInt64()
}

// IndexSelect gathers rows along dimension 0: out[i] = x[index[i]].
// An empty index produces an empty result; this is the zero-edge case.
func (c *Backend) IndexSelect(x *tensor.RawTensor, index *tensor.RawTensor) *tensor.RawTensor {
	idx := indexData(index)
	srcShape := x.Shape()
	if len(srcShape) == 0 {
		panic("indexselect: cannot index a scalar")
	}

	outShape := srcShape.Clone()
	outShape[0] = len(idx)
	result, err := tensor.NewRaw(outShape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("indexselect: %v", err))
	}

	row := rowSize(srcShape)
	numRows := srcShape[0]

	copyRow := func(dst, src int) {
		if src < 0 || src >= numRows {
			panic(fmt.Sprintf("indexselect: index %d out of range [0, %d)", src, numRows))
		}
		switch x.DType() {
		case tensor.Float32:
			copy(result.AsFloat32()[dst*row:(dst+1)*row], x.AsFloat32()[src*row:(src+1)*row])
		case tensor.Float64:
			copy(result.AsFloat64()[dst*row:(dst+1)*row], x.AsFloat64()[src*row:(src+1)*row])
		case tensor.Int32:
			copy(result.AsInt32()[dst*row:(dst+1)*row], x.AsInt32()[src*row:(src+1)*row])
		case tensor.Int64:
			copy(result.AsInt64()[dst*row:(dst+1)*row], x.AsInt64()[src*row:(src+1)*row])
		default:
			panic(fmt.Sprintf("indexselect: unsupported dtype %s", x.DType()))
		}
	}

	for i, v := range idx {
		copyRow(i, int(v))
	}
	return result
}

// IndexAdd scatter-adds rows into numSegments output rows along
// dimension 0: out[index[i]] += x[i]. Adjoint of IndexSelect; used for
// per-structure energy sums and message aggregation, and as the
// backward of gathers.
func (c *Backend) IndexAdd(x *tensor.RawTensor, index *tensor.RawTensor, numSegments int) *tensor.RawTensor {
	idx := indexData(index)
	srcShape := x.Shape()
	if len(srcShape) == 0 {
		panic("indexadd: cannot scatter a scalar")
	}
	if srcShape[0] != len(idx) {
		panic(fmt.Sprintf("indexadd: %d rows but %d indices", srcShape[0], len(idx)))
	}

	outShape := srcShape.Clone()
	outShape[0] = numSegments
	result, err := tensor.NewRaw(outShape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("indexadd: %v", err))
	}

	row := rowSize(srcShape)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range idx {
			seg := checkSegment(int(v), numSegments)
			for j := 0; j < row; j++ {
				dst[seg*row+j] += src[i*row+j]
			}
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range idx {
			seg := checkSegment(int(v), numSegments)
			for j := 0; j < row; j++ {
				dst[seg*row+j] += src[i*row+j]
			}
		}
	case tensor.Int64:
		src, dst := x.AsInt64(), result.AsInt64()
		for i, v := range idx {
			seg := checkSegment(int(v), numSegments)
			for j := 0; j < row; j++ {
				dst[seg*row+j] += src[i*row+j]
			}
		}
	default:
		panic(fmt.Sprintf("indexadd: unsupported dtype %s", x.DType()))
	}
	return result
}

func checkSegment(seg, numSegments int) int {
	if seg < 0 || seg >= numSegments {
		panic(fmt.Sprintf("indexadd: segment %d out of range [0, %d)", seg, numSegments))
	}
	return seg
}
