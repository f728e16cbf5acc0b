package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// A zero-size dimension is legal: a structure with no edges inside the
// cutoff produces (0,) lengths and (0, 3) vectors, which must flow
// through the pipeline without special cases.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // scalar
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes computes the broadcast shape for two shapes following
// NumPy broadcasting rules. Returns the result shape and whether either
// operand needs broadcasting.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	ndim := len(a)
	if len(b) > ndim {
		ndim = len(b)
	}

	out := make(Shape, ndim)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < ndim; i++ {
		da, db := 1, 1
		if idx := len(a) - ndim + i; idx >= 0 {
			da = a[idx]
		}
		if idx := len(b) - ndim + i; idx >= 0 {
			db = b[idx]
		}

		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
			needsBroadcast = true
		case db == 1:
			out[i] = da
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("cannot broadcast shapes %v and %v", a, b)
		}
	}
	return out, needsBroadcast, nil
}
