package tensor

import "fmt"

// DType is the compile-time constraint for tensor element types.
// Atomistic data uses float64 for coordinates and properties and
// int64 for index tensors (edge indices, structure assignment).
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~bool
}

// DataType is the runtime type tag of a tensor.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Bool
)

// String returns a human-readable type name.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Size returns the size of one element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Bool:
		return 1
	default:
		panic(fmt.Sprintf("unknown dtype %d", int(dt)))
	}
}

// IsFloat reports whether the data type is a floating-point type.
// Only floating tensors participate in gradient computation.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// inferDataType maps a Go value to its DataType tag.
func inferDataType(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case bool:
		return Bool
	default:
		panic(fmt.Sprintf("unsupported element type %T", v))
	}
}
