package tensor

import (
	"math"
	"testing"
)

// fakeBackend satisfies Backend for tests that never invoke compute.
type fakeBackend struct{}

func (fakeBackend) Add(a, b *RawTensor) *RawTensor                        { return a }
func (fakeBackend) Sub(a, b *RawTensor) *RawTensor                        { return a }
func (fakeBackend) Mul(a, b *RawTensor) *RawTensor                        { return a }
func (fakeBackend) Div(a, b *RawTensor) *RawTensor                        { return a }
func (fakeBackend) AddScalar(x *RawTensor, s float64) *RawTensor          { return x }
func (fakeBackend) MulScalar(x *RawTensor, s float64) *RawTensor          { return x }
func (fakeBackend) MatMul(a, b *RawTensor) *RawTensor                     { return a }
func (fakeBackend) BatchMatMul(a, b *RawTensor) *RawTensor                { return a }
func (fakeBackend) Reshape(x *RawTensor, s Shape) *RawTensor              { return x }
func (fakeBackend) Transpose(x *RawTensor, axes ...int) *RawTensor        { return x }
func (fakeBackend) Unsqueeze(x *RawTensor, dim int) *RawTensor            { return x }
func (fakeBackend) Squeeze(x *RawTensor, dim int) *RawTensor              { return x }
func (fakeBackend) Expand(x *RawTensor, s Shape) *RawTensor               { return x }
func (fakeBackend) IndexSelect(x, index *RawTensor) *RawTensor            { return x }
func (fakeBackend) IndexAdd(x, index *RawTensor, n int) *RawTensor        { return x }
func (fakeBackend) Sum(x *RawTensor) *RawTensor                           { return x }
func (fakeBackend) SumDim(x *RawTensor, dim int, keep bool) *RawTensor    { return x }
func (fakeBackend) Exp(x *RawTensor) *RawTensor                           { return x }
func (fakeBackend) Sqrt(x *RawTensor) *RawTensor                          { return x }
func (fakeBackend) Sin(x *RawTensor) *RawTensor                           { return x }
func (fakeBackend) Cos(x *RawTensor) *RawTensor                           { return x }
func (fakeBackend) Sigmoid(x *RawTensor) *RawTensor                       { return x }
func (fakeBackend) Name() string                                          { return "fake" }
func (fakeBackend) Device() Device                                        { return CPU }

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestShapeValidateAllowsZeroDims(t *testing.T) {
	if err := (Shape{0, 3}).Validate(); err != nil {
		t.Errorf("Shape{0,3} should be valid (empty edge set), got %v", err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Shape{2,-1} should be rejected")
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3}, 6},
		{Shape{1}, 1},
		{Shape{0, 3}, 0},
		{Shape{4, 1, 3}, 12},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		needs      bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 1}, Shape{2, 3}, Shape{2, 3}, true},
		{Shape{4, 3}, Shape{3}, Shape{4, 3}, true},
		{Shape{5, 1}, Shape{1, 4}, Shape{5, 4}, true},
		{Shape{0, 3}, Shape{1, 3}, Shape{0, 3}, true},
	}
	for _, tt := range tests {
		got, needs, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) || needs != tt.needs {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v, want %v, %v",
				tt.a, tt.b, got, needs, tt.want, tt.needs)
		}
	}

	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("incompatible shapes should not broadcast")
	}
}

func TestRawTensorEmptyAccessors(t *testing.T) {
	raw, err := NewRaw(Shape{0, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if data := raw.AsFloat64(); len(data) != 0 {
		t.Errorf("empty tensor data length = %d, want 0", len(data))
	}
}

func TestRawTensorRefCounting(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !raw.IsUnique() {
		t.Error("fresh tensor should be unique")
	}
	clone := raw.Clone()
	if raw.IsUnique() || clone.IsUnique() {
		t.Error("after clone, neither handle should be unique")
	}
	clone.Release()
	if !raw.IsUnique() {
		t.Error("after releasing the clone, the original should be unique again")
	}
}

func TestForceNonUnique(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	release := raw.ForceNonUnique()
	if raw.IsUnique() {
		t.Error("pinned tensor must not be unique")
	}
	release()
	if !raw.IsUnique() {
		t.Error("released pin must restore uniqueness")
	}
}

func TestFromSliceAndAccessors(t *testing.T) {
	b := fakeBackend{}
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if x.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %v, want 6", x.At(1, 2))
	}
	x.Set(9, 0, 1)
	if x.Data()[1] != 9 {
		t.Errorf("Set did not write through, got %v", x.Data()[1])
	}

	if _, err := FromSlice([]float64{1, 2}, Shape{3}, b); err == nil {
		t.Error("length mismatch should error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := fakeBackend{}
	x, err := FromSlice([]float64{1, 2}, Shape{2}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	y := x.Clone()
	y.Data()[0] = 7
	if x.Data()[0] != 1 {
		t.Error("Clone must not share data")
	}
}

func TestZerosLikeOnesLike(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	ones := OnesLike(raw)
	for _, v := range ones.AsFloat64() {
		if v != 1 {
			t.Fatalf("OnesLike entry = %v, want 1", v)
		}
	}
	zeros := ZerosLike(raw)
	if !zeros.Shape().Equal(raw.Shape()) {
		t.Errorf("ZerosLike shape = %v, want %v", zeros.Shape(), raw.Shape())
	}
}

func TestFullAndEye(t *testing.T) {
	b := fakeBackend{}
	f := Full[float64](Shape{2, 2}, 3.5, b)
	for _, v := range f.Data() {
		if v != 3.5 {
			t.Fatalf("Full entry = %v, want 3.5", v)
		}
	}
	eye := Eye[float64](3, b)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(eye.At(i, j)-want) > 1e-15 {
				t.Errorf("Eye(%d,%d) = %v, want %v", i, j, eye.At(i, j), want)
			}
		}
	}
}
