package tensor

// Backend defines the interface that compute backends must implement.
// The operation set is the closure of what the potential pipeline needs:
// edge geometry (gather/contract/norm), strain deformation (batched
// matmul, transpose), learned stages (matmul, activations) and
// per-structure reductions (segment scatter-add).
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Matrix operations
	// MatMul: (M, K) @ (K, N) -> (M, N)
	// BatchMatMul: (B, M, K) @ (B, K, N) -> (B, M, N)
	MatMul(a, b *RawTensor) *RawTensor
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Squeeze(x *RawTensor, dim int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Indexing operations along dimension 0.
	// IndexSelect gathers rows: out[i] = x[index[i]].
	// IndexAdd scatter-adds rows into numSegments output rows:
	// out[index[i]] += x[i]. The two are adjoint, which is what makes
	// per-edge gathers and per-structure sums differentiable.
	IndexSelect(x *RawTensor, index *RawTensor) *RawTensor
	IndexAdd(x *RawTensor, index *RawTensor, numSegments int) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
