package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/atomgrad/atomgrad/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
// float64 delegates to gonum's BLAS-backed Dense multiply.
func (c *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", as, bs))
	}

	m, k, n := as[0], as[1], bs[1]
	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}
	if m == 0 || n == 0 {
		return result
	}
	if k == 0 {
		return result // inner dim 0: result is all zeros
	}

	switch a.DType() {
	case tensor.Float64:
		am := mat.NewDense(m, k, a.AsFloat64())
		bm := mat.NewDense(k, n, b.AsFloat64())
		rm := mat.NewDense(m, n, result.AsFloat64())
		rm.Mul(am, bm)
	case tensor.Float32:
		matmulLoop(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

// BatchMatMul performs batched matrix multiplication:
// (B, M, K) @ (B, K, N) -> (B, M, N).
func (c *Backend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 3 || len(bs) != 3 {
		panic(fmt.Sprintf("batchmatmul: expected 3D tensors, got %v and %v", as, bs))
	}
	if as[0] != bs[0] {
		panic(fmt.Sprintf("batchmatmul: batch dimensions do not match: %v @ %v", as, bs))
	}
	if as[2] != bs[1] {
		panic(fmt.Sprintf("batchmatmul: inner dimensions do not match: %v @ %v", as, bs))
	}

	batch, m, k, n := as[0], as[1], as[2], bs[2]
	result, err := tensor.NewRaw(tensor.Shape{batch, m, n}, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("batchmatmul: %v", err))
	}
	if batch == 0 || m == 0 || k == 0 || n == 0 {
		return result
	}

	switch a.DType() {
	case tensor.Float64:
		ad, bd, rd := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := 0; i < batch; i++ {
			am := mat.NewDense(m, k, ad[i*m*k:(i+1)*m*k])
			bm := mat.NewDense(k, n, bd[i*k*n:(i+1)*k*n])
			rm := mat.NewDense(m, n, rd[i*m*n:(i+1)*m*n])
			rm.Mul(am, bm)
		}
	case tensor.Float32:
		ad, bd, rd := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := 0; i < batch; i++ {
			matmulLoop(rd[i*m*n:(i+1)*m*n], ad[i*m*k:(i+1)*m*k], bd[i*k*n:(i+1)*k*n], m, k, n)
		}
	default:
		panic(fmt.Sprintf("batchmatmul: unsupported dtype %s", a.DType()))
	}
	return result
}

func matmulLoop[T ~float32 | ~float64](out, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			out[i*n+j] = sum
		}
	}
}
