package ops

import "github.com/atomgrad/atomgrad/internal/tensor"

// IndexSelectOp represents a dim-0 row gather: output[i] = x[index[i]].
//
// Backward: scatter-add the output gradient back to the selected rows.
// An atom referenced by several edges accumulates all their
// contributions, which is exactly IndexAdd with the same index.
type IndexSelectOp struct {
	inputs []*tensor.RawTensor // [x]
	index  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewIndexSelectOp creates a new IndexSelectOp.
// The index tensor receives no gradient.
func NewIndexSelectOp(x, index, output *tensor.RawTensor) *IndexSelectOp {
	return &IndexSelectOp{
		inputs: []*tensor.RawTensor{x},
		index:  index,
		output: output,
	}
}

// Backward scatter-adds the gradient into the input's rows.
func (op *IndexSelectOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	numRows := op.inputs[0].Shape()[0]
	return []*tensor.RawTensor{backend.IndexAdd(outputGrad, op.index, numRows)}
}

// Inputs returns the input tensors [x].
func (op *IndexSelectOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the gathered output tensor.
func (op *IndexSelectOp) Output() *tensor.RawTensor {
	return op.output
}

// IndexAddOp represents a dim-0 segment scatter-add:
// output[index[i]] += x[i], with a fixed number of output rows.
//
// Backward: gather the gradient of each output row back to the rows
// that contributed, i.e. IndexSelect with the same index.
type IndexAddOp struct {
	inputs []*tensor.RawTensor // [x]
	index  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewIndexAddOp creates a new IndexAddOp.
func NewIndexAddOp(x, index, output *tensor.RawTensor) *IndexAddOp {
	return &IndexAddOp{
		inputs: []*tensor.RawTensor{x},
		index:  index,
		output: output,
	}
}

// Backward gathers the gradient rows for each input row.
func (op *IndexAddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.IndexSelect(outputGrad, op.index)}
}

// Inputs returns the input tensors [x].
func (op *IndexAddOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the scattered output tensor.
func (op *IndexAddOp) Output() *tensor.RawTensor {
	return op.output
}
