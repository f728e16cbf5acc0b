package autodiff

import (
	"github.com/atomgrad/atomgrad/internal/autodiff/ops"
	"github.com/atomgrad/atomgrad/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	grads := tape.BackwardFrom(energy, seed, backend, false)
type GradientTape struct {
	operations []ops.Operation // recorded operations, in execution order
	recording  bool
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape if recording is enabled.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// BackwardFrom computes gradients of the given output with respect to
// every tensor on the tape, starting from the provided seed gradient.
//
// A unit seed makes a multi-structure energy vector behave as an
// implicit sum: each structure's energy back-propagates with weight 1,
// which is equivalent to independent per-structure gradients because
// structures do not share atoms.
//
// When createGraph is true the backward arithmetic is itself recorded
// on the tape, so the returned gradients are differentiable (needed for
// force-matching losses). Otherwise recording is suspended for the
// duration of the walk.
//
// Tensors the output does not depend on are simply absent from the
// returned map; callers apply the zero-gradient fallback.
func (t *GradientTape) BackwardFrom(output, seed *tensor.RawTensor, backend tensor.Backend, createGraph bool) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[output] = seed
	if len(t.operations) == 0 {
		return grads
	}

	if !createGraph {
		wasRecording := t.recording
		t.recording = false
		defer func() {
			t.recording = wasRecording
		}()
	}

	// New operations appended during a create-graph walk belong to the
	// derivative computation and must not be revisited.
	n := len(t.operations)
	for i := n - 1; i >= 0; i-- {
		op := t.operations[i]

		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue // no gradient flows through this operation
		}

		inputGrads := op.Backward(outputGrad, backend)
		t.accumulate(op, inputGrads, grads, backend)
	}

	return grads
}

// accumulate adds computed input gradients into the gradient map,
// summing when a tensor already has a gradient (fan-out in the graph).
func (t *GradientTape) accumulate(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	inputs := op.Inputs()
	for j, input := range inputs {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			// Pass-through backwards can alias one gradient tensor under
			// several map keys; pin both so Add cannot accumulate inplace.
			releaseA := existing.ForceNonUnique()
			releaseB := inputGrad.ForceNonUnique()
			grads[input] = backend.Add(existing, inputGrad)
			releaseA()
			releaseB()
		} else {
			grads[input] = inputGrad
		}
	}
}
