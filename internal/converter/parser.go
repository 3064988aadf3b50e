package converter

import (
	"strconv"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// checkArity validates the operand counts of op. A negative maximum means
// unbounded.
func checkArity(op *tflite.OperatorT, minIn, maxIn, minOut, maxOut int) error {
	if n := len(op.Inputs); n < minIn || (maxIn >= 0 && n > maxIn) {
		return status.New(status.MissingAttribute, "expected %s inputs, got %d", bounds(minIn, maxIn), n)
	}
	if n := len(op.Outputs); n < minOut || (maxOut >= 0 && n > maxOut) {
		return status.New(status.MissingAttribute, "expected %s outputs, got %d", bounds(minOut, maxOut), n)
	}
	return nil
}

func bounds(lo, hi int) string {
	switch {
	case hi < 0:
		return strconv.Itoa(lo) + " or more"
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + " to " + strconv.Itoa(hi)
	}
}

// options returns the builtin options of op as T.
func options[T any](op *tflite.OperatorT) (T, bool) {
	var zero T
	if op.BuiltinOptions == nil {
		return zero, false
	}
	v, ok := op.BuiltinOptions.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// addOutputs wires every output of op in order.
func addOutputs(ctx *Context, op *tflite.OperatorT, format ops.Format) error {
	for _, out := range op.Outputs {
		if err := ctx.AddOutput(out, format); err != nil {
			return err
		}
	}
	return nil
}

// fusedActivation maps a foreign fused activation to the canonical one.
func fusedActivation(a tflite.ActivationFunctionType) (ops.ActivationType, error) {
	switch a {
	case tflite.ActivationFunctionTypeNONE:
		return ops.NoActivation, nil
	case tflite.ActivationFunctionTypeRELU:
		return ops.Relu, nil
	case tflite.ActivationFunctionTypeRELU6:
		return ops.Relu6, nil
	case tflite.ActivationFunctionTypeRELU_N1_TO_1:
		return ops.ReluN1To1, nil
	case tflite.ActivationFunctionTypeTANH:
		return ops.Tanh, nil
	default:
		return 0, status.New(status.InvalidAttributeData, "fused activation %d is not supported", int8(a))
	}
}
