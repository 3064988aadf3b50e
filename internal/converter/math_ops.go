package converter

import (
	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// registerMathOps adds element-wise binary operators to the registry.
func registerMathOps(r *Registry) error {
	return register(r, map[string]ParserFunc{
		"Add": binaryParser(func(o *tflite.AddOptionsT) tflite.ActivationFunctionType {
			return o.FusedActivationFunction
		}, func(a ops.ActivationType) ops.Attr { return &ops.Add{Activation: a} }),
		"Sub": binaryParser(func(o *tflite.SubOptionsT) tflite.ActivationFunctionType {
			return o.FusedActivationFunction
		}, func(a ops.ActivationType) ops.Attr { return &ops.Sub{Activation: a} }),
		"Mul": binaryParser(func(o *tflite.MulOptionsT) tflite.ActivationFunctionType {
			return o.FusedActivationFunction
		}, func(a ops.ActivationType) ops.Attr { return &ops.Mul{Activation: a} }),
	})
}

// binaryParser builds the parser of a two-input operator whose options
// carry only a fused activation.
func binaryParser[T any](
	fused func(T) tflite.ActivationFunctionType,
	build func(ops.ActivationType) ops.Attr,
) ParserFunc {
	return func(ctx *Context, op *tflite.OperatorT, _ *Graph) (ops.Attr, error) {
		if err := checkArity(op, 2, 2, 1, 1); err != nil {
			return nil, err
		}
		opts, ok := options[T](op)
		if !ok {
			return nil, status.New(status.MissingAttribute, "%s options absent", ctx.Op())
		}
		act, err := fusedActivation(fused(opts))
		if err != nil {
			return nil, err
		}

		for _, in := range op.Inputs {
			if err := ctx.AddInput(in, ctx.Format()); err != nil {
				return nil, err
			}
		}
		if err := ctx.AddOutput(op.Outputs[0], ctx.Format()); err != nil {
			return nil, err
		}
		return build(act), nil
	}
}
