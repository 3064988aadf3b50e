package converter

import (
	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// registerActivations adds activation operators to the registry.
func registerActivations(r *Registry) error {
	return register(r, map[string]ParserFunc{
		"Softmax":  parseSoftmax,
		"Relu":     activationParser(ops.Relu),
		"Relu6":    activationParser(ops.Relu6),
		"Logistic": activationParser(ops.Sigmoid),
		"Tanh":     activationParser(ops.Tanh),
	})
}

// parseSoftmax normalises over the last axis.
func parseSoftmax(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	if err := checkArity(op, 1, 1, 1, 1); err != nil {
		return nil, err
	}
	if _, ok := options[*tflite.SoftmaxOptionsT](op); !ok {
		return nil, status.New(status.MissingAttribute, "SoftmaxOptions absent")
	}
	rank, err := g.Rank(op.Inputs[0])
	if err != nil {
		return nil, err
	}
	axis := -1
	if rank > 0 {
		if axis, err = ops.NormalizeAxis(-1, rank); err != nil {
			return nil, err
		}
	}

	if err := ctx.AddInput(op.Inputs[0], ctx.Format()); err != nil {
		return nil, err
	}
	if err := ctx.AddOutput(op.Outputs[0], ctx.Format()); err != nil {
		return nil, err
	}
	return &ops.SoftMax{Axis: int32(axis)}, nil
}

func activationParser(kind ops.ActivationType) ParserFunc {
	return func(ctx *Context, op *tflite.OperatorT, _ *Graph) (ops.Attr, error) {
		if err := checkArity(op, 1, 1, 1, 1); err != nil {
			return nil, err
		}
		if err := ctx.AddInput(op.Inputs[0], ctx.Format()); err != nil {
			return nil, err
		}
		if err := ctx.AddOutput(op.Outputs[0], ctx.Format()); err != nil {
			return nil, err
		}
		return &ops.Activation{Kind: kind}, nil
	}
}
