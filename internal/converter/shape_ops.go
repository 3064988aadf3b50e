package converter

import (
	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// registerShapeOps adds shape manipulation operators to the registry.
func registerShapeOps(r *Registry) error {
	return register(r, map[string]ParserFunc{
		"SplitV":        parseSplitV,
		"Split":         parseSplit,
		"Concatenation": parseConcatenation,
		"Reshape":       parseReshape,
	})
}

// parseSplitV translates SPLIT_V(input, size_splits, axis). The split count
// comes from the options, the sizes and the axis from constant inputs.
func parseSplitV(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	if err := checkArity(op, 3, 3, 1, -1); err != nil {
		return nil, err
	}
	opts, ok := options[*tflite.SplitVOptionsT](op)
	if !ok {
		return nil, status.New(status.MissingAttribute, "SplitVOptions absent")
	}

	sizes, err := g.ConstInt32s(op.Inputs[1])
	if err != nil {
		return nil, err
	}
	if len(sizes) != int(opts.NumSplits) {
		return nil, status.New(status.InvalidAttributeData,
			"num_splits is %d but size_splits has %d entries", opts.NumSplits, len(sizes)).
			WithTensor(int(op.Inputs[1]))
	}

	axis, err := g.ConstInt32(op.Inputs[2])
	if err != nil {
		return nil, err
	}
	rank, err := g.Rank(op.Inputs[0])
	if err != nil {
		return nil, err
	}
	dim, err := ops.NormalizeAxis(int(axis), rank)
	if err != nil {
		return nil, err
	}
	if len(op.Outputs) != int(opts.NumSplits) {
		return nil, status.New(status.InvalidAttributeData,
			"num_splits is %d but the operator has %d outputs", opts.NumSplits, len(op.Outputs))
	}

	if err := ctx.AddInput(op.Inputs[0], ops.NHWC); err != nil {
		return nil, err
	}
	if err := addOutputs(ctx, op, ops.NHWC); err != nil {
		return nil, err
	}
	return &ops.Split{NumberSplit: opts.NumSplits, SizeSplits: sizes, SplitDim: int32(dim)}, nil
}

// parseSplit translates SPLIT(axis, input) into equal parts.
func parseSplit(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	if err := checkArity(op, 2, 2, 1, -1); err != nil {
		return nil, err
	}
	opts, ok := options[*tflite.SplitOptionsT](op)
	if !ok {
		return nil, status.New(status.MissingAttribute, "SplitOptions absent")
	}
	if opts.NumSplits <= 0 {
		return nil, status.New(status.InvalidAttributeData, "num_splits %d must be positive", opts.NumSplits)
	}

	axis, err := g.ConstInt32(op.Inputs[0])
	if err != nil {
		return nil, err
	}
	input, err := g.Tensor(op.Inputs[1])
	if err != nil {
		return nil, err
	}
	dim, err := ops.NormalizeAxis(int(axis), len(input.Shape))
	if err != nil {
		return nil, err
	}
	extent := input.Shape[dim]
	if extent <= 0 || extent%opts.NumSplits != 0 {
		return nil, status.New(status.InvalidAttributeData,
			"dimension %d of extent %d cannot be split into %d equal parts", dim, extent, opts.NumSplits).
			WithTensor(int(op.Inputs[1]))
	}
	sizes := make([]int32, opts.NumSplits)
	for i := range sizes {
		sizes[i] = extent / opts.NumSplits
	}

	if err := ctx.AddInput(op.Inputs[1], ops.NHWC); err != nil {
		return nil, err
	}
	if err := addOutputs(ctx, op, ops.NHWC); err != nil {
		return nil, err
	}
	return &ops.Split{NumberSplit: opts.NumSplits, SizeSplits: sizes, SplitDim: int32(dim)}, nil
}

func parseConcatenation(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	if err := checkArity(op, 1, -1, 1, 1); err != nil {
		return nil, err
	}
	opts, ok := options[*tflite.ConcatenationOptionsT](op)
	if !ok {
		return nil, status.New(status.MissingAttribute, "ConcatenationOptions absent")
	}
	if opts.FusedActivationFunction != tflite.ActivationFunctionTypeNONE {
		return nil, status.New(status.InvalidAttributeData, "fused activation %d is not supported on concatenation",
			opts.FusedActivationFunction)
	}
	rank, err := g.Rank(op.Inputs[0])
	if err != nil {
		return nil, err
	}
	axis, err := ops.NormalizeAxis(int(opts.Axis), rank)
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
	return &ops.Concat{Axis: int32(axis), N: int32(len(op.Inputs))}, nil
}

// parseReshape takes the target shape from the options when present and
// otherwise from the constant second input.
func parseReshape(ctx *Context, op *tflite.OperatorT, g *Graph) (ops.Attr, error) {
	if err := checkArity(op, 1, 2, 1, 1); err != nil {
		return nil, err
	}
	var shape []int32
	if opts, ok := options[*tflite.ReshapeOptionsT](op); ok && len(opts.NewShape) > 0 {
		shape = opts.NewShape
	} else if len(op.Inputs) == 2 {
		var err error
		if shape, err = g.ConstInt32s(op.Inputs[1]); err != nil {
			return nil, err
		}
	} else {
		return nil, status.New(status.MissingAttribute, "reshape has neither new_shape nor a shape input")
	}

	attr := &ops.Reshape{Format: ctx.Format(), Shape: make([]int64, len(shape))}
	for i, d := range shape {
		attr.Shape[i] = int64(d)
	}
	if err := attr.Validate(-1); err != nil {
		return nil, err
	}

	if err := ctx.AddInput(op.Inputs[0], ctx.Format()); err != nil {
		return nil, err
	}
	if err := ctx.AddOutput(op.Outputs[0], ctx.Format()); err != nil {
		return nil, err
	}
	return attr, nil
}
