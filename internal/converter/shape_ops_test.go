package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// splitVFixture builds SPLIT_V over a [1,4,4,6] input with the given sizes,
// axis and declared split count.
func splitVFixture(sizes []int32, axis int32, numSplits int32, outputs int) (*fixture, *tflite.OperatorT) {
	f := newFixture()
	in := f.float("input", 1, 4, 4, 6)
	sz := f.ints("size_splits", sizes...)
	ax := f.scalar("axis", axis)
	outs := make([]int32, outputs)
	for i := range outs {
		outs[i] = f.float("part", 1, 4, 4, 3)
	}
	op := f.op(tflite.BuiltinOperatorSPLIT_V, []int32{in, sz, ax}, outs, splitVOpts(numSplits))
	f.io([]int32{in}, outs)
	return f, op
}

func parseWith(t *testing.T, p ParserFunc, f *fixture, op *tflite.OperatorT) (*Context, ops.Attr, error) {
	t.Helper()
	ctx := newContext(f.graph(), ops.NCHW, 0)
	ctx.begin("test", 0)
	attr, err := p(ctx, op, f.graph())
	return ctx, attr, err
}

func requireCode(t *testing.T, err error, target error) *status.Error {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "got %v", err)
	var se *status.Error
	require.True(t, errors.As(err, &se))
	return se
}

func TestParseSplitV(t *testing.T) {
	f, op := splitVFixture([]int32{2, 4}, -1, 2, 2)

	ctx, attr, err := parseWith(t, parseSplitV, f, op)
	require.NoError(t, err)
	assert.Equal(t, &ops.Split{NumberSplit: 2, SizeSplits: []int32{2, 4}, SplitDim: 3}, attr)

	inputs, outputs := ctx.wired()
	assert.Equal(t, []int{0}, inputs, "size and axis operands are folded into the attributes")
	assert.Equal(t, []int{1, 2}, outputs)

	fresh := ctx.commit()
	require.Len(t, fresh, 3)
	for _, ft := range fresh {
		assert.Equal(t, ops.NHWC, ft.format)
	}
}

func TestParseSplitVAxis(t *testing.T) {
	tests := []struct {
		axis int32
		want int32
	}{
		{axis: 0, want: 0},
		{axis: 3, want: 3},
		{axis: -1, want: 3},
		{axis: -4, want: 0},
	}
	for _, tt := range tests {
		f, op := splitVFixture([]int32{3, 3}, tt.axis, 2, 2)
		_, attr, err := parseWith(t, parseSplitV, f, op)
		require.NoError(t, err, "axis %d", tt.axis)
		assert.Equal(t, tt.want, attr.(*ops.Split).SplitDim, "axis %d", tt.axis)
	}

	for _, axis := range []int32{-5, 4, 100} {
		f, op := splitVFixture([]int32{3, 3}, axis, 2, 2)
		_, attr, err := parseWith(t, parseSplitV, f, op)
		assert.Nil(t, attr)
		se := requireCode(t, err, status.ErrInvalidAxis)
		require.NotNil(t, se.Axis)
		assert.Equal(t, int(axis), *se.Axis)
		assert.Equal(t, 4, se.Rank)
	}
}

func TestParseSplitVRejects(t *testing.T) {
	t.Run("size count differs from num_splits", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 3, 3)
		ctx, _, err := parseWith(t, parseSplitV, f, op)
		se := requireCode(t, err, status.ErrInvalidAttributeData)
		assert.Equal(t, 1, se.Tensor)
		inputs, outputs := ctx.wired()
		assert.Empty(t, inputs)
		assert.Empty(t, outputs)
	})

	t.Run("output count differs from num_splits", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 3)
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrInvalidAttributeData)
	})

	t.Run("options absent", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.BuiltinOptions = nil
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrMissingAttribute)
	})

	t.Run("options of another operator", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.BuiltinOptions = &tflite.BuiltinOptionsT{
			Type:  tflite.BuiltinOptionsSplitOptions,
			Value: &tflite.SplitOptionsT{NumSplits: 2},
		}
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrMissingAttribute)
	})

	t.Run("missing operand", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.Inputs = op.Inputs[:2]
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrMissingAttribute)
	})

	t.Run("sizes are not constant", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.Inputs[1] = f.float("runtime_sizes", 2)
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrInvalidAttributeData)
	})

	t.Run("axis is not a scalar", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.Inputs[2] = f.ints("axes", 1, 2)
		_, _, err := parseWith(t, parseSplitV, f, op)
		requireCode(t, err, status.ErrInvalidAttributeData)
	})

	t.Run("operand index out of range", func(t *testing.T) {
		f, op := splitVFixture([]int32{2, 4}, 3, 2, 2)
		op.Outputs[1] = 42
		_, _, err := parseWith(t, parseSplitV, f, op)
		se := requireCode(t, err, status.ErrInvalidFormat)
		assert.Equal(t, 42, se.Tensor)
	})
}

func TestParseSplitVInt64Sizes(t *testing.T) {
	f, op := splitVFixture([]int32{0, 0}, 3, 2, 2)
	op.Inputs[1] = f.tensor("sizes64", tflite.TensorTypeINT64, []int32{2}, int64Data(1, 5))

	_, attr, err := parseWith(t, parseSplitV, f, op)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 5}, attr.(*ops.Split).SizeSplits)
}

func TestConstInt32s(t *testing.T) {
	f := newFixture()
	i32 := f.ints("i32", 7, -3)
	i64 := f.tensor("i64", tflite.TensorTypeINT64, []int32{1}, int64Data(1<<40))
	flt := f.tensor("f32", tflite.TensorTypeFLOAT32, []int32{1}, []byte{0, 0, 128, 63})
	ragged := f.tensor("ragged", tflite.TensorTypeINT32, []int32{1}, []byte{1, 2, 3})
	empty := f.float("runtime", 2)
	g := f.graph()

	vals, err := g.ConstInt32s(i32)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, -3}, vals)

	_, err = g.ConstInt32(i32)
	requireCode(t, err, status.ErrInvalidAttributeData)

	for _, idx := range []int32{i64, flt, ragged, empty} {
		_, err := g.ConstInt32s(idx)
		se := requireCode(t, err, status.ErrInvalidAttributeData)
		assert.Equal(t, int(idx), se.Tensor)
	}

	_, err = g.ConstInt32s(99)
	requireCode(t, err, status.ErrInvalidFormat)
}

func TestParseSplit(t *testing.T) {
	build := func(n int32, extent int32) (*fixture, *tflite.OperatorT) {
		f := newFixture()
		ax := f.scalar("axis", 1)
		in := f.float("input", 2, extent)
		outs := make([]int32, n)
		for i := range outs {
			outs[i] = f.float("part", 2, extent/n)
		}
		op := f.op(tflite.BuiltinOperatorSPLIT, []int32{ax, in}, outs, &tflite.BuiltinOptionsT{
			Type:  tflite.BuiltinOptionsSplitOptions,
			Value: &tflite.SplitOptionsT{NumSplits: n},
		})
		return f, op
	}

	f, op := build(3, 6)
	ctx, attr, err := parseWith(t, parseSplit, f, op)
	require.NoError(t, err)
	assert.Equal(t, &ops.Split{NumberSplit: 3, SizeSplits: []int32{2, 2, 2}, SplitDim: 1}, attr)
	inputs, outputs := ctx.wired()
	assert.Equal(t, []int{0}, inputs)
	assert.Equal(t, []int{1, 2, 3}, outputs)

	f, op = build(4, 6)
	_, _, err = parseWith(t, parseSplit, f, op)
	requireCode(t, err, status.ErrInvalidAttributeData)

	f, op = build(2, 6)
	op.BuiltinOptions.Value.(*tflite.SplitOptionsT).NumSplits = 0
	_, _, err = parseWith(t, parseSplit, f, op)
	requireCode(t, err, status.ErrInvalidAttributeData)
}

func TestParseConcatenation(t *testing.T) {
	build := func(axis int32, act tflite.ActivationFunctionType) (*fixture, *tflite.OperatorT) {
		f := newFixture()
		a := f.float("a", 1, 2, 2, 3)
		b := f.float("b", 1, 2, 2, 5)
		out := f.float("out", 1, 2, 2, 8)
		op := f.op(tflite.BuiltinOperatorCONCATENATION, []int32{a, b}, []int32{out}, &tflite.BuiltinOptionsT{
			Type:  tflite.BuiltinOptionsConcatenationOptions,
			Value: &tflite.ConcatenationOptionsT{Axis: axis, FusedActivationFunction: act},
		})
		return f, op
	}

	f, op := build(-1, tflite.ActivationFunctionTypeNONE)
	ctx, attr, err := parseWith(t, parseConcatenation, f, op)
	require.NoError(t, err)
	assert.Equal(t, &ops.Concat{Axis: 3, N: 2}, attr)
	inputs, outputs := ctx.wired()
	assert.Equal(t, []int{0, 1}, inputs)
	assert.Equal(t, []int{2}, outputs)

	f, op = build(3, tflite.ActivationFunctionTypeRELU)
	_, _, err = parseWith(t, parseConcatenation, f, op)
	requireCode(t, err, status.ErrInvalidAttributeData)

	f, op = build(-9, tflite.ActivationFunctionTypeNONE)
	_, _, err = parseWith(t, parseConcatenation, f, op)
	requireCode(t, err, status.ErrInvalidAxis)
}

func TestParseReshape(t *testing.T) {
	t.Run("shape from options", func(t *testing.T) {
		f := newFixture()
		in := f.float("in", 2, 3, 4)
		out := f.float("out", 6, 4)
		op := f.op(tflite.BuiltinOperatorRESHAPE, []int32{in}, []int32{out}, &tflite.BuiltinOptionsT{
			Type:  tflite.BuiltinOptionsReshapeOptions,
			Value: &tflite.ReshapeOptionsT{NewShape: []int32{-1, 4}},
		})
		_, attr, err := parseWith(t, parseReshape, f, op)
		require.NoError(t, err)
		assert.Equal(t, &ops.Reshape{Format: ops.NCHW, Shape: []int64{-1, 4}}, attr)
	})

	t.Run("shape from constant input", func(t *testing.T) {
		f := newFixture()
		in := f.float("in", 2, 3, 4)
		shape := f.ints("shape", 24)
		out := f.float("out", 24)
		op := f.op(tflite.BuiltinOperatorRESHAPE, []int32{in, shape}, []int32{out}, nil)
		ctx, attr, err := parseWith(t, parseReshape, f, op)
		require.NoError(t, err)
		assert.Equal(t, []int64{24}, attr.(*ops.Reshape).Shape)
		inputs, _ := ctx.wired()
		assert.Equal(t, []int{0}, inputs)
	})

	t.Run("no shape", func(t *testing.T) {
		f := newFixture()
		in := f.float("in", 2, 3, 4)
		out := f.float("out", 24)
		op := f.op(tflite.BuiltinOperatorRESHAPE, []int32{in}, []int32{out}, nil)
		_, _, err := parseWith(t, parseReshape, f, op)
		requireCode(t, err, status.ErrMissingAttribute)
	})

	t.Run("two inferred dimensions", func(t *testing.T) {
		f := newFixture()
		in := f.float("in", 2, 3, 4)
		out := f.float("out", 6, 4)
		op := f.op(tflite.BuiltinOperatorRESHAPE, []int32{in}, []int32{out}, &tflite.BuiltinOptionsT{
			Type:  tflite.BuiltinOptionsReshapeOptions,
			Value: &tflite.ReshapeOptionsT{NewShape: []int32{-1, -1}},
		})
		_, _, err := parseWith(t, parseReshape, f, op)
		requireCode(t, err, status.ErrInvalidAttributeData)
	})
}
