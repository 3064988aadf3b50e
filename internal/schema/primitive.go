package schema

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/born-ml/graphlite/internal/ops"
)

// EncodePrimitive writes attr as a Primitive table and returns its offset.
// Must be called while no other table is being built.
func EncodePrimitive(b *flatbuffers.Builder, attr ops.Attr) (flatbuffers.UOffsetT, error) {
	if attr == nil {
		return 0, fmt.Errorf("nil attribute payload")
	}

	var value flatbuffers.UOffsetT
	switch a := attr.(type) {
	case *ops.Split:
		sizes := Int32Vector(b, a.SizeSplits)
		SplitStart(b)
		SplitAddNumberSplit(b, a.NumberSplit)
		SplitAddSizeSplits(b, sizes)
		SplitAddSplitDim(b, a.SplitDim)
		value = SplitEnd(b)
	case *ops.Concat:
		ConcatStart(b)
		ConcatAddAxis(b, a.Axis)
		ConcatAddN(b, a.N)
		value = ConcatEnd(b)
	case *ops.SoftMax:
		SoftMaxStart(b)
		SoftMaxAddAxis(b, a.Axis)
		value = SoftMaxEnd(b)
	case *ops.Reshape:
		ReshapeStartShapeVector(b, len(a.Shape))
		for i := len(a.Shape) - 1; i >= 0; i-- {
			b.PrependInt64(a.Shape[i])
		}
		shape := b.EndVector(len(a.Shape))
		ReshapeStart(b)
		ReshapeAddFormat(b, int32(a.Format))
		ReshapeAddShape(b, shape)
		value = ReshapeEnd(b)
	case *ops.Add:
		AddStart(b)
		AddAddActivationType(b, int8(a.Activation))
		value = AddEnd(b)
	case *ops.Sub:
		SubStart(b)
		SubAddActivationType(b, int8(a.Activation))
		value = SubEnd(b)
	case *ops.Mul:
		MulStart(b)
		MulAddActivationType(b, int8(a.Activation))
		value = MulEnd(b)
	case *ops.Activation:
		ActivationStart(b)
		ActivationAddType(b, int8(a.Kind))
		ActivationAddAlpha(b, a.Alpha)
		value = ActivationEnd(b)
	default:
		return 0, fmt.Errorf("unsupported attribute payload %T", attr)
	}

	PrimitiveStart(b)
	PrimitiveAddValueType(b, PrimitiveType(attr.Type()))
	PrimitiveAddValue(b, value)
	return PrimitiveEnd(b), nil
}

// DecodePrimitive reads the attribute payload of p into its canonical form.
// The result never aliases the buffer.
func DecodePrimitive(p *Primitive) (ops.Attr, error) {
	if p == nil {
		return nil, fmt.Errorf("node has no primitive")
	}
	if p.ValueType() == PrimitiveTypeNONE {
		return nil, fmt.Errorf("primitive has no attribute type")
	}
	var tab flatbuffers.Table
	if !p.Value(&tab) {
		return nil, fmt.Errorf("primitive %s has no value", p.ValueType())
	}

	switch p.ValueType() {
	case PrimitiveTypeSplit:
		var t Split
		t.Init(tab.Bytes, tab.Pos)
		sizes := make([]int32, t.SizeSplitsLength())
		for i := range sizes {
			sizes[i] = t.SizeSplits(i)
		}
		return &ops.Split{NumberSplit: t.NumberSplit(), SizeSplits: sizes, SplitDim: t.SplitDim()}, nil
	case PrimitiveTypeConcat:
		var t Concat
		t.Init(tab.Bytes, tab.Pos)
		return &ops.Concat{Axis: t.Axis(), N: t.N()}, nil
	case PrimitiveTypeSoftMax:
		var t SoftMax
		t.Init(tab.Bytes, tab.Pos)
		return &ops.SoftMax{Axis: t.Axis()}, nil
	case PrimitiveTypeReshape:
		var t Reshape
		t.Init(tab.Bytes, tab.Pos)
		shape := make([]int64, t.ShapeLength())
		for i := range shape {
			shape[i] = t.Shape(i)
		}
		return &ops.Reshape{Format: ops.Format(t.Format()), Shape: shape}, nil
	case PrimitiveTypeAdd:
		var t Add
		t.Init(tab.Bytes, tab.Pos)
		return &ops.Add{Activation: ops.ActivationType(t.ActivationType())}, nil
	case PrimitiveTypeSub:
		var t Sub
		t.Init(tab.Bytes, tab.Pos)
		return &ops.Sub{Activation: ops.ActivationType(t.ActivationType())}, nil
	case PrimitiveTypeMul:
		var t Mul
		t.Init(tab.Bytes, tab.Pos)
		return &ops.Mul{Activation: ops.ActivationType(t.ActivationType())}, nil
	case PrimitiveTypeActivation:
		var t Activation
		t.Init(tab.Bytes, tab.Pos)
		return &ops.Activation{Kind: ops.ActivationType(t.Type()), Alpha: t.Alpha()}, nil
	default:
		return nil, fmt.Errorf("unknown primitive type %s", p.ValueType())
	}
}

// Uint32Vector writes indices as a [uint] vector and returns its offset.
func Uint32Vector(b *flatbuffers.Builder, indices []int) flatbuffers.UOffsetT {
	b.StartVector(4, len(indices), 4)
	for i := len(indices) - 1; i >= 0; i-- {
		b.PrependUint32(uint32(indices[i]))
	}
	return b.EndVector(len(indices))
}

// Int32Vector writes vals as an [int] vector and returns its offset.
func Int32Vector(b *flatbuffers.Builder, vals []int32) flatbuffers.UOffsetT {
	b.StartVector(4, len(vals), 4)
	for i := len(vals) - 1; i >= 0; i-- {
		b.PrependInt32(vals[i])
	}
	return b.EndVector(len(vals))
}
