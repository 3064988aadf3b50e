package schema

import (
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlite/internal/ops"
)

func TestPrimitiveCodec(t *testing.T) {
	attrs := []ops.Attr{
		&ops.Split{NumberSplit: 3, SizeSplits: []int32{1, 2, -1}, SplitDim: 2},
		&ops.Concat{Axis: 1, N: 4},
		&ops.SoftMax{Axis: -1},
		&ops.Reshape{Format: ops.NHWC, Shape: []int64{1, -1, 64}},
		&ops.Add{Activation: ops.Relu6},
		&ops.Sub{},
		&ops.Mul{Activation: ops.Tanh},
		&ops.Activation{Kind: ops.Sigmoid, Alpha: 0.5},
	}
	for _, want := range attrs {
		t.Run(want.Type().String(), func(t *testing.T) {
			b := flatbuffers.NewBuilder(0)
			off, err := EncodePrimitive(b, want)
			require.NoError(t, err)
			b.Finish(off)

			buf := b.FinishedBytes()
			var p Primitive
			p.Init(buf, flatbuffers.GetUOffsetT(buf))
			assert.Equal(t, PrimitiveType(want.Type()), p.ValueType())

			got, err := DecodePrimitive(&p)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("attr mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodePrimitiveRejectsNil(t *testing.T) {
	_, err := EncodePrimitive(flatbuffers.NewBuilder(0), nil)
	assert.Error(t, err)
}

// buildGraph writes a MetaGraph with one tensor and one node whose primitive
// is produced by prim. A zero prim offset leaves the primitive out.
func buildGraph(prim func(b *flatbuffers.Builder) flatbuffers.UOffsetT) []byte {
	b := flatbuffers.NewBuilder(0)

	name := b.CreateString("t0")
	TensorStart(b)
	TensorAddName(b, name)
	TensorAddDataType(b, int32(ops.Float32))
	tensor := TensorEnd(b)

	p := prim(b)
	in := Uint32Vector(b, []int{0})
	CNodeStart(b)
	if p != 0 {
		CNodeAddPrimitive(b, p)
	}
	CNodeAddInputIndex(b, in)
	node := CNodeEnd(b)

	MetaGraphStartAllTensorsVector(b, 1)
	b.PrependUOffsetT(tensor)
	tensors := b.EndVector(1)
	MetaGraphStartNodesVector(b, 1)
	b.PrependUOffsetT(node)
	nodes := b.EndVector(1)

	MetaGraphStart(b)
	MetaGraphAddNodes(b, nodes)
	MetaGraphAddAllTensors(b, tensors)
	FinishMetaGraphBuffer(b, MetaGraphEnd(b))
	return b.FinishedBytes()
}

func TestVerify(t *testing.T) {
	softmax := func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		off, _ := EncodePrimitive(b, &ops.SoftMax{Axis: 0})
		return off
	}

	t.Run("well formed", func(t *testing.T) {
		buf := buildGraph(softmax)
		require.NoError(t, Verify(buf))
		assert.True(t, Valid(buf))

		root := GetRootAsMetaGraph(buf, 0)
		assert.False(t, root.HasSubGraph())
		assert.Equal(t, 1, root.NodesLength())
	})

	t.Run("missing primitive", func(t *testing.T) {
		buf := buildGraph(func(*flatbuffers.Builder) flatbuffers.UOffsetT { return 0 })
		assert.Error(t, Verify(buf))
	})

	t.Run("unknown union tag", func(t *testing.T) {
		buf := buildGraph(func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
			SoftMaxStart(b)
			value := SoftMaxEnd(b)
			PrimitiveStart(b)
			PrimitiveAddValueType(b, PrimitiveType(200))
			PrimitiveAddValue(b, value)
			return PrimitiveEnd(b)
		})
		assert.Error(t, Verify(buf))
	})

	t.Run("untyped union value", func(t *testing.T) {
		buf := buildGraph(untypedPrimitive)
		assert.Error(t, Verify(buf))

		var n CNode
		GetRootAsMetaGraph(buf, 0).Nodes(&n, 0)
		corruptValue(n.Primitive(nil))
		assert.Error(t, Verify(buf))
	})

	t.Run("wrong identifier", func(t *testing.T) {
		buf := buildGraph(softmax)
		copy(buf[4:8], "TFL3")
		assert.False(t, Valid(buf))
	})

	t.Run("short", func(t *testing.T) {
		assert.False(t, Valid([]byte{1, 2, 3}))
		assert.False(t, Valid(nil))
	})
}

// untypedPrimitive writes a primitive with a value but no union type.
func untypedPrimitive(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	SoftMaxStart(b)
	value := SoftMaxEnd(b)
	PrimitiveStart(b)
	PrimitiveAddValue(b, value)
	return PrimitiveEnd(b)
}

// corruptValue points the value slot of p far outside its buffer.
func corruptValue(p *Primitive) {
	o := flatbuffers.UOffsetT(p._tab.Offset(6))
	flatbuffers.WriteUint32(p._tab.Bytes[p._tab.Pos+o:], 0x7ffffff0)
}

func TestDecodePrimitiveWithoutType(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	b.Finish(untypedPrimitive(b))
	buf := b.FinishedBytes()

	var p Primitive
	p.Init(buf, flatbuffers.GetUOffsetT(buf))
	corruptValue(&p)
	require.Equal(t, PrimitiveTypeNONE, p.ValueType())

	assert.NotPanics(t, func() {
		_, err := DecodePrimitive(&p)
		assert.Error(t, err)
	})
}

func TestTensorDataRange(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	data := b.CreateByteVector([]byte{9, 8, 7})
	TensorStart(b)
	TensorAddData(b, data)
	b.Finish(TensorEnd(b))
	buf := b.FinishedBytes()

	var tensor Tensor
	tensor.Init(buf, flatbuffers.GetUOffsetT(buf))
	off, n, ok := tensor.DataRange()
	require.True(t, ok)
	assert.Equal(t, []byte{9, 8, 7}, buf[off:off+n])
	assert.Equal(t, []byte{9, 8, 7}, tensor.DataBytes())
}
