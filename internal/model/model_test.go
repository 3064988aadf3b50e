package model

import (
	"bytes"
	"errors"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/schema"
	"github.com/born-ml/graphlite/internal/status"
)

var biasData = []byte{0, 0, 128, 63, 0, 0, 0, 64}

// splitAddModel builds input -> Split -> (a, b); a + bias -> sum.
func splitAddModel(t testing.TB) *Model {
	t.Helper()
	b := NewBuilder("split_add", "1.0")
	b.SetFmkType(ops.FmkTFLite)
	in := b.AddTensor(TensorSpec{Name: "input", Shape: []int32{1, 4, 4, 6}, DataType: ops.Float32,
		Format: ops.NHWC, Category: ops.CategoryGraphInput})
	a := b.AddTensor(TensorSpec{Name: "a", Shape: []int32{1, 4, 4, 2}, DataType: ops.Float32, Format: ops.NHWC})
	rest := b.AddTensor(TensorSpec{Name: "b", Shape: []int32{1, 4, 4, 4}, DataType: ops.Float32, Format: ops.NHWC})
	bias := b.AddTensor(TensorSpec{Name: "bias", Shape: []int32{2}, DataType: ops.Float32,
		Category: ops.CategoryConst, Data: biasData})
	sum := b.AddTensor(TensorSpec{Name: "sum", Shape: []int32{1, 4, 4, 2}, DataType: ops.Float32, Format: ops.NHWC})

	_, err := b.AddNode(NodeSpec{Name: "split", Inputs: []int{in}, Outputs: []int{a, rest},
		Attr: &ops.Split{NumberSplit: 2, SizeSplits: []int32{2, 4}, SplitDim: 3}})
	require.NoError(t, err)
	_, err = b.AddNode(NodeSpec{Name: "add", Inputs: []int{a, bias}, Outputs: []int{sum},
		Attr: &ops.Add{Activation: ops.Relu}})
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func marshal(t testing.TB, m *Model, opts ...MarshalOptions) []byte {
	t.Helper()
	data, err := Marshal(m, opts...)
	require.NoError(t, err)
	require.NoError(t, schema.Verify(data))
	return data
}

func requireCode(t *testing.T, err error, target *status.Error) *status.Error {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "expected %v, got %v", target.Code, err)
	var se *status.Error
	require.True(t, errors.As(err, &se))
	return se
}

func TestImportRoundTrip(t *testing.T) {
	want := splitAddModel(t)
	data := marshal(t, want)

	got, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, "split_add", got.Name())
	assert.Equal(t, "1.0", got.Version())
	assert.Equal(t, ops.FmkTFLite, got.FmkType())
	assert.Equal(t, SourceImport, got.Source())

	ignoreView := cmpopts.IgnoreFields(Tensor{}, "Data")
	if diff := cmp.Diff(want.Tensors(), got.Tensors(), ignoreView); diff != "" {
		t.Errorf("tensors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Nodes(), got.Nodes()); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Subgraphs(), got.Subgraphs()); diff != "" {
		t.Errorf("subgraphs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want.Inputs(), got.Inputs())
	assert.Equal(t, want.Outputs(), got.Outputs())

	assert.Equal(t, biasData, got.TensorData(3))
	assert.Nil(t, got.TensorData(0))

	out, err := Export(got, nil)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestImportOwnsItsCopy(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	orig := bytes.Clone(data)

	m, err := Import(data)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0xff
	}

	out, err := Export(m, nil)
	require.NoError(t, err)
	assert.Equal(t, orig, out)
	assert.Equal(t, biasData, m.TensorData(3))
}

func TestImportRejectsNullInput(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		m, err := Import(data)
		assert.Nil(t, m)
		requireCode(t, err, status.ErrNullInput)
	}
}

func TestImportRejectsBadSignature(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	copy(data[4:8], "XXXX")

	m, err := Import(data)
	assert.Nil(t, m)
	requireCode(t, err, status.ErrInvalidFormat)
}

func TestImportRejectsTruncatedInput(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	for _, n := range []int{4, 8, 12, len(data) / 2} {
		m, err := Import(data[:n])
		assert.Nil(t, m, "length %d", n)
		requireCode(t, err, status.ErrInvalidFormat)
	}
}

func TestImportSizeLimit(t *testing.T) {
	data := marshal(t, splitAddModel(t))

	_, err := Import(data, ImportOptions{MaxModelSize: len(data) - 1})
	requireCode(t, err, status.ErrOutOfMemory)

	_, err = Import(data, ImportOptions{MaxModelSize: len(data)})
	assert.NoError(t, err)
}

func TestImportLegacyLayout(t *testing.T) {
	data := marshal(t, splitAddModel(t), MarshalOptions{LegacyLayout: true})

	require.False(t, schema.GetRootAsMetaGraph(data, 0).HasSubGraph())

	m, err := Import(data)
	require.NoError(t, err)
	require.Equal(t, 1, m.NumSubgraphs())

	sg := m.Subgraph(0)
	assert.Equal(t, "split_add", sg.Name)
	assert.Equal(t, []int{0, 1}, sg.Nodes)
	// Consumed but never produced, in order of first use.
	assert.Equal(t, []int{0, 3}, sg.Inputs)
	// Produced but never consumed, in order of production.
	assert.Equal(t, []int{2, 4}, sg.Outputs)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, sg.Tensors)
}

func TestImportExplicitSubgraphs(t *testing.T) {
	m := splitAddModel(t)
	m.subgraphs = []Subgraph{
		{Index: 0, Name: "head", Nodes: []int{0}, Inputs: []int{0}, Outputs: []int{1, 2}, Tensors: []int{0, 1, 2}},
		{Index: 1, Name: "tail", Nodes: []int{1}, Inputs: []int{1, 3}, Outputs: []int{4}, Tensors: []int{1, 3, 4}},
	}

	got, err := Import(marshal(t, m))
	require.NoError(t, err)
	require.Equal(t, 2, got.NumSubgraphs())
	if diff := cmp.Diff(m.Subgraphs(), got.Subgraphs()); diff != "" {
		t.Errorf("subgraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestImportSubgraphAssemblyFailure(t *testing.T) {
	tests := []struct {
		name      string
		subgraphs []Subgraph
	}{
		{"node out of range", []Subgraph{{Nodes: []int{0, 7}}}},
		{"tensor out of range", []Subgraph{{Nodes: []int{0}, Inputs: []int{42}}}},
		{"duplicate node", []Subgraph{{Nodes: []int{1, 1}}}},
		{"second descriptor bad", []Subgraph{{Nodes: []int{0}}, {Nodes: []int{1}, Outputs: []int{99}}}},
		{"empty table", []Subgraph{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := splitAddModel(t)
			m.subgraphs = tt.subgraphs

			got, err := Import(marshal(t, m))
			assert.Nil(t, got)
			requireCode(t, err, status.ErrSubgraphAssemblyFailure)
		})
	}
}

func TestImportRejectsBadNodeIndex(t *testing.T) {
	m := splitAddModel(t)
	m.nodes[1].Inputs = []int{0, 99}

	_, err := Import(marshal(t, m, MarshalOptions{LegacyLayout: true}))
	se := requireCode(t, err, status.ErrInvalidFormat)
	assert.Equal(t, 99, se.Tensor)
	assert.Equal(t, "add", se.Op)
}

func TestImportRejectsInvalidAttributes(t *testing.T) {
	m := splitAddModel(t)
	m.nodes[0].Attr = &ops.Split{NumberSplit: 3, SizeSplits: []int32{2, 4}, SplitDim: 3}

	_, err := Import(marshal(t, m))
	requireCode(t, err, status.ErrInvalidFormat)
	assert.True(t, errors.Is(err, status.ErrInvalidAttributeData))
}

func TestImportRejectsUntypedPrimitive(t *testing.T) {
	data := marshal(t, splitAddModel(t))

	var n schema.CNode
	schema.GetRootAsMetaGraph(data, 0).Nodes(&n, 0)
	tab := n.Primitive(nil).Table()
	data[tab.Pos+flatbuffers.UOffsetT(tab.Offset(4))] = byte(schema.PrimitiveTypeNONE)
	value := tab.Pos + flatbuffers.UOffsetT(tab.Offset(6))
	flatbuffers.WriteUint32(data[value:], 0x7ffffff0)

	assert.NotPanics(t, func() {
		_, err := Import(data)
		requireCode(t, err, status.ErrInvalidFormat)
	})
}

// FuzzImport mutates valid containers; Import must fail cleanly or yield a
// model that exports its input unchanged.
func FuzzImport(f *testing.F) {
	f.Add(marshal(f, splitAddModel(f)))
	f.Add(marshal(f, splitAddModel(f), MarshalOptions{LegacyLayout: true}))

	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := Import(data)
		if err != nil {
			var se *status.Error
			require.True(t, errors.As(err, &se), "unclassified error: %v", err)
			return
		}
		out, err := Export(m, nil)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	})
}

func TestExport(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	m, err := Import(data)
	require.NoError(t, err)
	require.Equal(t, len(data), ExportSize(m))

	t.Run("nil destination allocates", func(t *testing.T) {
		out, err := Export(m, nil)
		require.NoError(t, err)
		assert.Len(t, out, len(data))
		assert.Equal(t, data, out)
	})

	t.Run("larger destination", func(t *testing.T) {
		dst := make([]byte, len(data)+16)
		out, err := Export(m, dst)
		require.NoError(t, err)
		assert.Len(t, out, len(data))
		assert.Equal(t, data, dst[:len(data)])
	})

	t.Run("short destination untouched", func(t *testing.T) {
		dst := bytes.Repeat([]byte{0xaa}, len(data)-1)
		out, err := Export(m, dst)
		assert.Nil(t, out)
		requireCode(t, err, status.ErrBufferTooSmall)
		assert.Equal(t, bytes.Repeat([]byte{0xaa}, len(data)-1), dst)
	})

	t.Run("idempotent", func(t *testing.T) {
		a, err := Export(m, nil)
		require.NoError(t, err)
		b, err := Export(m, nil)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestExportRejects(t *testing.T) {
	_, err := Export(nil, nil)
	requireCode(t, err, status.ErrNullInput)

	converted := splitAddModel(t)
	assert.False(t, converted.Exportable())
	assert.Zero(t, ExportSize(converted))
	_, err = Export(converted, make([]byte, 1<<16))
	requireCode(t, err, status.ErrNotExportable)
}

func TestMarshalIsStable(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	m, err := Import(data)
	require.NoError(t, err)

	again := marshal(t, m)
	assert.Equal(t, data, again)
}

func TestDigest(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	m1, err := Import(data)
	require.NoError(t, err)
	m2, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, blake3.Sum256(data), m1.Digest())
	assert.Equal(t, m1.Digest(), m2.Digest())
	assert.NotEqual(t, m1.ID(), m2.ID())
}

func TestAccessorsReturnCopies(t *testing.T) {
	m, err := Import(marshal(t, splitAddModel(t)))
	require.NoError(t, err)

	tensor := m.Tensor(0)
	tensor.Shape[0] = 99
	node := m.Node(0)
	node.Inputs[0] = 99
	ins := m.Inputs()
	ins[0] = 99

	assert.Equal(t, int32(1), m.Tensor(0).Shape[0])
	assert.Equal(t, 0, m.Node(0).Inputs[0])
	assert.Equal(t, 0, m.Inputs()[0])
}

func TestConcurrentReaders(t *testing.T) {
	data := marshal(t, splitAddModel(t))
	m, err := Import(data)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				out, err := Export(m, nil)
				if err != nil {
					return err
				}
				if !bytes.Equal(out, data) {
					return errors.New("export mismatch")
				}
				if !bytes.Equal(m.TensorData(3), biasData) {
					return errors.New("tensor data mismatch")
				}
				_ = m.Subgraphs()
				_ = m.Nodes()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestBuilderRejectsBadNodes(t *testing.T) {
	b := NewBuilder("bad", "")
	in := b.AddTensor(TensorSpec{Name: "in", Shape: []int32{2, 3}})

	_, err := b.AddNode(NodeSpec{Name: "nil attr", Inputs: []int{in}})
	requireCode(t, err, status.ErrInvalidFormat)

	_, err = b.AddNode(NodeSpec{Name: "oob", Inputs: []int{in}, Outputs: []int{5}, Attr: &ops.SoftMax{Axis: 1}})
	se := requireCode(t, err, status.ErrInvalidFormat)
	assert.Equal(t, 5, se.Tensor)

	_, err = b.AddNode(NodeSpec{Name: "axis", Inputs: []int{in}, Outputs: []int{in}, Attr: &ops.SoftMax{Axis: 2}})
	requireCode(t, err, status.ErrInvalidAxis)

	assert.Zero(t, b.NumNodes())
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder("once", "")
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.Error(t, err)
}
