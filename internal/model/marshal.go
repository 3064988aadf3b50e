package model

import (
	flatbuffers "github.com/google/flatbuffers/go"
	log "github.com/sirupsen/logrus"

	"github.com/born-ml/graphlite/internal/schema"
	"github.com/born-ml/graphlite/internal/status"
)

// MarshalOptions configures Marshal.
type MarshalOptions struct {
	// LegacyLayout omits the subgraph table. Readers then infer a single
	// subgraph from the node table, so only single-subgraph models survive
	// the round trip unchanged.
	LegacyLayout bool

	// Logger receives serializer diagnostics (default: the standard logger).
	Logger log.FieldLogger
}

// Marshal serializes m into the canonical container. The result passes
// schema.Verify and imports back into an equivalent Model.
func Marshal(m *Model, opts ...MarshalOptions) ([]byte, error) {
	var opt MarshalOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Logger == nil {
		opt.Logger = log.StandardLogger()
	}
	if m == nil {
		return nil, status.New(status.NullInput, "no model")
	}

	b := flatbuffers.NewBuilder(1024 + m.buf.Len())

	tensors := make([]flatbuffers.UOffsetT, len(m.tensors))
	for i := range m.tensors {
		tensors[i] = marshalTensor(b, m, i)
	}

	nodes := make([]flatbuffers.UOffsetT, len(m.nodes))
	for i := range m.nodes {
		off, err := marshalNode(b, &m.nodes[i])
		if err != nil {
			opt.Logger.WithError(err).WithField("model_id", m.id).Debug("marshal failed")
			return nil, err
		}
		nodes[i] = off
	}

	var subgraphs []flatbuffers.UOffsetT
	if !opt.LegacyLayout {
		subgraphs = make([]flatbuffers.UOffsetT, len(m.subgraphs))
		for i := range m.subgraphs {
			subgraphs[i] = marshalSubgraph(b, &m.subgraphs[i])
		}
	}

	name := optString(b, m.name)
	version := optString(b, m.version)
	inputs := schema.Uint32Vector(b, m.inputs)
	outputs := schema.Uint32Vector(b, m.outputs)
	tensorVec := offsetVector(b, tensors)
	nodeVec := offsetVector(b, nodes)
	var subgraphVec flatbuffers.UOffsetT
	if !opt.LegacyLayout {
		subgraphVec = offsetVector(b, subgraphs)
	}

	schema.MetaGraphStart(b)
	if name != 0 {
		schema.MetaGraphAddName(b, name)
	}
	if version != 0 {
		schema.MetaGraphAddVersion(b, version)
	}
	schema.MetaGraphAddFmkType(b, int32(m.fmk))
	schema.MetaGraphAddInputIndex(b, inputs)
	schema.MetaGraphAddOutputIndex(b, outputs)
	schema.MetaGraphAddNodes(b, nodeVec)
	schema.MetaGraphAddAllTensors(b, tensorVec)
	if !opt.LegacyLayout {
		schema.MetaGraphAddSubGraph(b, subgraphVec)
	}
	schema.FinishMetaGraphBuffer(b, schema.MetaGraphEnd(b))

	out := b.FinishedBytes()
	opt.Logger.WithFields(log.Fields{
		"model_id": m.id,
		"bytes":    len(out),
		"legacy":   opt.LegacyLayout,
	}).Debug("model marshalled")
	return out, nil
}

func marshalTensor(b *flatbuffers.Builder, m *Model, i int) flatbuffers.UOffsetT {
	t := &m.tensors[i]
	name := optString(b, t.Name)
	dims := schema.Int32Vector(b, t.Shape)
	var data flatbuffers.UOffsetT
	if raw := m.buf.resolve(t.Data); raw != nil {
		data = b.CreateByteVector(raw)
	}

	schema.TensorStart(b)
	if name != 0 {
		schema.TensorAddName(b, name)
	}
	schema.TensorAddCategory(b, int32(t.Category))
	schema.TensorAddDataType(b, int32(t.DataType))
	schema.TensorAddDims(b, dims)
	schema.TensorAddFormat(b, int32(t.Format))
	if data != 0 {
		schema.TensorAddData(b, data)
	}
	return schema.TensorEnd(b)
}

func marshalNode(b *flatbuffers.Builder, n *Node) (flatbuffers.UOffsetT, error) {
	prim, err := schema.EncodePrimitive(b, n.Attr)
	if err != nil {
		return 0, status.Wrap(status.InvalidAttributeData, err, "node %d", n.Index).WithOp(n.Name)
	}
	name := optString(b, n.Name)
	inputs := schema.Uint32Vector(b, n.Inputs)
	outputs := schema.Uint32Vector(b, n.Outputs)

	schema.CNodeStart(b)
	if name != 0 {
		schema.CNodeAddName(b, name)
	}
	schema.CNodeAddPrimitive(b, prim)
	schema.CNodeAddInputIndex(b, inputs)
	schema.CNodeAddOutputIndex(b, outputs)
	return schema.CNodeEnd(b), nil
}

func marshalSubgraph(b *flatbuffers.Builder, sg *Subgraph) flatbuffers.UOffsetT {
	name := optString(b, sg.Name)
	inputs := schema.Uint32Vector(b, sg.Inputs)
	outputs := schema.Uint32Vector(b, sg.Outputs)
	nodes := schema.Uint32Vector(b, sg.Nodes)
	tensors := schema.Uint32Vector(b, sg.Tensors)

	schema.SubGraphStart(b)
	if name != 0 {
		schema.SubGraphAddName(b, name)
	}
	schema.SubGraphAddInputIndices(b, inputs)
	schema.SubGraphAddOutputIndices(b, outputs)
	schema.SubGraphAddNodeIndices(b, nodes)
	schema.SubGraphAddTensorIndices(b, tensors)
	return schema.SubGraphEnd(b)
}

func optString(b *flatbuffers.Builder, s string) flatbuffers.UOffsetT {
	if s == "" {
		return 0
	}
	return b.CreateString(s)
}

func offsetVector(b *flatbuffers.Builder, offs []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(offs), 4)
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offs[i])
	}
	return b.EndVector(len(offs))
}
