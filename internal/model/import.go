package model

import (
	log "github.com/sirupsen/logrus"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/schema"
	"github.com/born-ml/graphlite/internal/status"
)

// DefaultMaxModelSize is the largest model Import accepts by default.
const DefaultMaxModelSize = 2 << 30

// ImportOptions configures Import.
type ImportOptions struct {
	// MaxModelSize bounds the owned copy. Larger inputs fail with OutOfMemory.
	MaxModelSize int

	// Logger receives import diagnostics (default: the standard logger).
	Logger log.FieldLogger
}

// DefaultImportOptions returns the default import settings.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		MaxModelSize: DefaultMaxModelSize,
		Logger:       log.StandardLogger(),
	}
}

// Import validates data and reconstructs the Model it encodes. The Model
// owns a private copy of data; the caller may reuse data afterwards.
//
// Import is all-or-nothing: on error no Model is returned.
func Import(data []byte, opts ...ImportOptions) (*Model, error) {
	opt := DefaultImportOptions()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.Logger == nil {
			opt.Logger = log.StandardLogger()
		}
		if opt.MaxModelSize <= 0 {
			opt.MaxModelSize = DefaultMaxModelSize
		}
	}

	m, err := importModel(data, opt)
	if err != nil {
		opt.Logger.WithError(err).WithField("size", len(data)).Debug("model import failed")
		return nil, err
	}
	opt.Logger.WithFields(log.Fields{
		"model_id":  m.ID(),
		"name":      m.Name(),
		"tensors":   m.NumTensors(),
		"nodes":     m.NumNodes(),
		"subgraphs": m.NumSubgraphs(),
	}).Debug("model imported")
	return m, nil
}

func importModel(data []byte, opt ImportOptions) (*Model, error) {
	if len(data) == 0 {
		return nil, status.New(status.NullInput, "no model data")
	}
	if err := schema.Verify(data); err != nil {
		return nil, status.Wrap(status.InvalidFormat, err, "model verification failed")
	}
	if len(data) > opt.MaxModelSize {
		return nil, status.New(status.OutOfMemory, "model of %d bytes exceeds the %d byte limit",
			len(data), opt.MaxModelSize)
	}

	buf := copyBuffer(data)
	root := schema.GetRootAsMetaGraph(buf.data, 0)

	b := newImportBuilder(buf)
	b.name = string(root.Name())
	b.version = string(root.Version())
	b.SetFmkType(ops.FmkType(root.FmkType()))

	var t schema.Tensor
	for i := 0; i < root.AllTensorsLength(); i++ {
		root.AllTensors(&t, i)
		b.addTensorView(decodeTensor(&t))
	}

	var n schema.CNode
	for i := 0; i < root.NodesLength(); i++ {
		root.Nodes(&n, i)
		name := string(n.Name())
		attr, err := schema.DecodePrimitive(n.Primitive(nil))
		if err != nil {
			return nil, status.Wrap(status.InvalidFormat, err, "node %d", i).WithOp(name)
		}
		spec := NodeSpec{
			Name:    name,
			Inputs:  indices(n.InputIndexLength(), n.InputIndex),
			Outputs: indices(n.OutputIndexLength(), n.OutputIndex),
			Attr:    attr,
		}
		if _, err := b.AddNode(spec); err != nil {
			return nil, err
		}
	}

	b.SetGraphIO(
		indices(root.InputIndexLength(), root.InputIndex),
		indices(root.OutputIndexLength(), root.OutputIndex),
	)

	if root.HasSubGraph() {
		if root.SubGraphLength() == 0 {
			return nil, status.New(status.SubgraphAssemblyFailure, "subgraph table is present but empty")
		}
		var sg schema.SubGraph
		for i := 0; i < root.SubGraphLength(); i++ {
			root.SubGraph(&sg, i)
			b.AddSubgraph(SubgraphSpec{
				Name:    string(sg.Name()),
				Nodes:   indices(sg.NodeIndicesLength(), sg.NodeIndices),
				Inputs:  indices(sg.InputIndicesLength(), sg.InputIndices),
				Outputs: indices(sg.OutputIndicesLength(), sg.OutputIndices),
				Tensors: indices(sg.TensorIndicesLength(), sg.TensorIndices),
			})
		}
	}
	return b.Build()
}

func decodeTensor(t *schema.Tensor) Tensor {
	shape := make([]int32, t.DimsLength())
	for i := range shape {
		shape[i] = t.Dims(i)
	}
	out := Tensor{
		Name:     string(t.Name()),
		Shape:    shape,
		DataType: ops.DataType(t.DataType()),
		Format:   ops.Format(t.Format()),
		Category: ops.TensorCategory(t.Category()),
	}
	if off, n, ok := t.DataRange(); ok && n > 0 {
		out.Data = View{Offset: off, Length: n}
	}
	return out
}

// indices copies a [uint] vector out of the buffer.
func indices(n int, at func(int) uint32) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(at(i))
	}
	return out
}
