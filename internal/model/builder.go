package model

import (
	"slices"

	"github.com/google/uuid"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
)

// TensorSpec declares a tensor for Builder.AddTensor.
type TensorSpec struct {
	Name     string
	Shape    []int32
	DataType ops.DataType
	Format   ops.Format
	Category ops.TensorCategory
	Data     []byte // Copied into the Model's arena.
}

// NodeSpec declares a node for Builder.AddNode.
type NodeSpec struct {
	Name    string
	Inputs  []int
	Outputs []int
	Attr    ops.Attr
}

// SubgraphSpec declares an explicit subgraph for Builder.AddSubgraph.
// When Tensors is empty the member tensors are derived from the nodes.
type SubgraphSpec struct {
	Name    string
	Nodes   []int
	Inputs  []int
	Outputs []int
	Tensors []int
}

// Builder grows the tables of a Model in append order. A Builder is used by
// one goroutine and produces at most one Model; nothing it holds is visible
// to callers until Build succeeds.
type Builder struct {
	name    string
	version string
	fmk     ops.FmkType

	tensors  []Tensor
	nodes    []Node
	explicit []SubgraphSpec
	inputs   []int
	outputs  []int

	arena  []byte
	buf    *Buffer // Set for imported models; tensor views point into it.
	source Source
	built  bool
}

// NewBuilder returns a Builder for a converted model. Constant tensor data
// is accumulated in a private arena.
func NewBuilder(name, version string) *Builder {
	return &Builder{name: name, version: version, source: SourceConversion}
}

// newImportBuilder returns a Builder whose tensors reference buf.
func newImportBuilder(buf *Buffer) *Builder {
	return &Builder{buf: buf, source: SourceImport}
}

// SetFmkType records the originating framework.
func (b *Builder) SetFmkType(fmk ops.FmkType) {
	b.fmk = fmk
}

// SetGraphIO records the graph-level input and output tensors.
func (b *Builder) SetGraphIO(inputs, outputs []int) {
	b.inputs = slices.Clone(inputs)
	b.outputs = slices.Clone(outputs)
}

// NumTensors returns the number of tensors added so far.
func (b *Builder) NumTensors() int {
	return len(b.tensors)
}

// NumNodes returns the number of nodes added so far.
func (b *Builder) NumNodes() int {
	return len(b.nodes)
}

// AddTensor appends a tensor and returns its index.
func (b *Builder) AddTensor(spec TensorSpec) int {
	t := Tensor{
		Index:    len(b.tensors),
		Name:     spec.Name,
		Shape:    slices.Clone(spec.Shape),
		DataType: spec.DataType,
		Format:   spec.Format,
		Category: spec.Category,
	}
	if len(spec.Data) > 0 {
		t.Data = View{Offset: len(b.arena), Length: len(spec.Data)}
		b.arena = append(b.arena, spec.Data...)
	}
	b.tensors = append(b.tensors, t)
	return t.Index
}

// addTensorView appends a tensor whose data already lives in b.buf.
func (b *Builder) addTensorView(t Tensor) int {
	t.Index = len(b.tensors)
	b.tensors = append(b.tensors, t)
	return t.Index
}

// AddNode appends a node and returns its index. Every tensor index must
// already exist and the attribute payload must be valid for the rank of the
// first input.
func (b *Builder) AddNode(spec NodeSpec) (int, error) {
	if spec.Attr == nil {
		return 0, status.New(status.InvalidFormat, "node %d has no attribute payload", len(b.nodes)).
			WithOp(spec.Name)
	}
	for _, idx := range spec.Inputs {
		if !b.validTensor(idx) {
			return 0, status.New(status.InvalidFormat, "node %d input out of range", len(b.nodes)).
				WithOp(spec.Name).WithTensor(idx)
		}
	}
	for _, idx := range spec.Outputs {
		if !b.validTensor(idx) {
			return 0, status.New(status.InvalidFormat, "node %d output out of range", len(b.nodes)).
				WithOp(spec.Name).WithTensor(idx)
		}
	}
	rank := -1
	if len(spec.Inputs) > 0 {
		if shape := b.tensors[spec.Inputs[0]].Shape; len(shape) > 0 {
			rank = len(shape)
		}
	}
	if err := spec.Attr.Validate(rank); err != nil {
		return 0, status.Wrap(status.InvalidFormat, err, "node %d attributes", len(b.nodes)).
			WithOp(spec.Name)
	}

	n := Node{
		Index:   len(b.nodes),
		Name:    spec.Name,
		Type:    spec.Attr.Type(),
		Inputs:  slices.Clone(spec.Inputs),
		Outputs: slices.Clone(spec.Outputs),
		Attr:    spec.Attr,
	}
	b.nodes = append(b.nodes, n)
	return n.Index, nil
}

// AddSubgraph declares an explicit subgraph. It is checked against the
// final tables by Build. Without any explicit subgraph Build infers a single
// one covering every node.
func (b *Builder) AddSubgraph(spec SubgraphSpec) {
	b.explicit = append(b.explicit, SubgraphSpec{
		Name:    spec.Name,
		Nodes:   slices.Clone(spec.Nodes),
		Inputs:  slices.Clone(spec.Inputs),
		Outputs: slices.Clone(spec.Outputs),
		Tensors: slices.Clone(spec.Tensors),
	})
}

// Build assembles the subgraphs and returns the finished Model. The Builder
// must not be used afterwards.
func (b *Builder) Build() (*Model, error) {
	if b.built {
		return nil, status.New(status.InvalidFormat, "builder already consumed")
	}

	var subgraphs []Subgraph
	if len(b.explicit) == 0 {
		subgraphs = []Subgraph{inferSubgraph(b.name, b.nodes)}
	} else {
		subgraphs = make([]Subgraph, 0, len(b.explicit))
		for i, spec := range b.explicit {
			sg, err := assembleSubgraph(i, spec, len(b.tensors), b.nodes)
			if err != nil {
				return nil, err
			}
			subgraphs = append(subgraphs, sg)
		}
	}

	inputs, outputs := b.inputs, b.outputs
	if len(inputs) == 0 && len(outputs) == 0 {
		inputs = slices.Clone(subgraphs[0].Inputs)
		outputs = slices.Clone(subgraphs[0].Outputs)
	}
	for _, idx := range slices.Concat(inputs, outputs) {
		if !b.validTensor(idx) {
			return nil, status.New(status.InvalidFormat, "graph boundary tensor out of range").WithTensor(idx)
		}
	}

	buf := b.buf
	if b.source == SourceConversion {
		buf = newBuffer(b.arena)
	}

	b.built = true
	m := &Model{
		id:        uuid.New(),
		name:      b.name,
		version:   b.version,
		fmk:       b.fmk,
		tensors:   b.tensors,
		nodes:     b.nodes,
		subgraphs: subgraphs,
		inputs:    inputs,
		outputs:   outputs,
		buf:       buf,
		source:    b.source,
	}
	b.tensors, b.nodes, b.explicit, b.arena, b.buf = nil, nil, nil, nil, nil
	return m, nil
}

func (b *Builder) validTensor(idx int) bool {
	return idx >= 0 && idx < len(b.tensors)
}
