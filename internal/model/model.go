package model

import (
	"slices"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/born-ml/graphlite/internal/ops"
)

// Source records how a Model was produced.
type Source int

// Model sources.
const (
	// SourceImport models own a verbatim copy of a model file.
	SourceImport Source = iota
	// SourceConversion models were assembled by the conversion pipeline and
	// own only an arena of constant tensor data.
	SourceConversion
)

func (s Source) String() string {
	if s == SourceImport {
		return "import"
	}
	return "conversion"
}

// Tensor describes one entry of the tensor table.
type Tensor struct {
	Index    int
	Name     string
	Shape    []int32
	DataType ops.DataType
	Format   ops.Format
	Category ops.TensorCategory
	Data     View // Embedded constant data, if any.
}

// Rank returns the number of dimensions.
func (t Tensor) Rank() int {
	return len(t.Shape)
}

// HasData reports whether the tensor embeds constant data.
func (t Tensor) HasData() bool {
	return t.Data.Valid()
}

func (t Tensor) clone() Tensor {
	t.Shape = slices.Clone(t.Shape)
	return t
}

// Node is one operator instance of the node table.
type Node struct {
	Index   int
	Name    string
	Type    ops.PrimitiveType
	Inputs  []int
	Outputs []int
	Attr    ops.Attr // Shared with the Model; must not be modified.
}

func (n Node) clone() Node {
	n.Inputs = slices.Clone(n.Inputs)
	n.Outputs = slices.Clone(n.Outputs)
	return n
}

// Subgraph is a boundary-delimited region of the node table.
type Subgraph struct {
	Index   int
	Name    string
	Nodes   []int
	Inputs  []int
	Outputs []int
	Tensors []int
}

func (s Subgraph) clone() Subgraph {
	s.Nodes = slices.Clone(s.Nodes)
	s.Inputs = slices.Clone(s.Inputs)
	s.Outputs = slices.Clone(s.Outputs)
	s.Tensors = slices.Clone(s.Tensors)
	return s
}

// Model is an immutable computation graph. All accessors are safe for
// concurrent use; returned values are copies except for tensor data and
// attribute payloads, which are shared and must be treated as read-only.
type Model struct {
	id        uuid.UUID
	name      string
	version   string
	fmk       ops.FmkType
	tensors   []Tensor
	nodes     []Node
	subgraphs []Subgraph
	inputs    []int
	outputs   []int
	buf       *Buffer
	source    Source
}

// ID returns the identifier assigned to this Model instance when it was
// built. It correlates log lines and is not persisted.
func (m *Model) ID() uuid.UUID {
	return m.id
}

// Name returns the model name, empty when absent.
func (m *Model) Name() string {
	return m.name
}

// Version returns the model version string, empty when absent.
func (m *Model) Version() string {
	return m.version
}

// FmkType returns the framework the model was converted from.
func (m *Model) FmkType() ops.FmkType {
	return m.fmk
}

// Source reports how the Model was produced.
func (m *Model) Source() Source {
	return m.source
}

// Exportable reports whether Export can copy the Model out.
func (m *Model) Exportable() bool {
	return m.source == SourceImport && m.buf.Len() > 0
}

// Size returns the length of the owned buffer in bytes.
func (m *Model) Size() int {
	return m.buf.Len()
}

// Digest returns the blake3 hash of the owned buffer. For imported models
// this is the hash of the model file.
func (m *Model) Digest() [32]byte {
	if m.buf == nil {
		return blake3.Sum256(nil)
	}
	return blake3.Sum256(m.buf.data)
}

// NumTensors returns the size of the tensor table.
func (m *Model) NumTensors() int {
	return len(m.tensors)
}

// Tensor returns tensor i. It panics if i is out of range.
func (m *Model) Tensor(i int) Tensor {
	return m.tensors[i].clone()
}

// Tensors returns a copy of the tensor table.
func (m *Model) Tensors() []Tensor {
	out := make([]Tensor, len(m.tensors))
	for i := range m.tensors {
		out[i] = m.tensors[i].clone()
	}
	return out
}

// TensorData returns the embedded constant data of tensor i, or nil.
// The slice aliases the Model's buffer and must not be modified.
func (m *Model) TensorData(i int) []byte {
	return m.buf.resolve(m.tensors[i].Data)
}

// NumNodes returns the size of the node table.
func (m *Model) NumNodes() int {
	return len(m.nodes)
}

// Node returns node i. It panics if i is out of range.
func (m *Model) Node(i int) Node {
	return m.nodes[i].clone()
}

// Nodes returns a copy of the node table.
func (m *Model) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	for i := range m.nodes {
		out[i] = m.nodes[i].clone()
	}
	return out
}

// NumSubgraphs returns the number of subgraphs, at least one.
func (m *Model) NumSubgraphs() int {
	return len(m.subgraphs)
}

// Subgraph returns subgraph i. It panics if i is out of range.
func (m *Model) Subgraph(i int) Subgraph {
	return m.subgraphs[i].clone()
}

// Subgraphs returns a copy of the subgraph table.
func (m *Model) Subgraphs() []Subgraph {
	out := make([]Subgraph, len(m.subgraphs))
	for i := range m.subgraphs {
		out[i] = m.subgraphs[i].clone()
	}
	return out
}

// Inputs returns the graph-level input tensor indices.
func (m *Model) Inputs() []int {
	return slices.Clone(m.inputs)
}

// Outputs returns the graph-level output tensor indices.
func (m *Model) Outputs() []int {
	return slices.Clone(m.outputs)
}
