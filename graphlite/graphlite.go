// Package graphlite ingests serialized inference models and reconstructs
// their computation graph.
//
// Two entry points produce a [Model]:
//
//   - [Import] validates a persisted container (identifier "GLM1") and
//     rebuilds its tensors, nodes and subgraphs. The resulting Model keeps a
//     private copy of the input and can be written back unchanged with
//     [Export].
//   - [Convert] translates a foreign flatbuffer model (identifier "TFL3")
//     operator by operator through a [Registry] of parsers. The result can
//     be serialized with [Marshal] and then imported.
//
// # Example Usage
//
//	data, _ := os.ReadFile("model.glm")
//	m, err := graphlite.Import(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, n := range m.Nodes() {
//	    fmt.Println(n.Name, n.Type, n.Inputs, n.Outputs)
//	}
//
//	// Write the model back to a caller-owned buffer.
//	out := make([]byte, graphlite.ExportSize(m))
//	out, err = graphlite.Export(m, out)
//
// # Errors
//
// Every failure wraps an [*Error] whose Code tells the failure class. Match
// with errors.Is against the exported sentinels:
//
//	if errors.Is(err, graphlite.ErrUnsupportedOperator) {
//	    // the registry has no parser for some operator
//	}
//
// # Custom Operators
//
// Register parsers on a fresh registry before the first conversion; the
// registry is sealed by its first lookup:
//
//	r := graphlite.DefaultRegistryUnsealed()
//	_ = r.Register("MyOp", graphlite.ParserFunc(parseMyOp))
//	opts := graphlite.DefaultConvertOptions()
//	opts.Registry = r
//	m, err := graphlite.Convert(data, opts)
package graphlite

import (
	"github.com/pkg/errors"

	"github.com/born-ml/graphlite/internal/converter"
	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/modelfile"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// Model is an immutable reconstructed graph. It is safe for concurrent use.
type Model = model.Model

// Tensor, Node and Subgraph are the entries of a Model's tables.
type (
	Tensor   = model.Tensor
	Node     = model.Node
	Subgraph = model.Subgraph
)

// Builder assembles a Model programmatically.
type Builder = model.Builder

// Builder inputs.
type (
	TensorSpec   = model.TensorSpec
	NodeSpec     = model.NodeSpec
	SubgraphSpec = model.SubgraphSpec
)

// Options.
type (
	ImportOptions  = model.ImportOptions
	MarshalOptions = model.MarshalOptions
	ConvertOptions = converter.Options
	FileOptions    = modelfile.Options
)

// Conversion extension points.
type (
	Registry       = converter.Registry
	OperatorParser = converter.OperatorParser
	ParserFunc     = converter.ParserFunc
	Context        = converter.Context
	Graph          = converter.Graph

	// ForeignOperator is one operator of the foreign model, as handed to
	// parsers.
	ForeignOperator = tflite.OperatorT
)

// Error is the classified failure returned by every operation.
type Error = status.Error

// Code classifies an Error.
type Code = status.Code

// Sentinels for errors.Is.
var (
	ErrNullInput               = status.ErrNullInput
	ErrInvalidFormat           = status.ErrInvalidFormat
	ErrOutOfMemory             = status.ErrOutOfMemory
	ErrBufferTooSmall          = status.ErrBufferTooSmall
	ErrNotExportable           = status.ErrNotExportable
	ErrUnsupportedOperator     = status.ErrUnsupportedOperator
	ErrMissingAttribute        = status.ErrMissingAttribute
	ErrInvalidAxis             = status.ErrInvalidAxis
	ErrInvalidAttributeData    = status.ErrInvalidAttributeData
	ErrSubgraphAssemblyFailure = status.ErrSubgraphAssemblyFailure
)

// DefaultImportOptions returns the default import settings.
func DefaultImportOptions() ImportOptions {
	return model.DefaultImportOptions()
}

// DefaultConvertOptions returns the default conversion settings: NHWC
// layout, strict mode on, the builtin parsers.
func DefaultConvertOptions() ConvertOptions {
	return converter.DefaultOptions()
}

// Import validates a persisted model and reconstructs its graph. data is
// copied; the caller may reuse it afterwards.
func Import(data []byte, opts ...ImportOptions) (*Model, error) {
	return model.Import(data, opts...)
}

// Export writes the persisted bytes of an imported model into dst and
// returns the written prefix. A nil dst is allocated; a short one fails with
// ErrBufferTooSmall and is left untouched.
func Export(m *Model, dst []byte) ([]byte, error) {
	return model.Export(m, dst)
}

// ExportSize returns the number of bytes Export writes, or 0 when m cannot
// be exported.
func ExportSize(m *Model) int {
	return model.ExportSize(m)
}

// Marshal serializes any Model, including converted ones, into the
// persisted container format.
func Marshal(m *Model, opts ...MarshalOptions) ([]byte, error) {
	return model.Marshal(m, opts...)
}

// NewBuilder starts a Model with the given name and version.
func NewBuilder(name, version string) *Builder {
	return model.NewBuilder(name, version)
}

// Convert verifies a foreign model and translates it into a Model.
func Convert(data []byte, opts ...ConvertOptions) (*Model, error) {
	src, err := tflite.Read(data)
	if err != nil {
		return nil, errors.Wrap(err, "read foreign model")
	}
	return converter.Convert(src, opts...)
}

// DefaultRegistryUnsealed returns a registry holding the builtin parsers
// that still accepts registrations.
func DefaultRegistryUnsealed() *Registry {
	r := converter.NewRegistry()
	if err := converter.RegisterBuiltins(r); err != nil {
		panic(err)
	}
	return r
}

// SupportedOperators lists the foreign operator names the builtin parsers
// handle, sorted.
func SupportedOperators() []string {
	return converter.DefaultRegistry().Names()
}

// LoadFile reads and imports a model file. xz compressed files are
// recognised by content.
func LoadFile(path string, opts ...FileOptions) (*Model, error) {
	return modelfile.Load(path, opts...)
}

// SaveFile writes the persisted form of m to path, compressing it when path
// ends in ".xz".
func SaveFile(path string, m *Model, opts ...FileOptions) error {
	return modelfile.Save(path, m, opts...)
}
