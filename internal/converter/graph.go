package converter

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/graphlite/internal/ops"
	"github.com/born-ml/graphlite/internal/status"
	"github.com/born-ml/graphlite/internal/tflite"
)

// Graph is the read-only view of one foreign subgraph handed to parsers.
type Graph struct {
	model    *tflite.ModelT
	subgraph *tflite.SubGraphT
}

// NewGraph returns the view of subgraph i of m.
func NewGraph(m *tflite.ModelT, i int) (*Graph, error) {
	if m == nil {
		return nil, status.New(status.NullInput, "no foreign model")
	}
	if i < 0 || i >= len(m.Subgraphs) || m.Subgraphs[i] == nil {
		return nil, status.New(status.InvalidFormat, "subgraph %d out of range [0, %d)", i, len(m.Subgraphs))
	}
	return &Graph{model: m, subgraph: m.Subgraphs[i]}, nil
}

// Name returns the subgraph name.
func (g *Graph) Name() string {
	return g.subgraph.Name
}

// NumTensors returns the size of the subgraph's tensor table.
func (g *Graph) NumTensors() int {
	return len(g.subgraph.Tensors)
}

// Tensor returns tensor i.
func (g *Graph) Tensor(i int32) (*tflite.TensorT, error) {
	if i < 0 || int(i) >= len(g.subgraph.Tensors) || g.subgraph.Tensors[i] == nil {
		return nil, status.New(status.InvalidFormat, "tensor index out of range [0, %d)", len(g.subgraph.Tensors)).
			WithTensor(int(i))
	}
	return g.subgraph.Tensors[i], nil
}

// Rank returns the declared rank of tensor i.
func (g *Graph) Rank(i int32) (int, error) {
	t, err := g.Tensor(i)
	if err != nil {
		return 0, err
	}
	return len(t.Shape), nil
}

// Data returns the constant data backing tensor i, or nil when the tensor
// has none. Buffer 0 is the empty sentinel buffer.
func (g *Graph) Data(i int32) []byte {
	t, err := g.Tensor(i)
	if err != nil || t.Buffer == 0 || int(t.Buffer) >= len(g.model.Buffers) {
		return nil
	}
	if b := g.model.Buffers[t.Buffer]; b != nil {
		return b.Data
	}
	return nil
}

// OperatorCode returns the operator code referenced by op.
func (g *Graph) OperatorCode(op *tflite.OperatorT) (*tflite.OperatorCodeT, error) {
	if int(op.OpcodeIndex) >= len(g.model.OperatorCodes) || g.model.OperatorCodes[op.OpcodeIndex] == nil {
		return nil, status.New(status.InvalidFormat, "opcode index %d out of range [0, %d)",
			op.OpcodeIndex, len(g.model.OperatorCodes))
	}
	return g.model.OperatorCodes[op.OpcodeIndex], nil
}

// ConstInt32s decodes the constant data of tensor i by its declared element
// type. INT32 and INT64 are accepted; INT64 values must fit in 32 bits.
func (g *Graph) ConstInt32s(i int32) ([]int32, error) {
	t, err := g.Tensor(i)
	if err != nil {
		return nil, err
	}
	data := g.Data(i)
	if data == nil {
		return nil, status.New(status.InvalidAttributeData, "tensor %q has no constant data", t.Name).
			WithTensor(int(i))
	}

	switch t.Type {
	case tflite.TensorTypeINT32:
		if len(data)%4 != 0 {
			return nil, status.New(status.InvalidAttributeData, "%d bytes is not a whole number of int32", len(data)).
				WithTensor(int(i))
		}
		out := make([]int32, len(data)/4)
		for k := range out {
			out[k] = int32(binary.LittleEndian.Uint32(data[4*k:]))
		}
		return out, nil
	case tflite.TensorTypeINT64:
		if len(data)%8 != 0 {
			return nil, status.New(status.InvalidAttributeData, "%d bytes is not a whole number of int64", len(data)).
				WithTensor(int(i))
		}
		out := make([]int32, len(data)/8)
		for k := range out {
			v := int64(binary.LittleEndian.Uint64(data[8*k:]))
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, status.New(status.InvalidAttributeData, "value %d overflows int32", v).
					WithTensor(int(i))
			}
			out[k] = int32(v)
		}
		return out, nil
	default:
		return nil, status.New(status.InvalidAttributeData, "element type %s is not an integer index type", t.Type).
			WithTensor(int(i))
	}
}

// ConstInt32 decodes a scalar constant; the tensor must hold exactly one
// element.
func (g *Graph) ConstInt32(i int32) (int32, error) {
	vals, err := g.ConstInt32s(i)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, status.New(status.InvalidAttributeData, "expected a scalar, got %d elements", len(vals)).
			WithTensor(int(i))
	}
	return vals[0], nil
}

// dataType maps a foreign element type to the canonical one.
func dataType(t tflite.TensorType) ops.DataType {
	switch t {
	case tflite.TensorTypeFLOAT32:
		return ops.Float32
	case tflite.TensorTypeFLOAT16:
		return ops.Float16
	case tflite.TensorTypeFLOAT64:
		return ops.Float64
	case tflite.TensorTypeINT8:
		return ops.Int8
	case tflite.TensorTypeINT16:
		return ops.Int16
	case tflite.TensorTypeINT32:
		return ops.Int32
	case tflite.TensorTypeINT64:
		return ops.Int64
	case tflite.TensorTypeUINT8:
		return ops.Uint8
	case tflite.TensorTypeBOOL:
		return ops.Bool
	default:
		return ops.DataTypeUnknown
	}
}
