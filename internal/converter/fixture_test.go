package converter

import (
	"encoding/binary"

	"github.com/born-ml/graphlite/internal/tflite"
)

// fixture assembles a single-subgraph foreign model.
type fixture struct {
	m *tflite.ModelT
}

func newFixture() *fixture {
	return &fixture{m: &tflite.ModelT{
		Version:     3,
		Description: "fixture",
		Subgraphs:   []*tflite.SubGraphT{{Name: "main"}},
		Buffers:     []*tflite.BufferT{{}},
	}}
}

func (f *fixture) sg() *tflite.SubGraphT {
	return f.m.Subgraphs[0]
}

func (f *fixture) tensor(name string, typ tflite.TensorType, shape []int32, data []byte) int32 {
	t := &tflite.TensorT{Name: name, Type: typ, Shape: shape}
	if data != nil {
		t.Buffer = uint32(len(f.m.Buffers))
		f.m.Buffers = append(f.m.Buffers, &tflite.BufferT{Data: data})
	}
	f.sg().Tensors = append(f.sg().Tensors, t)
	return int32(len(f.sg().Tensors) - 1)
}

func (f *fixture) float(name string, shape ...int32) int32 {
	return f.tensor(name, tflite.TensorTypeFLOAT32, shape, nil)
}

func (f *fixture) ints(name string, vals ...int32) int32 {
	return f.tensor(name, tflite.TensorTypeINT32, []int32{int32(len(vals))}, int32Data(vals...))
}

func (f *fixture) scalar(name string, v int32) int32 {
	return f.tensor(name, tflite.TensorTypeINT32, nil, int32Data(v))
}

func (f *fixture) code(c *tflite.OperatorCodeT) uint32 {
	for i, have := range f.m.OperatorCodes {
		if have.BuiltinCode == c.BuiltinCode && have.CustomCode == c.CustomCode {
			return uint32(i)
		}
	}
	f.m.OperatorCodes = append(f.m.OperatorCodes, c)
	return uint32(len(f.m.OperatorCodes) - 1)
}

func (f *fixture) op(code tflite.BuiltinOperator, inputs, outputs []int32, opts *tflite.BuiltinOptionsT) *tflite.OperatorT {
	op := &tflite.OperatorT{
		OpcodeIndex:    f.code(&tflite.OperatorCodeT{BuiltinCode: code, Version: 1}),
		Inputs:         inputs,
		Outputs:        outputs,
		BuiltinOptions: opts,
	}
	f.sg().Operators = append(f.sg().Operators, op)
	return op
}

func (f *fixture) custom(name string, inputs, outputs []int32) *tflite.OperatorT {
	op := &tflite.OperatorT{
		OpcodeIndex: f.code(&tflite.OperatorCodeT{BuiltinCode: tflite.BuiltinOperatorCUSTOM, CustomCode: name}),
		Inputs:      inputs,
		Outputs:     outputs,
	}
	f.sg().Operators = append(f.sg().Operators, op)
	return op
}

func (f *fixture) io(inputs, outputs []int32) {
	f.sg().Inputs = inputs
	f.sg().Outputs = outputs
}

func (f *fixture) graph() *Graph {
	g, err := NewGraph(f.m, 0)
	if err != nil {
		panic(err)
	}
	return g
}

func int32Data(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func int64Data(vals ...int64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[8*i:], uint64(v))
	}
	return out
}

func splitVOpts(n int32) *tflite.BuiltinOptionsT {
	return &tflite.BuiltinOptionsT{Type: tflite.BuiltinOptionsSplitVOptions, Value: &tflite.SplitVOptionsT{NumSplits: n}}
}
