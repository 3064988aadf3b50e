package tflite

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// ModelT is the unpacked form of Model.
type ModelT struct {
	Version       uint32
	OperatorCodes []*OperatorCodeT
	Subgraphs     []*SubGraphT
	Description   string
	Buffers       []*BufferT
}

// OperatorCodeT is the unpacked form of OperatorCode.
type OperatorCodeT struct {
	BuiltinCode BuiltinOperator
	CustomCode  string
	Version     int32
}

// SubGraphT is the unpacked form of SubGraph.
type SubGraphT struct {
	Tensors   []*TensorT
	Inputs    []int32
	Outputs   []int32
	Operators []*OperatorT
	Name      string
}

// TensorT is the unpacked form of Tensor.
type TensorT struct {
	Shape  []int32
	Type   TensorType
	Buffer uint32
	Name   string
}

// OperatorT is the unpacked form of Operator.
type OperatorT struct {
	OpcodeIndex    uint32
	Inputs         []int32
	Outputs        []int32
	BuiltinOptions *BuiltinOptionsT
}

// BufferT is the unpacked form of Buffer.
type BufferT struct {
	Data []byte
}

// BuiltinOptionsT holds one options table. Value is one of the *XxxOptionsT
// types matching Type, or nil for option tables this package does not
// declare.
type BuiltinOptionsT struct {
	Type  BuiltinOptions
	Value any
}

// SplitOptionsT is the unpacked form of SplitOptions.
type SplitOptionsT struct {
	NumSplits int32
}

// SplitVOptionsT is the unpacked form of SplitVOptions.
type SplitVOptionsT struct {
	NumSplits int32
}

// ConcatenationOptionsT is the unpacked form of ConcatenationOptions.
type ConcatenationOptionsT struct {
	Axis                    int32
	FusedActivationFunction ActivationFunctionType
}

// SoftmaxOptionsT is the unpacked form of SoftmaxOptions.
type SoftmaxOptionsT struct {
	Beta float32
}

// ReshapeOptionsT is the unpacked form of ReshapeOptions.
type ReshapeOptionsT struct {
	NewShape []int32
}

// AddOptionsT is the unpacked form of AddOptions.
type AddOptionsT struct {
	FusedActivationFunction ActivationFunctionType
}

// SubOptionsT is the unpacked form of SubOptions.
type SubOptionsT struct {
	FusedActivationFunction ActivationFunctionType
}

// MulOptionsT is the unpacked form of MulOptions.
type MulOptionsT struct {
	FusedActivationFunction ActivationFunctionType
}

// UnPack copies the model out of the buffer.
func (rcv *Model) UnPack() *ModelT {
	t := &ModelT{
		Version:     rcv.Version(),
		Description: string(rcv.Description()),
	}
	var oc OperatorCode
	for i := 0; i < rcv.OperatorCodesLength(); i++ {
		rcv.OperatorCodes(&oc, i)
		t.OperatorCodes = append(t.OperatorCodes, oc.UnPack())
	}
	var sg SubGraph
	for i := 0; i < rcv.SubgraphsLength(); i++ {
		rcv.Subgraphs(&sg, i)
		t.Subgraphs = append(t.Subgraphs, sg.UnPack())
	}
	var b Buffer
	for i := 0; i < rcv.BuffersLength(); i++ {
		rcv.Buffers(&b, i)
		t.Buffers = append(t.Buffers, &BufferT{Data: cloneBytes(b.DataBytes())})
	}
	return t
}

// UnPack copies the operator code out of the buffer. Files written before
// the 32-bit code field existed carry the code in the deprecated byte.
func (rcv *OperatorCode) UnPack() *OperatorCodeT {
	code := rcv.BuiltinCode()
	if dep := BuiltinOperator(rcv.DeprecatedBuiltinCode()); dep > code {
		code = dep
	}
	return &OperatorCodeT{
		BuiltinCode: code,
		CustomCode:  string(rcv.CustomCode()),
		Version:     rcv.Version(),
	}
}

// UnPack copies the subgraph out of the buffer.
func (rcv *SubGraph) UnPack() *SubGraphT {
	t := &SubGraphT{
		Inputs:  int32s(rcv.InputsLength(), rcv.Inputs),
		Outputs: int32s(rcv.OutputsLength(), rcv.Outputs),
		Name:    string(rcv.Name()),
	}
	var tensor Tensor
	for i := 0; i < rcv.TensorsLength(); i++ {
		rcv.Tensors(&tensor, i)
		t.Tensors = append(t.Tensors, &TensorT{
			Shape:  int32s(tensor.ShapeLength(), tensor.Shape),
			Type:   tensor.Type(),
			Buffer: tensor.Buffer(),
			Name:   string(tensor.Name()),
		})
	}
	var op Operator
	for i := 0; i < rcv.OperatorsLength(); i++ {
		rcv.Operators(&op, i)
		t.Operators = append(t.Operators, op.UnPack())
	}
	return t
}

// UnPack copies the operator out of the buffer.
func (rcv *Operator) UnPack() *OperatorT {
	t := &OperatorT{
		OpcodeIndex: rcv.OpcodeIndex(),
		Inputs:      int32s(rcv.InputsLength(), rcv.Inputs),
		Outputs:     int32s(rcv.OutputsLength(), rcv.Outputs),
	}
	typ := rcv.BuiltinOptionsType()
	var tab flatbuffers.Table
	if typ != BuiltinOptionsNONE && rcv.BuiltinOptions(&tab) {
		t.BuiltinOptions = &BuiltinOptionsT{Type: typ, Value: unpackOptions(typ, tab)}
	}
	return t
}

func unpackOptions(typ BuiltinOptions, tab flatbuffers.Table) any {
	switch typ {
	case BuiltinOptionsSplitOptions:
		var o SplitOptions
		o.Init(tab.Bytes, tab.Pos)
		return &SplitOptionsT{NumSplits: o.NumSplits()}
	case BuiltinOptionsSplitVOptions:
		var o SplitVOptions
		o.Init(tab.Bytes, tab.Pos)
		return &SplitVOptionsT{NumSplits: o.NumSplits()}
	case BuiltinOptionsConcatenationOptions:
		var o ConcatenationOptions
		o.Init(tab.Bytes, tab.Pos)
		return &ConcatenationOptionsT{Axis: o.Axis(), FusedActivationFunction: o.FusedActivationFunction()}
	case BuiltinOptionsSoftmaxOptions:
		var o SoftmaxOptions
		o.Init(tab.Bytes, tab.Pos)
		return &SoftmaxOptionsT{Beta: o.Beta()}
	case BuiltinOptionsReshapeOptions:
		var o ReshapeOptions
		o.Init(tab.Bytes, tab.Pos)
		return &ReshapeOptionsT{NewShape: int32s(o.NewShapeLength(), o.NewShape)}
	case BuiltinOptionsAddOptions:
		var o AddOptions
		o.Init(tab.Bytes, tab.Pos)
		return &AddOptionsT{FusedActivationFunction: o.FusedActivationFunction()}
	case BuiltinOptionsSubOptions:
		var o SubOptions
		o.Init(tab.Bytes, tab.Pos)
		return &SubOptionsT{FusedActivationFunction: o.FusedActivationFunction()}
	case BuiltinOptionsMulOptions:
		var o MulOptions
		o.Init(tab.Bytes, tab.Pos)
		return &MulOptionsT{FusedActivationFunction: o.FusedActivationFunction()}
	}
	return nil
}

// Pack serializes m with the TFL3 identifier.
func Pack(m *ModelT) []byte {
	b := flatbuffers.NewBuilder(1024)
	b.FinishWithFileIdentifier(m.Pack(b), []byte(Identifier))
	return b.FinishedBytes()
}

// Pack writes the model tables and returns the root offset.
func (t *ModelT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	buffers := make([]flatbuffers.UOffsetT, len(t.Buffers))
	for i, buf := range t.Buffers {
		var data flatbuffers.UOffsetT
		if buf != nil && buf.Data != nil {
			data = b.CreateByteVector(buf.Data)
		}
		BufferStart(b)
		if data != 0 {
			BufferAddData(b, data)
		}
		buffers[i] = BufferEnd(b)
	}
	subgraphs := make([]flatbuffers.UOffsetT, len(t.Subgraphs))
	for i, sg := range t.Subgraphs {
		subgraphs[i] = sg.Pack(b)
	}
	codes := make([]flatbuffers.UOffsetT, len(t.OperatorCodes))
	for i, oc := range t.OperatorCodes {
		codes[i] = oc.Pack(b)
	}
	desc := optString(b, t.Description)

	codeVec := offsets(b, codes)
	subgraphVec := offsets(b, subgraphs)
	bufferVec := offsets(b, buffers)

	ModelStart(b)
	ModelAddVersion(b, t.Version)
	ModelAddOperatorCodes(b, codeVec)
	ModelAddSubgraphs(b, subgraphVec)
	if desc != 0 {
		ModelAddDescription(b, desc)
	}
	ModelAddBuffers(b, bufferVec)
	return ModelEnd(b)
}

// Pack writes the operator code table.
func (t *OperatorCodeT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	custom := optString(b, t.CustomCode)
	OperatorCodeStart(b)
	dep := t.BuiltinCode
	if dep > 127 {
		dep = 127
	}
	OperatorCodeAddDeprecatedBuiltinCode(b, int8(dep))
	if custom != 0 {
		OperatorCodeAddCustomCode(b, custom)
	}
	OperatorCodeAddVersion(b, t.Version)
	OperatorCodeAddBuiltinCode(b, t.BuiltinCode)
	return OperatorCodeEnd(b)
}

// Pack writes the subgraph table.
func (t *SubGraphT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	tensors := make([]flatbuffers.UOffsetT, len(t.Tensors))
	for i, tensor := range t.Tensors {
		name := optString(b, tensor.Name)
		shape := int32Vector(b, tensor.Shape)
		TensorStart(b)
		TensorAddShape(b, shape)
		TensorAddType(b, tensor.Type)
		TensorAddBuffer(b, tensor.Buffer)
		if name != 0 {
			TensorAddName(b, name)
		}
		tensors[i] = TensorEnd(b)
	}
	operators := make([]flatbuffers.UOffsetT, len(t.Operators))
	for i, op := range t.Operators {
		operators[i] = op.Pack(b)
	}
	name := optString(b, t.Name)
	inputs := int32Vector(b, t.Inputs)
	outputs := int32Vector(b, t.Outputs)
	tensorVec := offsets(b, tensors)
	operatorVec := offsets(b, operators)

	SubGraphStart(b)
	SubGraphAddTensors(b, tensorVec)
	SubGraphAddInputs(b, inputs)
	SubGraphAddOutputs(b, outputs)
	SubGraphAddOperators(b, operatorVec)
	if name != 0 {
		SubGraphAddName(b, name)
	}
	return SubGraphEnd(b)
}

// Pack writes the operator table.
func (t *OperatorT) Pack(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	var (
		optType BuiltinOptions
		opts    flatbuffers.UOffsetT
	)
	if t.BuiltinOptions != nil {
		optType, opts = t.BuiltinOptions.Type, packOptions(b, t.BuiltinOptions)
	}
	inputs := int32Vector(b, t.Inputs)
	outputs := int32Vector(b, t.Outputs)

	OperatorStart(b)
	OperatorAddOpcodeIndex(b, t.OpcodeIndex)
	OperatorAddInputs(b, inputs)
	OperatorAddOutputs(b, outputs)
	if opts != 0 {
		OperatorAddBuiltinOptionsType(b, optType)
		OperatorAddBuiltinOptions(b, opts)
	}
	return OperatorEnd(b)
}

func packOptions(b *flatbuffers.Builder, o *BuiltinOptionsT) flatbuffers.UOffsetT {
	switch v := o.Value.(type) {
	case *SplitOptionsT:
		SplitOptionsStart(b)
		SplitOptionsAddNumSplits(b, v.NumSplits)
		return SplitOptionsEnd(b)
	case *SplitVOptionsT:
		SplitVOptionsStart(b)
		SplitVOptionsAddNumSplits(b, v.NumSplits)
		return SplitVOptionsEnd(b)
	case *ConcatenationOptionsT:
		ConcatenationOptionsStart(b)
		ConcatenationOptionsAddAxis(b, v.Axis)
		ConcatenationOptionsAddFusedActivationFunction(b, v.FusedActivationFunction)
		return ConcatenationOptionsEnd(b)
	case *SoftmaxOptionsT:
		SoftmaxOptionsStart(b)
		SoftmaxOptionsAddBeta(b, v.Beta)
		return SoftmaxOptionsEnd(b)
	case *ReshapeOptionsT:
		shape := int32Vector(b, v.NewShape)
		ReshapeOptionsStart(b)
		ReshapeOptionsAddNewShape(b, shape)
		return ReshapeOptionsEnd(b)
	case *AddOptionsT:
		AddOptionsStart(b)
		AddOptionsAddFusedActivationFunction(b, v.FusedActivationFunction)
		return AddOptionsEnd(b)
	case *SubOptionsT:
		SubOptionsStart(b)
		SubOptionsAddFusedActivationFunction(b, v.FusedActivationFunction)
		return SubOptionsEnd(b)
	case *MulOptionsT:
		MulOptionsStart(b)
		MulOptionsAddFusedActivationFunction(b, v.FusedActivationFunction)
		return MulOptionsEnd(b)
	}
	return 0
}

func optString(b *flatbuffers.Builder, s string) flatbuffers.UOffsetT {
	if s == "" {
		return 0
	}
	return b.CreateString(s)
}

func int32Vector(b *flatbuffers.Builder, vals []int32) flatbuffers.UOffsetT {
	b.StartVector(4, len(vals), 4)
	for i := len(vals) - 1; i >= 0; i-- {
		b.PrependInt32(vals[i])
	}
	return b.EndVector(len(vals))
}

func offsets(b *flatbuffers.Builder, offs []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(offs), 4)
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offs[i])
	}
	return b.EndVector(len(offs))
}

func int32s(n int, at func(int) int32) []int32 {
	if n == 0 {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
