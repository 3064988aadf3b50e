// Accessors and builders for the subset of the TFLite schema this package
// reads, in the shape flatc emits for Go. Slot numbers follow schema.fbs of
// the upstream format.

package tflite

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

type SplitOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *SplitOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *SplitOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SplitOptions) NumSplits() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func SplitOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SplitOptionsAddNumSplits(builder *flatbuffers.Builder, numSplits int32) {
	builder.PrependInt32Slot(0, numSplits, 0)
}

func SplitOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type SplitVOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *SplitVOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *SplitVOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SplitVOptions) NumSplits() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func SplitVOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SplitVOptionsAddNumSplits(builder *flatbuffers.Builder, numSplits int32) {
	builder.PrependInt32Slot(0, numSplits, 0)
}

func SplitVOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type ConcatenationOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *ConcatenationOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *ConcatenationOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *ConcatenationOptions) Axis() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *ConcatenationOptions) FusedActivationFunction() ActivationFunctionType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return ActivationFunctionType(rcv._tab.GetInt8(o + rcv._tab.Pos))
	}
	return 0
}

func ConcatenationOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func ConcatenationOptionsAddAxis(builder *flatbuffers.Builder, axis int32) {
	builder.PrependInt32Slot(0, axis, 0)
}

func ConcatenationOptionsAddFusedActivationFunction(builder *flatbuffers.Builder, fusedActivationFunction ActivationFunctionType) {
	builder.PrependInt8Slot(1, int8(fusedActivationFunction), int8(0))
}

func ConcatenationOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type SoftmaxOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *SoftmaxOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *SoftmaxOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SoftmaxOptions) Beta() float32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetFloat32(o + rcv._tab.Pos)
	}
	return 0.0
}

func SoftmaxOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SoftmaxOptionsAddBeta(builder *flatbuffers.Builder, beta float32) {
	builder.PrependFloat32Slot(0, beta, 0.0)
}

func SoftmaxOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type ReshapeOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *ReshapeOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *ReshapeOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *ReshapeOptions) NewShape(j int) int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *ReshapeOptions) NewShapeLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func ReshapeOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func ReshapeOptionsAddNewShape(builder *flatbuffers.Builder, newShape flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, flatbuffers.UOffsetT(newShape), 0)
}

func ReshapeOptionsStartNewShapeVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func ReshapeOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type AddOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *AddOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *AddOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *AddOptions) FusedActivationFunction() ActivationFunctionType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return ActivationFunctionType(rcv._tab.GetInt8(o + rcv._tab.Pos))
	}
	return 0
}

func AddOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func AddOptionsAddFusedActivationFunction(builder *flatbuffers.Builder, fusedActivationFunction ActivationFunctionType) {
	builder.PrependInt8Slot(0, int8(fusedActivationFunction), int8(0))
}

func AddOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type SubOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *SubOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *SubOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SubOptions) FusedActivationFunction() ActivationFunctionType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return ActivationFunctionType(rcv._tab.GetInt8(o + rcv._tab.Pos))
	}
	return 0
}

func SubOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SubOptionsAddFusedActivationFunction(builder *flatbuffers.Builder, fusedActivationFunction ActivationFunctionType) {
	builder.PrependInt8Slot(0, int8(fusedActivationFunction), int8(0))
}

func SubOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type MulOptions struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *MulOptions) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *MulOptions) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *MulOptions) FusedActivationFunction() ActivationFunctionType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return ActivationFunctionType(rcv._tab.GetInt8(o + rcv._tab.Pos))
	}
	return 0
}

func MulOptionsStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func MulOptionsAddFusedActivationFunction(builder *flatbuffers.Builder, fusedActivationFunction ActivationFunctionType) {
	builder.PrependInt8Slot(0, int8(fusedActivationFunction), int8(0))
}

func MulOptionsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
