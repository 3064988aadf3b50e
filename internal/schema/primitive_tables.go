// Accessors and builders for the tables declared in schema.fbs, in the
// shape flatc emits for Go. Field slots are frozen: append new fields only.

package schema

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Primitive wraps the attribute union of a node.
type Primitive struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Primitive) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Primitive) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Primitive) ValueType() PrimitiveType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return PrimitiveType(rcv._tab.GetByte(o + rcv._tab.Pos))
	}
	return 0
}

func (rcv *Primitive) Value(obj *flatbuffers.Table) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		rcv._tab.Union(obj, o)
		return true
	}
	return false
}

func PrimitiveStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func PrimitiveAddValueType(builder *flatbuffers.Builder, valueType PrimitiveType) {
	builder.PrependByteSlot(0, byte(valueType), 0)
}

func PrimitiveAddValue(builder *flatbuffers.Builder, value flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, flatbuffers.UOffsetT(value), 0)
}

func PrimitiveEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Split struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Split) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Split) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Split) NumberSplit() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Split) SizeSplits(j int) int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Split) SizeSplitsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Split) SplitDim() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func SplitStart(builder *flatbuffers.Builder) {
	builder.StartObject(3)
}

func SplitAddNumberSplit(builder *flatbuffers.Builder, numberSplit int32) {
	builder.PrependInt32Slot(0, numberSplit, 0)
}

func SplitAddSizeSplits(builder *flatbuffers.Builder, sizeSplits flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, flatbuffers.UOffsetT(sizeSplits), 0)
}

func SplitStartSizeSplitsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func SplitAddSplitDim(builder *flatbuffers.Builder, splitDim int32) {
	builder.PrependInt32Slot(2, splitDim, 0)
}

func SplitEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Concat struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Concat) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Concat) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Concat) Axis() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Concat) N() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func ConcatStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func ConcatAddAxis(builder *flatbuffers.Builder, axis int32) {
	builder.PrependInt32Slot(0, axis, 0)
}

func ConcatAddN(builder *flatbuffers.Builder, n int32) {
	builder.PrependInt32Slot(1, n, 0)
}

func ConcatEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type SoftMax struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *SoftMax) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *SoftMax) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *SoftMax) Axis() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func SoftMaxStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SoftMaxAddAxis(builder *flatbuffers.Builder, axis int32) {
	builder.PrependInt32Slot(0, axis, 0)
}

func SoftMaxEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Reshape struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Reshape) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Reshape) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Reshape) Format() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Reshape) Shape(j int) int64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt64(a + flatbuffers.UOffsetT(j*8))
	}
	return 0
}

func (rcv *Reshape) ShapeLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func ReshapeStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func ReshapeAddFormat(builder *flatbuffers.Builder, format int32) {
	builder.PrependInt32Slot(0, format, 0)
}

func ReshapeAddShape(builder *flatbuffers.Builder, shape flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, flatbuffers.UOffsetT(shape), 0)
}

func ReshapeStartShapeVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func ReshapeEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Add struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Add) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Add) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Add) ActivationType() int8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt8(o + rcv._tab.Pos)
	}
	return 0
}

func AddStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func AddAddActivationType(builder *flatbuffers.Builder, activationType int8) {
	builder.PrependInt8Slot(0, activationType, 0)
}

func AddEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Sub struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Sub) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Sub) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Sub) ActivationType() int8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt8(o + rcv._tab.Pos)
	}
	return 0
}

func SubStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func SubAddActivationType(builder *flatbuffers.Builder, activationType int8) {
	builder.PrependInt8Slot(0, activationType, 0)
}

func SubEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Mul struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Mul) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Mul) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Mul) ActivationType() int8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt8(o + rcv._tab.Pos)
	}
	return 0
}

func MulStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func MulAddActivationType(builder *flatbuffers.Builder, activationType int8) {
	builder.PrependInt8Slot(0, activationType, 0)
}

func MulEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

type Activation struct {
	_tab flatbuffers.Table
}

// Init points the accessor at the table at i.
func (rcv *Activation) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Table returns the underlying table.
func (rcv *Activation) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Activation) Type() int8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetInt8(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *Activation) Alpha() float32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetFloat32(o + rcv._tab.Pos)
	}
	return 0
}

func ActivationStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func ActivationAddType(builder *flatbuffers.Builder, type_ int8) {
	builder.PrependInt8Slot(0, type_, 0)
}

func ActivationAddAlpha(builder *flatbuffers.Builder, alpha float32) {
	builder.PrependFloat32Slot(1, alpha, 0)
}

func ActivationEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
