// Package schema is the persisted canonical model container: a flatbuffer
// whose layout is declared in schema.fbs.
//
// Bytes from outside the process must pass Verify before any accessor in
// this package touches them.
package schema

import (
	"strconv"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/born-ml/graphlite/internal/flatbuf"
)

// Identifier is the file identifier stored at bytes 4..8. Its last
// character is the container version.
const Identifier = "GLM1"

// PrimitiveType is the union tag of Primitive.value.
type PrimitiveType byte

// Union tags.
const (
	PrimitiveTypeNONE       PrimitiveType = 0
	PrimitiveTypeSplit      PrimitiveType = 1
	PrimitiveTypeConcat     PrimitiveType = 2
	PrimitiveTypeSoftMax    PrimitiveType = 3
	PrimitiveTypeReshape    PrimitiveType = 4
	PrimitiveTypeAdd        PrimitiveType = 5
	PrimitiveTypeSub        PrimitiveType = 6
	PrimitiveTypeMul        PrimitiveType = 7
	PrimitiveTypeActivation PrimitiveType = 8
)

// EnumNamesPrimitiveType maps union tags to their schema names.
var EnumNamesPrimitiveType = map[PrimitiveType]string{
	PrimitiveTypeNONE:       "NONE",
	PrimitiveTypeSplit:      "Split",
	PrimitiveTypeConcat:     "Concat",
	PrimitiveTypeSoftMax:    "SoftMax",
	PrimitiveTypeReshape:    "Reshape",
	PrimitiveTypeAdd:        "Add",
	PrimitiveTypeSub:        "Sub",
	PrimitiveTypeMul:        "Mul",
	PrimitiveTypeActivation: "Activation",
}

func (v PrimitiveType) String() string {
	if s, ok := EnumNamesPrimitiveType[v]; ok {
		return s
	}
	return "PrimitiveType(" + strconv.FormatInt(int64(v), 10) + ")"
}

// HasSubGraph reports whether the subGraph table is present at all. Its
// absence selects the legacy single-graph layout; an empty table does not.
func (rcv *MetaGraph) HasSubGraph() bool {
	return rcv._tab.Offset(flatbuf.VTableOffset(metaGraphSubGraphSlot)) != 0
}

// DataRange locates the embedded constant data of the tensor as an absolute
// offset and length within the buffer. ok is false when no data is embedded.
func (rcv *Tensor) DataRange() (offset, length int, ok bool) {
	return flatbuf.VectorRange(&rcv._tab, tensorDataSlot)
}

// FinishMetaGraphBuffer finishes b with root as the MetaGraph and the
// container identifier.
func FinishMetaGraphBuffer(b *flatbuffers.Builder, root flatbuffers.UOffsetT) {
	b.FinishWithFileIdentifier(root, []byte(Identifier))
}
