package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// VTableOffset returns the vtable offset of field slot.
func VTableOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(2*flatbuffers.SizeVOffsetT + slot*flatbuffers.SizeVOffsetT)
}

// VectorRange returns the absolute element start and length of the vector
// stored in field slot of t. ok is false when the field is absent.
func VectorRange(t *flatbuffers.Table, slot int) (start, n int, ok bool) {
	o := flatbuffers.UOffsetT(t.Offset(VTableOffset(slot)))
	if o == 0 {
		return 0, 0, false
	}
	return int(t.Vector(o)), t.VectorLen(o), true
}
