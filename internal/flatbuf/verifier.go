// Package flatbuf verifies untrusted flatbuffer bytes before any accessor
// reads them.
//
// The generated-style accessors in internal/schema and internal/tflite trust
// their input completely: a bad offset panics with an index out of range.
// A Verifier walks the same tables those accessors read and checks every
// offset, vtable, vector and string against the buffer bounds first.
package flatbuf

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Verification limits.
const (
	DefaultMaxDepth  = 64
	DefaultMaxTables = 1000000
)

// identifierOffset is where a file identifier sits, right after the root offset.
const identifierOffset = flatbuffers.SizeUOffsetT

// IdentifierLength is the length of a file identifier.
const IdentifierLength = 4

// ErrMalformed is wrapped by every verification failure.
var ErrMalformed = errors.New("malformed flatbuffer")

// Verifier checks structural consistency of one buffer.
type Verifier struct {
	buf       []byte
	maxDepth  int
	maxTables int
	depth     int
	tables    int
}

// NewVerifier creates a Verifier over buf with default limits.
func NewVerifier(buf []byte) *Verifier {
	return &Verifier{
		buf:       buf,
		maxDepth:  DefaultMaxDepth,
		maxTables: DefaultMaxTables,
	}
}

// WithLimits overrides the nesting depth and table count limits.
func (v *Verifier) WithLimits(maxDepth, maxTables int) *Verifier {
	v.maxDepth = maxDepth
	v.maxTables = maxTables
	return v
}

// Table is a table whose header and vtable have been verified.
type Table struct {
	v     *Verifier
	pos   int
	vtab  int
	vsize int
	tsize int
}

// Pos returns the absolute position of the table in the buffer.
func (t Table) Pos() int {
	return t.pos
}

func (v *Verifier) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

func (v *Verifier) inRange(pos, size int) bool {
	return pos >= 0 && size >= 0 && uint64(pos)+uint64(size) <= uint64(len(v.buf))
}

// HasIdentifier reports whether buf carries the 4-byte file identifier id.
func HasIdentifier(buf []byte, id string) bool {
	if len(id) != IdentifierLength || len(buf) < identifierOffset+IdentifierLength {
		return false
	}
	return string(buf[identifierOffset:identifierOffset+IdentifierLength]) == id
}

// Root checks the buffer header and file identifier and returns the
// verified root table. An empty identifier skips the identifier check.
func (v *Verifier) Root(identifier string) (Table, error) {
	if len(v.buf) < identifierOffset+IdentifierLength {
		return Table{}, v.fail("buffer of %d bytes is shorter than the header", len(v.buf))
	}
	if identifier != "" && !HasIdentifier(v.buf, identifier) {
		return Table{}, v.fail("file identifier %q, expected %q",
			v.buf[identifierOffset:identifierOffset+IdentifierLength], identifier)
	}
	root := uint64(flatbuffers.GetUOffsetT(v.buf))
	if root == 0 || root >= uint64(len(v.buf)) {
		return Table{}, v.fail("root offset %d out of range", root)
	}
	return v.table(int(root))
}

func (v *Verifier) table(pos int) (Table, error) {
	v.tables++
	if v.tables > v.maxTables {
		return Table{}, v.fail("more than %d tables", v.maxTables)
	}
	if pos%flatbuffers.SizeSOffsetT != 0 {
		return Table{}, v.fail("table at %d is unaligned", pos)
	}
	if !v.inRange(pos, flatbuffers.SizeSOffsetT) {
		return Table{}, v.fail("table at %d out of range", pos)
	}
	vtab := pos - int(flatbuffers.GetSOffsetT(v.buf[pos:]))
	if vtab%flatbuffers.SizeVOffsetT != 0 || !v.inRange(vtab, 2*flatbuffers.SizeVOffsetT) {
		return Table{}, v.fail("vtable of table at %d out of range", pos)
	}
	vsize := int(flatbuffers.GetVOffsetT(v.buf[vtab:]))
	tsize := int(flatbuffers.GetVOffsetT(v.buf[vtab+flatbuffers.SizeVOffsetT:]))
	if vsize < 2*flatbuffers.SizeVOffsetT || vsize%flatbuffers.SizeVOffsetT != 0 || !v.inRange(vtab, vsize) {
		return Table{}, v.fail("vtable at %d has bad size %d", vtab, vsize)
	}
	if tsize < flatbuffers.SizeSOffsetT || !v.inRange(pos, tsize) {
		return Table{}, v.fail("table at %d has bad size %d", pos, tsize)
	}
	return Table{v: v, pos: pos, vtab: vtab, vsize: vsize, tsize: tsize}, nil
}

// fieldOffset returns the offset of slot inside the table, 0 when absent.
func (t Table) fieldOffset(slot int) int {
	vo := 2*flatbuffers.SizeVOffsetT + slot*flatbuffers.SizeVOffsetT
	if vo+flatbuffers.SizeVOffsetT > t.vsize {
		return 0
	}
	return int(flatbuffers.GetVOffsetT(t.v.buf[t.vtab+vo:]))
}

// Has reports whether slot is present.
func (t Table) Has(slot int) bool {
	return t.fieldOffset(slot) != 0
}

// Require fails when slot is absent.
func (t Table) Require(slot int, name string) error {
	if !t.Has(slot) {
		return t.v.fail("table at %d: required field %s missing", t.pos, name)
	}
	return nil
}

// Scalar checks that a scalar field of size bytes lies inside the table.
func (t Table) Scalar(slot, size int) error {
	fo := t.fieldOffset(slot)
	if fo == 0 {
		return nil
	}
	if fo+size > t.tsize {
		return t.v.fail("table at %d: field %d overruns table", t.pos, slot)
	}
	return nil
}

// Byte returns a verified one-byte field, or def when absent.
func (t Table) Byte(slot int, def byte) (byte, error) {
	if err := t.Scalar(slot, 1); err != nil {
		return 0, err
	}
	fo := t.fieldOffset(slot)
	if fo == 0 {
		return def, nil
	}
	return t.v.buf[t.pos+fo], nil
}

// deref follows the offset stored in slot.
func (t Table) deref(slot int) (int, bool, error) {
	fo := t.fieldOffset(slot)
	if fo == 0 {
		return 0, false, nil
	}
	if err := t.Scalar(slot, flatbuffers.SizeUOffsetT); err != nil {
		return 0, false, err
	}
	p := t.pos + fo
	if p%flatbuffers.SizeUOffsetT != 0 {
		return 0, false, t.v.fail("table at %d: offset field %d unaligned", t.pos, slot)
	}
	return t.v.follow(p)
}

func (v *Verifier) follow(p int) (int, bool, error) {
	u := uint64(flatbuffers.GetUOffsetT(v.buf[p:]))
	target := uint64(p) + u
	if u == 0 || target >= uint64(len(v.buf)) {
		return 0, false, v.fail("offset at %d points outside the buffer", p)
	}
	return int(target), true, nil
}

func (v *Verifier) vectorAt(pos, elemSize int) (int, int, error) {
	if pos%flatbuffers.SizeUOffsetT != 0 || !v.inRange(pos, flatbuffers.SizeUOffsetT) {
		return 0, 0, v.fail("vector at %d out of range", pos)
	}
	n := int(flatbuffers.GetUOffsetT(v.buf[pos:]))
	start := pos + flatbuffers.SizeUOffsetT
	if uint64(start)+uint64(n)*uint64(elemSize) > uint64(len(v.buf)) {
		return 0, 0, v.fail("vector at %d with %d elements overruns buffer", pos, n)
	}
	return start, n, nil
}

// Vector checks a vector of fixed-size elements and returns its element
// start position and length. present is false when the field is absent.
func (t Table) Vector(slot, elemSize int) (start, n int, present bool, err error) {
	pos, ok, err := t.deref(slot)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	start, n, err = t.v.vectorAt(pos, elemSize)
	if err != nil {
		return 0, 0, false, err
	}
	return start, n, true, nil
}

// String checks a NUL-terminated string field.
func (t Table) String(slot int) error {
	start, n, ok, err := t.Vector(slot, 1)
	if err != nil || !ok {
		return err
	}
	if !t.v.inRange(start+n, 1) || t.v.buf[start+n] != 0 {
		return t.v.fail("table at %d: string field %d is not terminated", t.pos, slot)
	}
	return nil
}

func (v *Verifier) enter() error {
	v.depth++
	if v.depth > v.maxDepth {
		return v.fail("nesting deeper than %d", v.maxDepth)
	}
	return nil
}

func (v *Verifier) leave() {
	v.depth--
}

// Child verifies the sub-table referenced by slot with fn.
func (t Table) Child(slot int, fn func(Table) error) (bool, error) {
	pos, ok, err := t.deref(slot)
	if err != nil || !ok {
		return false, err
	}
	if err := t.v.enter(); err != nil {
		return false, err
	}
	defer t.v.leave()
	child, err := t.v.table(pos)
	if err != nil {
		return false, err
	}
	return true, fn(child)
}

// Tables verifies every element of a vector of tables with fn, passing the
// element index.
func (t Table) Tables(slot int, fn func(i int, child Table) error) (bool, error) {
	start, n, ok, err := t.Vector(slot, flatbuffers.SizeUOffsetT)
	if err != nil || !ok {
		return false, err
	}
	if err := t.v.enter(); err != nil {
		return false, err
	}
	defer t.v.leave()
	for i := 0; i < n; i++ {
		pos, _, err := t.v.follow(start + i*flatbuffers.SizeUOffsetT)
		if err != nil {
			return false, err
		}
		child, err := t.v.table(pos)
		if err != nil {
			return false, err
		}
		if err := fn(i, child); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Strings verifies a vector of strings.
func (t Table) Strings(slot int) error {
	start, n, ok, err := t.Vector(slot, flatbuffers.SizeUOffsetT)
	if err != nil || !ok {
		return err
	}
	for i := 0; i < n; i++ {
		pos, _, err := t.v.follow(start + i*flatbuffers.SizeUOffsetT)
		if err != nil {
			return err
		}
		s, l, err := t.v.vectorAt(pos, 1)
		if err != nil {
			return err
		}
		if !t.v.inRange(s+l, 1) || t.v.buf[s+l] != 0 {
			return t.v.fail("string at %d is not terminated", pos)
		}
	}
	return nil
}

// Union verifies a union stored as a type byte in typeSlot and a table in
// valueSlot. fn receives the type tag and the verified value table; it is
// not called for type 0 (NONE), which must not carry a value.
func (t Table) Union(typeSlot, valueSlot int, fn func(typ byte, value Table) error) error {
	typ, err := t.Byte(typeSlot, 0)
	if err != nil {
		return err
	}
	if typ == 0 {
		if t.Has(valueSlot) {
			return t.v.fail("table at %d: union value without type", t.pos)
		}
		return nil
	}
	present, err := t.Child(valueSlot, func(value Table) error {
		return fn(typ, value)
	})
	if err != nil {
		return err
	}
	if !present {
		return t.v.fail("table at %d: union type %d without value", t.pos, typ)
	}
	return nil
}

// Fail builds a verification error for schema-level checks made by callers.
func (t Table) Fail(format string, args ...any) error {
	return t.v.fail("table at %d: %s", t.pos, fmt.Sprintf(format, args...))
}
