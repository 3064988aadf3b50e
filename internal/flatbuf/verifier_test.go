package flatbuf

import (
	"errors"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIdentifier = "TST1"

// buildSample builds a root table {0: name string, 1: values [int32], 2: child table {0: int32}}.
func buildSample(t *testing.T) []byte {
	t.Helper()
	b := flatbuffers.NewBuilder(64)

	b.StartObject(1)
	b.PrependInt32Slot(0, 7, 0)
	child := b.EndObject()

	name := b.CreateString("sample")
	b.StartVector(4, 3, 4)
	for _, v := range []int32{3, 2, 1} {
		b.PrependInt32(v)
	}
	values := b.EndVector(3)

	b.StartObject(3)
	b.PrependUOffsetTSlot(0, name, 0)
	b.PrependUOffsetTSlot(1, values, 0)
	b.PrependUOffsetTSlot(2, child, 0)
	root := b.EndObject()
	b.FinishWithFileIdentifier(root, []byte(testIdentifier))
	return b.FinishedBytes()
}

func verifySample(buf []byte) error {
	v := NewVerifier(buf)
	root, err := v.Root(testIdentifier)
	if err != nil {
		return err
	}
	if err := root.String(0); err != nil {
		return err
	}
	if _, _, _, err := root.Vector(1, 4); err != nil {
		return err
	}
	_, err = root.Child(2, func(c Table) error {
		return c.Scalar(0, 4)
	})
	return err
}

func TestVerifierAcceptsWellFormed(t *testing.T) {
	buf := buildSample(t)
	require.NoError(t, verifySample(buf))
	assert.True(t, HasIdentifier(buf, testIdentifier))
}

func TestVerifierRejectsIdentifier(t *testing.T) {
	buf := buildSample(t)
	copy(buf[4:8], "XXXX")
	err := verifySample(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestVerifierRejectsShortBuffer(t *testing.T) {
	err := verifySample([]byte{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerifierRejectsTruncation(t *testing.T) {
	buf := buildSample(t)
	for n := len(buf) - 1; n >= 8; n -= 3 {
		assert.Error(t, verifySample(buf[:n]), "truncated to %d bytes", n)
	}
}

func TestVerifierRejectsRootOutOfRange(t *testing.T) {
	buf := buildSample(t)
	buf[0], buf[1], buf[2], buf[3] = 0xff, 0xff, 0xff, 0x7f
	assert.Error(t, verifySample(buf))
}

func TestVerifierDepthLimit(t *testing.T) {
	buf := buildSample(t)
	v := NewVerifier(buf).WithLimits(0, DefaultMaxTables)
	root, err := v.Root(testIdentifier)
	require.NoError(t, err)
	_, err = root.Child(2, func(Table) error { return nil })
	assert.Error(t, err)
}

func TestVerifierTableLimit(t *testing.T) {
	buf := buildSample(t)
	v := NewVerifier(buf).WithLimits(DefaultMaxDepth, 1)
	root, err := v.Root(testIdentifier)
	require.NoError(t, err)
	_, err = root.Child(2, func(Table) error { return nil })
	assert.Error(t, err)
}

func TestVectorRange(t *testing.T) {
	buf := buildSample(t)
	n := flatbuffers.GetUOffsetT(buf)
	tab := &flatbuffers.Table{Bytes: buf, Pos: n}

	start, l, ok := VectorRange(tab, 1)
	require.True(t, ok)
	assert.Equal(t, 3, l)
	assert.Equal(t, int32(1), flatbuffers.GetInt32(buf[start:]))

	_, _, ok = VectorRange(tab, 5)
	assert.False(t, ok)
}
