package model

import (
	"github.com/born-ml/graphlite/internal/status"
)

// Export copies the bytes an imported Model was built from into dst and
// returns dst[:n]. When dst is nil a buffer of exactly the required length
// is allocated. A non-nil dst shorter than the model fails with
// BufferTooSmall and is left untouched.
//
// Exporting the same Model twice yields identical bytes.
func Export(m *Model, dst []byte) ([]byte, error) {
	if m == nil {
		return nil, status.New(status.NullInput, "no model")
	}
	if !m.Exportable() {
		return nil, status.New(status.NotExportable,
			"%s model %q has no persisted form; marshal it first", m.source, m.name)
	}

	n := m.buf.Len()
	if dst == nil {
		dst = make([]byte, n)
	}
	if len(dst) < n {
		return nil, status.New(status.BufferTooSmall, "need %d bytes, have %d", n, len(dst))
	}
	copy(dst, m.buf.data)
	return dst[:n], nil
}

// ExportSize returns the number of bytes Export writes for m, or 0 when m
// is not exportable.
func ExportSize(m *Model) int {
	if m == nil || !m.Exportable() {
		return 0
	}
	return m.buf.Len()
}
