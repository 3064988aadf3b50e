package model

// Buffer is the byte arena a Model owns exclusively. It is filled once at
// construction and never written afterwards.
type Buffer struct {
	data []byte
}

// newBuffer takes ownership of data. Callers must not retain data.
func newBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// copyBuffer allocates a Buffer holding a private copy of src.
func copyBuffer(src []byte) *Buffer {
	data := make([]byte, len(src))
	copy(data, src)
	return newBuffer(data)
}

// Len returns the size of the arena in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// resolve returns the bytes covered by v. The slice is capped so appends
// cannot reach past the view.
func (b *Buffer) resolve(v View) []byte {
	if b == nil || !v.Valid() {
		return nil
	}
	end := v.Offset + v.Length
	return b.data[v.Offset:end:end]
}

// View is a non-copying reference into a Model's Buffer: an offset and a
// length resolved against the owning Model at read time.
type View struct {
	Offset int
	Length int
}

// Valid reports whether the view refers to any data.
func (v View) Valid() bool {
	return v.Length > 0 && v.Offset >= 0
}
