// Package membuf provides the fixed backing region for an arena: a
// page-aligned anonymous mapping on unix platforms, a plain heap slice
// elsewhere. Callers receive exactly one Buffer and hold it for the life of
// the arena.
package membuf

// Buffer is a fixed-size byte region plus the routine that releases it.
type Buffer struct {
	data    []byte
	release func() error
}

// Bytes returns the backing bytes. The slice stays valid until Close.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the size of the region in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Close releases the region. Closing twice is a no-op.
func (b *Buffer) Close() error {
	if b.data == nil {
		return nil
	}
	b.data = nil
	if b.release == nil {
		return nil
	}
	return b.release()
}
