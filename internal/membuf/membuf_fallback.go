//go:build !unix

package membuf

import "fmt"

// Alloc reserves a zero-filled heap slice when anonymous mmap is not
// available. The Go runtime aligns allocations of this size to at least
// 8 bytes, which is all the arena layout requires.
func Alloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("membuf: invalid region size %d", n)
	}
	return &Buffer{data: make([]byte, n)}, nil
}
