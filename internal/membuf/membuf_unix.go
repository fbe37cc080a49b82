//go:build unix

package membuf

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc reserves an anonymous, zero-filled, page-aligned mapping of n bytes.
func Alloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("membuf: invalid region size %d", n)
	}
	data, err := unix.Mmap(
		-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, fmt.Errorf("membuf: mmap %d bytes: %w", n, err)
	}
	return &Buffer{
		data:    data,
		release: func() error { return unix.Munmap(data) },
	}, nil
}
