//go:build unix

package membuf

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocReturnsZeroFilledRegion(t *testing.T) {
	b, err := Alloc(4096)
	require.NoError(t, err)
	defer b.Close()

	require.Equal(t, 4096, b.Len())
	for i, v := range b.Bytes() {
		require.Zero(t, v, "byte %d not zero", i)
	}
}

func TestAllocPageAligned(t *testing.T) {
	b, err := Alloc(4096)
	require.NoError(t, err)
	defer b.Close()

	addr := uintptr(unsafe.Pointer(&b.Bytes()[0]))
	require.Zero(t, addr%4096, "mapping should start on a page boundary")
}

func TestAllocRejectsBadSize(t *testing.T) {
	_, err := Alloc(0)
	require.Error(t, err)
	_, err = Alloc(-1)
	require.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	b, err := Alloc(4096)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	require.Nil(t, b.Bytes())
}

func TestRegionIsWritable(t *testing.T) {
	b, err := Alloc(4096)
	require.NoError(t, err)
	defer b.Close()

	data := b.Bytes()
	for i := range data {
		data[i] = 0x5A
	}
	require.Equal(t, byte(0x5A), data[4095])
}
