package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 64)

	PutHeader(buf, 0, 32, true)
	assert.Equal(t, 32, ChunkSize(buf, 0))
	assert.True(t, ChunkAllocated(buf, 0))

	PutHeader(buf, 48, 8, false)
	assert.Equal(t, 8, ChunkSize(buf, 48))
	assert.False(t, ChunkAllocated(buf, 48))
}

func TestPutHeaderZeroesSpareField(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0xFF
	}

	PutHeader(buf, 0, 16, true)
	assert.Zero(t, ReadU32(buf, SpareOffset))
}

func TestSetChunkFields(t *testing.T) {
	buf := make([]byte, 32)
	PutHeader(buf, 0, 16, false)

	SetChunkSize(buf, 0, 8)
	assert.Equal(t, 8, ChunkSize(buf, 0))

	SetChunkAllocated(buf, 0, true)
	assert.True(t, ChunkAllocated(buf, 0))
	SetChunkAllocated(buf, 0, false)
	assert.False(t, ChunkAllocated(buf, 0))
}

func TestNextChunkWalksTiling(t *testing.T) {
	// Two chunks tiling a 64-byte buffer: 16+16 and 16+16.
	buf := make([]byte, 64)
	PutHeader(buf, 0, 16, true)
	PutHeader(buf, 32, 16, false)

	c, next, err := NextChunk(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Offset)
	assert.Equal(t, 16, c.Size)
	assert.True(t, c.Allocated)
	assert.Equal(t, 32, c.Total())
	assert.Equal(t, HeaderSize, c.PayloadOffset())
	assert.Len(t, c.Payload, 16)
	assert.Equal(t, 32, next)

	c, next, err = NextChunk(buf, next)
	require.NoError(t, err)
	assert.Equal(t, 32, c.Offset)
	assert.False(t, c.Allocated)
	assert.Equal(t, 64, next)
}

func TestNextChunkRejectsBadSizes(t *testing.T) {
	tests := []struct {
		name string
		size uint64
		want error
	}{
		{"zero size", 0, ErrBadChunkSize},
		{"unaligned size", 12, ErrBadChunkSize},
		{"size beyond buffer", 4096, ErrBadChunkSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 64)
			PutU64(buf, SizeFieldOffset, tt.size)
			_, _, err := NextChunk(buf, 0)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNextChunkRejectsTruncation(t *testing.T) {
	buf := make([]byte, 64)

	// Header would run past the end of the buffer.
	_, _, err := NextChunk(buf, 56)
	require.ErrorIs(t, err, ErrTruncated)

	// Declared payload runs past the end of the buffer.
	PutHeader(buf, 0, 56, false)
	_, _, err = NextChunk(buf, 0)
	require.ErrorIs(t, err, ErrTruncated)
}
