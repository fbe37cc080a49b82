package layout

import "fmt"

// Chunk represents a single region (free or in-use) within the arena.
//
// Chunk header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Payload size in bytes. Always a positive multiple of 8
//	              for a well-formed chunk; excludes the header itself.
//	0x08    4     Allocation flag. 0 => free, nonzero => allocated.
//	0x0C    4     Spare, always written as zero.
type Chunk struct {
	Offset    int    // Offset of the header relative to the arena start
	Size      int    // Payload size in bytes
	Allocated bool   // True when the chunk is marked in use
	Payload   []byte // Payload bytes (alias of the arena buffer)
}

// Total returns the full extent of the chunk including its header.
func (c Chunk) Total() int {
	return HeaderSize + c.Size
}

// PayloadOffset returns the offset of the first payload byte.
func (c Chunk) PayloadOffset() int {
	return c.Offset + HeaderSize
}

// PutHeader writes a complete chunk header at off, including the spare field.
func PutHeader(b []byte, off, size int, allocated bool) {
	PutU64(b, off+SizeFieldOffset, uint64(size))
	flag := uint32(FlagFree)
	if allocated {
		flag = FlagAllocated
	}
	PutU32(b, off+FlagFieldOffset, flag)
	PutU32(b, off+SpareOffset, 0)
}

// ChunkSize reads the payload size field of the header at off. The caller
// must have validated the header; the raw field is truncated to int.
func ChunkSize(b []byte, off int) int {
	return int(ReadU64(b, off+SizeFieldOffset))
}

// SetChunkSize overwrites the payload size field of the header at off.
func SetChunkSize(b []byte, off, size int) {
	PutU64(b, off+SizeFieldOffset, uint64(size))
}

// ChunkAllocated reads the allocation flag of the header at off. Any nonzero
// flag counts as allocated.
func ChunkAllocated(b []byte, off int) bool {
	return ReadU32(b, off+FlagFieldOffset) != FlagFree
}

// SetChunkAllocated overwrites the allocation flag of the header at off.
func SetChunkAllocated(b []byte, off int, allocated bool) {
	flag := uint32(FlagFree)
	if allocated {
		flag = FlagAllocated
	}
	PutU32(b, off+FlagFieldOffset, flag)
}

// NextChunk decodes the chunk at off and returns the chunk plus the offset of
// the chunk that follows it. The caller must ensure off points to the start
// of a chunk header.
func NextChunk(b []byte, off int) (Chunk, int, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return Chunk{}, 0, fmt.Errorf("chunk at %d: %w", off, ErrTruncated)
	}
	size := ReadU64(b, off+SizeFieldOffset)
	if size == 0 || size%Alignment != 0 || size > uint64(len(b)) {
		return Chunk{}, 0, fmt.Errorf("chunk at %d: size %d: %w", off, size, ErrBadChunkSize)
	}
	next := off + HeaderSize + int(size)
	if next > len(b) {
		return Chunk{}, 0, fmt.Errorf("chunk at %d: size %d: %w", off, size, ErrTruncated)
	}
	return Chunk{
		Offset:    off,
		Size:      int(size),
		Allocated: ChunkAllocated(b, off),
		Payload:   b[off+HeaderSize : next],
	}, next, nil
}
