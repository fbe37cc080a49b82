// Package layout houses the low-level chunk format shared by every component
// that touches arena memory. The goal is to keep the byte-level encoding in
// one place, allocation-free, and independent from the public API so higher
// level packages can present the data in a more ergonomic form.
package layout

const (
	// DefaultCapacity is the arena size used when no explicit capacity is
	// configured. A single memory page.
	DefaultCapacity = 4096

	// HeaderSize is the number of bytes used by the chunk header preceding
	// every region of the arena (free or in-use).
	HeaderSize = 16

	// Alignment is the required alignment of chunk payloads. Every payload
	// size is a multiple of 8 and every payload starts on an 8-byte boundary.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries
	// (Alignment - 1).
	AlignmentMask = Alignment - 1

	// MinChunkSize is the smallest payload a split may leave behind as a new
	// free chunk. When carving an allocation out of a free chunk would leave
	// less than a header plus MinChunkSize, the whole chunk is handed over
	// instead, donating the excess to the caller rather than creating a
	// sliver too small to ever be reused.
	MinChunkSize = 16

	// Chunk header field offsets.
	SizeFieldOffset = 0  // uint64, payload size in bytes
	FlagFieldOffset = 8  // uint32, allocation flag
	SpareOffset     = 12 // uint32, unused, always zero
)

// Allocation flag values stored at FlagFieldOffset.
const (
	FlagFree      = 0
	FlagAllocated = 1
)
