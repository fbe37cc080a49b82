package layout

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a chunk.
	ErrTruncated = errors.New("layout: truncated arena")
	// ErrBadChunkSize indicates a header carried a size that is zero, not a
	// multiple of the alignment, or beyond the end of the arena.
	ErrBadChunkSize = errors.New("layout: bad chunk size")
)
