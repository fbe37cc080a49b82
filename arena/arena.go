package arena

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/memarena/memarena/internal/layout"
	"github.com/memarena/memarena/internal/membuf"
)

// Runtime flag for the per-operation allocation trace - controlled by the
// MEMARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMARENA_LOG_ALLOC") != ""

// Arena is a fixed-capacity allocator over a single byte region. The zero
// value is not usable; construct instances with New. See the package
// documentation for the failure and concurrency model.
type Arena struct {
	buf     []byte
	backing *membuf.Buffer // nil when running over a caller-supplied region
	diag    io.Writer
	stats   Stats
}

// New constructs an Arena over a fresh anonymous mapping (or over the region
// given via WithBacking) and formats it as one free chunk spanning the whole
// capacity.
func New(opts ...Option) (*Arena, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.capacity < layout.HeaderSize+layout.Alignment || !layout.Aligned(cfg.capacity) {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadCapacity, cfg.capacity)
	}

	a := &Arena{diag: cfg.diag}
	if cfg.backing != nil {
		a.buf = cfg.backing
	} else {
		b, err := membuf.Alloc(cfg.capacity)
		if err != nil {
			return nil, err
		}
		a.backing = b
		a.buf = b.Bytes()
	}

	layout.PutHeader(a.buf, 0, cfg.capacity-layout.HeaderSize, false)
	return a, nil
}

// Close releases the arena's mapping. Only regions New mapped itself are
// released; caller-supplied backing stays with the caller. Using the arena
// after Close is undefined.
func (a *Arena) Close() error {
	a.buf = nil
	if a.backing == nil {
		return nil
	}
	return a.backing.Close()
}

// Capacity returns the total arena size in bytes, headers included.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Alloc reserves size bytes and returns the payload as a slice aliasing the
// arena. The slice's length is the granted payload: the request rounded up
// to the alignment, plus any donated excess when splitting the chosen chunk
// would have left a sliver too small to reuse. The returned slice's capacity
// equals its length, so writes through it cannot reach the next header.
//
// Alloc fails with ErrZeroSize for non-positive sizes and ErrNoSpace when no
// free chunk can satisfy the padded request; both leave the arena untouched
// and return a nil slice.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		a.stats.FailedAllocs++
		a.diagf("arena: unable to allocate %d bytes\n", size)
		return nil, ErrZeroSize
	}
	padded := layout.Align8(size)

	// First-fit: scan chunks in address order, take the first free one that
	// is large enough.
	off := 0
	for off < len(a.buf) {
		csz := layout.ChunkSize(a.buf, off)
		if !layout.ChunkAllocated(a.buf, off) && csz >= padded {
			return a.take(off, csz, padded), nil
		}
		off += layout.HeaderSize + csz
	}

	a.stats.FailedAllocs++
	a.diagf("arena: unable to allocate %d bytes\n", size)
	return nil, ErrNoSpace
}

// take marks the free chunk at off allocated, splitting it first when the
// remainder can hold a header plus a minimally useful free chunk. Otherwise
// the whole chunk is donated to the caller: a smaller remainder could never
// satisfy any request and would fragment the arena permanently.
func (a *Arena) take(off, csz, padded int) []byte {
	if csz >= padded+layout.HeaderSize+layout.MinChunkSize {
		rest := csz - padded - layout.HeaderSize
		layout.PutHeader(a.buf, off+layout.HeaderSize+padded, rest, false)
		layout.SetChunkSize(a.buf, off, padded)
		a.stats.Splits++
		a.tracef("alloc: split chunk@%d into %d + %d", off, padded, rest)
		csz = padded
	} else {
		a.tracef("alloc: donate chunk@%d size %d for request %d", off, csz, padded)
	}
	layout.SetChunkAllocated(a.buf, off, true)

	a.stats.Allocs++
	a.stats.BytesInUse += csz
	if a.stats.BytesInUse > a.stats.PeakInUse {
		a.stats.PeakInUse = a.stats.BytesInUse
	}

	lo := off + layout.HeaderSize
	return a.buf[lo : lo+csz : lo+csz]
}

// Free releases a payload slice previously returned by Alloc and coalesces
// the chunk with its free neighbors. Freeing nil is a no-op.
//
// Any integrity violation - a pointer outside the arena, a misaligned
// pointer, a pointer whose presumed header fails sanity checks, or a chunk
// already free - returns a *Fault and leaves the arena in whatever state the
// caller's misuse produced. See the package documentation.
func (a *Arena) Free(p []byte) error {
	if p == nil {
		return nil
	}

	off, err := a.payloadOffset(p)
	if err != nil {
		return err
	}

	// The presumed header sits immediately before the payload.
	if off < layout.HeaderSize {
		return badPointer(off, "no room for a chunk header")
	}
	hdr := off - layout.HeaderSize
	size := layout.ChunkSize(a.buf, hdr)
	if size <= 0 || !layout.Aligned(size) || hdr+layout.HeaderSize+size > len(a.buf) {
		return badPointer(off, fmt.Sprintf("corrupt chunk header (size %d)", size))
	}
	if !layout.ChunkAllocated(a.buf, hdr) {
		return &Fault{Kind: ErrDoubleFree, Offset: off, Detail: "chunk is already free"}
	}

	layout.SetChunkAllocated(a.buf, hdr, false)
	a.stats.Frees++
	a.stats.BytesInUse -= size
	a.tracef("free: chunk@%d size %d", hdr, size)

	// Coalesce forward: absorb the following chunk when it is free.
	next := hdr + layout.HeaderSize + size
	if next < len(a.buf) && !layout.ChunkAllocated(a.buf, next) {
		size += layout.HeaderSize + layout.ChunkSize(a.buf, next)
		layout.SetChunkSize(a.buf, hdr, size)
		a.stats.ForwardCoalesces++
		a.tracef("free: merged forward into chunk@%d, now %d", hdr, size)
	}

	// Coalesce backward: headers carry no back-pointer, so the predecessor
	// is found by rescanning the chain from the arena start. O(n) per free.
	prev := -1
	for cur := 0; cur < hdr; {
		n := cur + layout.HeaderSize + layout.ChunkSize(a.buf, cur)
		if n == hdr {
			prev = cur
			break
		}
		cur = n
	}
	if prev >= 0 && !layout.ChunkAllocated(a.buf, prev) {
		merged := layout.ChunkSize(a.buf, prev) + layout.HeaderSize + size
		layout.SetChunkSize(a.buf, prev, merged)
		a.stats.BackwardCoalesces++
		a.tracef("free: merged backward into chunk@%d, now %d", prev, merged)
	}

	return nil
}

// payloadOffset maps a payload slice back to its arena-relative offset,
// validating bounds and alignment.
func (a *Arena) payloadOffset(p []byte) (int, *Fault) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	if ptr < base || ptr >= base+uintptr(len(a.buf)) {
		return 0, &Fault{Kind: ErrBadPointer, Offset: -1, Detail: "pointer outside arena"}
	}
	off := int(ptr - base)
	if !layout.Aligned(off) {
		return 0, badPointer(off, "misaligned pointer")
	}
	return off, nil
}

// LeakCheck scans the arena once and reports every chunk still allocated.
// The scan is read-only and never mutates chunk state.
func (a *Arena) LeakCheck() LeakReport {
	var r LeakReport
	for off := 0; off < len(a.buf); {
		size := layout.ChunkSize(a.buf, off)
		if layout.ChunkAllocated(a.buf, off) {
			r.Objects++
			r.Bytes += size
		}
		off += layout.HeaderSize + size
	}
	return r
}

// Walk visits every chunk in address order until fn returns false.
func (a *Arena) Walk(fn func(ChunkInfo) bool) {
	for off := 0; off < len(a.buf); {
		size := layout.ChunkSize(a.buf, off)
		info := ChunkInfo{
			Offset:        off,
			PayloadSize:   size,
			TotalSize:     layout.HeaderSize + size,
			Allocated:     layout.ChunkAllocated(a.buf, off),
			PayloadOffset: off + layout.HeaderSize,
		}
		if !fn(info) {
			return
		}
		off += info.TotalSize
	}
}

// Chunks returns a snapshot of every chunk in address order.
func (a *Arena) Chunks() []ChunkInfo {
	var out []ChunkInfo
	a.Walk(func(c ChunkInfo) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Stats returns the cumulative operation counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// FreeBytes returns the payload bytes currently held by free chunks. This is
// the best case for future allocation; fragmentation may make a single
// request of this size fail.
func (a *Arena) FreeBytes() int {
	total := 0
	a.Walk(func(c ChunkInfo) bool {
		if !c.Allocated {
			total += c.PayloadSize
		}
		return true
	})
	return total
}

// OffsetOf maps a payload slice returned by Alloc to its arena-relative
// payload offset, for arena-resident data structures that link chunks by
// offset rather than by slice.
func (a *Arena) OffsetOf(p []byte) (int, error) {
	off, flt := a.payloadOffset(p)
	if flt != nil {
		return 0, flt
	}
	if _, err := a.chunkAt(off); err != nil {
		return 0, err
	}
	return off, nil
}

// At returns the payload of the allocated chunk whose payload starts at the
// given arena-relative offset. The inverse of OffsetOf.
func (a *Arena) At(off int) ([]byte, error) {
	c, err := a.chunkAt(off)
	if err != nil {
		return nil, err
	}
	return a.buf[off : off+c.PayloadSize : off+c.PayloadSize], nil
}

// chunkAt validates that off is the payload offset of an allocated chunk.
func (a *Arena) chunkAt(off int) (ChunkInfo, error) {
	if off < layout.HeaderSize || off >= len(a.buf) {
		return ChunkInfo{}, badPointer(off, "offset outside arena")
	}
	if !layout.Aligned(off) {
		return ChunkInfo{}, badPointer(off, "misaligned offset")
	}
	hdr := off - layout.HeaderSize
	size := layout.ChunkSize(a.buf, hdr)
	if size <= 0 || !layout.Aligned(size) || hdr+layout.HeaderSize+size > len(a.buf) {
		return ChunkInfo{}, badPointer(off, fmt.Sprintf("corrupt chunk header (size %d)", size))
	}
	if !layout.ChunkAllocated(a.buf, hdr) {
		return ChunkInfo{}, badPointer(off, "chunk is not allocated")
	}
	return ChunkInfo{
		Offset:        hdr,
		PayloadSize:   size,
		TotalSize:     layout.HeaderSize + size,
		Allocated:     true,
		PayloadOffset: off,
	}, nil
}

// CheckInvariants verifies the structural invariants that must hold after
// every operation that returns normally: chunks tile the capacity exactly,
// every payload size is a positive aligned value, and no two adjacent chunks
// are both free. Intended for tests.
func (a *Arena) CheckInvariants() error {
	off := 0
	prevFree := false
	inUse := 0
	for off < len(a.buf) {
		c, next, err := layout.NextChunk(a.buf, off)
		if err != nil {
			return err
		}
		if !c.Allocated && prevFree {
			return fmt.Errorf("arena: adjacent free chunks at %d", off)
		}
		if c.Allocated {
			inUse += c.Size
		}
		prevFree = !c.Allocated
		off = next
	}
	if off != len(a.buf) {
		return fmt.Errorf("arena: chunks tile %d bytes of a %d byte arena", off, len(a.buf))
	}
	if inUse != a.stats.BytesInUse {
		return fmt.Errorf("arena: stats report %d bytes in use, chunks hold %d",
			a.stats.BytesInUse, inUse)
	}
	return nil
}

func (a *Arena) diagf(format string, args ...any) {
	if a.diag != nil {
		fmt.Fprintf(a.diag, format, args...)
	}
}

func (a *Arena) tracef(format string, args ...any) {
	if logAlloc && a.diag != nil {
		fmt.Fprintf(a.diag, format+"\n", args...)
	}
}
