// Package arena implements a fixed-capacity memory arena with explicit
// allocation, misuse detection, and leak accounting.
//
// # Overview
//
// An Arena owns a single fixed byte region and carves it into chunks, each
// prefixed by a 16-byte header recording the payload size and an allocation
// flag. Chunks tile the region exactly: the end of one chunk is the start of
// the next, with no gaps and no overlap. The engine provides:
//
//   - Alloc(size): first-fit search over the chunk chain, splitting an
//     oversized free chunk or donating its excess when the remainder would be
//     too small to ever be reused
//   - Free(p): pointer validation (bounds, alignment, header sanity, double
//     free) followed by coalescing with both address-adjacent neighbors
//   - LeakCheck: a read-only scan reporting chunks still allocated
//   - Chunks/Walk: introspection for dump tooling and tests
//
// # Usage Example
//
//	a, err := arena.New()
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	p, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(p, payload)
//
//	if err := a.Free(p); err != nil {
//	    // A non-nil error from Free is a *Fault: the caller has already
//	    // corrupted the contract and the arena cannot be trusted.
//	    log.Fatal(err)
//	}
//
// # Failure Model
//
// Allocation failures (ErrZeroSize, ErrNoSpace) are recoverable: Alloc
// returns a nil slice and changes no state. Every integrity violation
// detected by Free returns a *Fault wrapping ErrBadPointer or ErrDoubleFree.
// Faults are unrecoverable by design: the arena performs no internal repair
// and callers must treat further use of the instance as undefined. The
// pkg/malloc facade maps faults to process termination with a documented
// status code.
//
// # Cost Model
//
// Alloc is O(n) in the number of chunks (first-fit scan from the arena
// start). Free is also O(n): chunks carry no back-pointer, so the backward
// coalesce locates the predecessor by rescanning the chain from the start.
//
// # Thread Safety
//
// Arena instances are NOT goroutine-safe. All operations mutate shared chunk
// state without synchronization; callers that need concurrent access must
// impose external mutual exclusion around every call.
//
// # Related Packages
//
//   - github.com/memarena/memarena/pkg/malloc: process-global drop-in facade
//   - github.com/memarena/memarena/arena/printer: chunk-map rendering
//   - github.com/memarena/memarena/internal/layout: header byte format
package arena
