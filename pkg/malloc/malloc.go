// Package malloc is the drop-in, process-global face of the allocator: a
// lazily initialized default arena behind an allocate/deallocate pair with
// call-site diagnostics, fail-fast termination on misuse, and a leak report
// at normal process exit.
//
// Alloc failures are recoverable and reported by a nil return plus a line on
// stderr naming the reason and the caller's file:line. Free failures are
// not: any pointer-integrity violation means client code has already
// corrupted the contract, so Free prints the diagnostic and terminates the
// process with StatusFault rather than letting callers continue over a
// broken arena. Programs that want error values instead of termination
// should use the arena package directly.
//
// Like the arena it fronts, this package is not goroutine-safe.
package malloc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/memarena/memarena/arena"
	"github.com/memarena/memarena/internal/atexit"
)

// StatusFault is the process exit status reserved for allocator-detected
// corruption: bad pointers, misaligned pointers, and double frees. It is
// distinct from normal exit and from the usual failure status 1.
const StatusFault = 2

var (
	once sync.Once
	def  *arena.Arena
)

// ensure lazily builds the default arena and registers the leak report to
// run once at normal process termination.
func ensure() {
	once.Do(func() {
		a, err := arena.New(arena.WithDiagnostics(io.Discard))
		if err != nil {
			// Only reachable if the compile-time geometry is broken.
			panic(err)
		}
		def = a
		atexit.Register(reportLeaks)
	})
}

// Default returns the process-wide arena, initializing it if needed. Exposed
// for drivers and tooling that want introspection over the same instance the
// package-level calls use.
func Default() *arena.Arena {
	ensure()
	return def
}

// Alloc reserves size bytes from the default arena. On failure it prints a
// diagnostic naming the caller and returns nil; the arena is unchanged.
func Alloc(size int) []byte {
	ensure()
	p, err := def.Alloc(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "malloc: unable to allocate %d bytes (%s)\n", size, callsite())
		return nil
	}
	return p
}

// Free releases a payload previously returned by Alloc. Freeing nil is a
// no-op. Any integrity violation prints a diagnostic naming the caller and
// terminates the process with StatusFault; Free does not return on that
// path, and the leak report is skipped because the arena can no longer be
// scanned safely.
func Free(p []byte) {
	ensure()
	err := def.Free(p)
	if err == nil {
		return
	}
	reason := "inappropriate pointer"
	if errors.Is(err, arena.ErrDoubleFree) {
		reason = "double free"
	}
	fmt.Fprintf(os.Stderr, "free: %s (%s)\n", reason, callsite())
	atexit.Exit(StatusFault)
}

// LeakReport scans the default arena for chunks still allocated.
func LeakReport() arena.LeakReport {
	ensure()
	return def.LeakCheck()
}

// Reset replaces the default arena with a fresh one, releasing the old
// mapping. For test drivers; the leak report hook stays registered and scans
// whichever arena is current at exit.
func Reset() {
	ensure()
	old := def
	a, err := arena.New(arena.WithDiagnostics(io.Discard))
	if err != nil {
		panic(err)
	}
	def = a
	_ = old.Close()
}

// reportLeaks is the atexit hook: one read-only scan, a summary on stderr
// only when something is still allocated, never fatal.
func reportLeaks() {
	r := def.LeakCheck()
	if r.Objects > 0 {
		fmt.Fprintf(os.Stderr, "malloc: %d bytes leaked in %d objects.\n", r.Bytes, r.Objects)
	}
}

// callsite names the file:line of the package's caller.
func callsite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
