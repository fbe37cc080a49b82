// Package atexit maintains a registry of hooks to run at normal process
// termination, mirroring the C library's atexit mechanism. The allocator
// registers its leak report here so it fires when a driver exits cleanly.
//
// Hooks run in LIFO order, at most once per process. A nonzero exit code
// means the process is terminating because allocator state can no longer be
// trusted, so Exit skips the hooks entirely on that path: a leak scan over a
// corrupt arena would itself read garbage headers.
//
// Like the allocator it serves, this package is not goroutine-safe.
package atexit

import "os"

var (
	hooks []func()
	ran   bool
)

// Register adds fn to the set of hooks run at normal termination.
func Register(fn func()) {
	hooks = append(hooks, fn)
}

// Run executes the registered hooks in LIFO order. Subsequent calls are
// no-ops. Mains that return normally instead of calling Exit should defer
// Run from their top frame.
func Run() {
	if ran {
		return
	}
	ran = true
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Exit terminates the process with the given status code. Hooks run only
// when code is zero; fatal paths exit immediately.
func Exit(code int) {
	if code == 0 {
		Run()
	}
	os.Exit(code)
}
