package arena

import (
	"io"
	"os"

	"github.com/memarena/memarena/internal/layout"
)

type config struct {
	capacity int
	diag     io.Writer
	backing  []byte
}

func defaultConfig() config {
	return config{
		capacity: layout.DefaultCapacity,
		diag:     os.Stderr,
	}
}

// Option configures an Arena at construction. Geometry other than capacity
// (header size, alignment, minimum chunk) is compile-time, set in
// internal/layout.
type Option func(*config)

// WithCapacity sets the arena size in bytes. The capacity must be a multiple
// of the alignment and large enough for at least one minimal chunk.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithDiagnostics redirects failure diagnostics and the allocation trace.
// The default is os.Stderr. Passing io.Discard silences them.
func WithDiagnostics(w io.Writer) Option {
	return func(c *config) {
		c.diag = w
	}
}

// WithBacking runs the arena over a caller-supplied region instead of an
// anonymous mapping. The slice's length becomes the capacity and must meet
// the same constraints as WithCapacity. The caller keeps ownership; Close
// will not release it.
func WithBacking(buf []byte) Option {
	return func(c *config) {
		c.backing = buf
		c.capacity = len(buf)
	}
}
