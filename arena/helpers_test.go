package arena

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// newArena builds an arena for tests with diagnostics silenced, and closes
// it when the test finishes.
func newArena(t *testing.T, opts ...Option) *Arena {
	t.Helper()
	opts = append([]Option{WithDiagnostics(io.Discard)}, opts...)
	a, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// mustAlloc allocates or fails the test.
func mustAlloc(t *testing.T, a *Arena, size int) []byte {
	t.Helper()
	p, err := a.Alloc(size)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// requireInvariants asserts the arena's structural invariants hold.
func requireInvariants(t *testing.T, a *Arena) {
	t.Helper()
	require.NoError(t, a.CheckInvariants())
}
