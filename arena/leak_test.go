package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeakCheckCleanArena(t *testing.T) {
	a := newArena(t)
	assert.Equal(t, LeakReport{}, a.LeakCheck())
}

func TestLeakCheckCountsAllocatedChunks(t *testing.T) {
	a := newArena(t)

	// The reference leak scenario: five 32-byte allocations, never freed,
	// report 5 objects and 160 payload bytes. Headers are not leaked bytes.
	for i := 0; i < 5; i++ {
		mustAlloc(t, a, 32)
	}

	r := a.LeakCheck()
	assert.Equal(t, 5, r.Objects)
	assert.Equal(t, 160, r.Bytes)
}

func TestLeakCheckAfterPartialFree(t *testing.T) {
	a := newArena(t)

	p1 := mustAlloc(t, a, 32)
	p2 := mustAlloc(t, a, 64)
	mustAlloc(t, a, 16)

	require.NoError(t, a.Free(p2))

	r := a.LeakCheck()
	assert.Equal(t, 2, r.Objects)
	assert.Equal(t, 48, r.Bytes)

	_ = p1
}

func TestLeakCheckIsReadOnly(t *testing.T) {
	a := newArena(t)
	p := mustAlloc(t, a, 32)

	before := a.Chunks()
	_ = a.LeakCheck()
	_ = a.LeakCheck()
	assert.Equal(t, before, a.Chunks())

	// The chunk is still live and freeable.
	require.NoError(t, a.Free(p))
	requireInvariants(t, a)
}

func TestLeakCheckCountsDonatedBytes(t *testing.T) {
	// A donated chunk leaks its full granted payload, not the request size.
	a := newArena(t, WithCapacity(64))
	p := mustAlloc(t, a, 24)
	require.Len(t, p, 48)

	r := a.LeakCheck()
	assert.Equal(t, 1, r.Objects)
	assert.Equal(t, 48, r.Bytes)
}
