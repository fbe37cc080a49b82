package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memarena/memarena/internal/layout"
)

// requireSingleFreeChunk asserts the arena has fully coalesced back to its
// initial state: one free chunk spanning the whole capacity.
func requireSingleFreeChunk(t *testing.T, a *Arena) {
	t.Helper()
	chunks := a.Chunks()
	require.Len(t, chunks, 1)
	require.False(t, chunks[0].Allocated)
	require.Equal(t, a.Capacity()-layout.HeaderSize, chunks[0].PayloadSize)
	requireInvariants(t, a)
}

func TestCoalesceForward(t *testing.T) {
	a := newArena(t)

	p1 := mustAlloc(t, a, 32)
	p2 := mustAlloc(t, a, 32)
	mustAlloc(t, a, 32) // pin so p2 does not merge with the arena tail

	// Free the higher chunk first, then the lower one: the lower free must
	// absorb its now-free successor.
	require.NoError(t, a.Free(p2))
	require.NoError(t, a.Free(p1))

	chunks := a.Chunks()
	require.Len(t, chunks, 3)
	assert.False(t, chunks[0].Allocated)
	assert.Equal(t, 32+layout.HeaderSize+32, chunks[0].PayloadSize)
	assert.Equal(t, uint64(1), a.Stats().ForwardCoalesces)
	requireInvariants(t, a)
}

func TestCoalesceBackward(t *testing.T) {
	a := newArena(t)

	p1 := mustAlloc(t, a, 32)
	p2 := mustAlloc(t, a, 32)
	mustAlloc(t, a, 32)

	// Free low then high: the freed chunk must merge into its predecessor.
	require.NoError(t, a.Free(p1))
	require.NoError(t, a.Free(p2))

	chunks := a.Chunks()
	require.Len(t, chunks, 3)
	assert.Equal(t, 32+layout.HeaderSize+32, chunks[0].PayloadSize)
	assert.Equal(t, uint64(1), a.Stats().BackwardCoalesces)
	requireInvariants(t, a)
}

func TestCoalesceThreeChunksAnyOrder(t *testing.T) {
	orders := map[string][3]int{
		"low-mid-high": {0, 1, 2},
		"high-mid-low": {2, 1, 0},
		"mid-low-high": {1, 0, 2},
		"mid-high-low": {1, 2, 0},
		"low-high-mid": {0, 2, 1},
		"high-low-mid": {2, 0, 1},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			a := newArena(t)
			ps := [][]byte{
				mustAlloc(t, a, 48),
				mustAlloc(t, a, 48),
				mustAlloc(t, a, 48),
			}
			pin := mustAlloc(t, a, 16)

			for _, i := range order {
				require.NoError(t, a.Free(ps[i]))
				requireInvariants(t, a)
			}

			// The three spans plus their two interior headers form one chunk.
			chunks := a.Chunks()
			require.Len(t, chunks, 3)
			assert.False(t, chunks[0].Allocated)
			assert.Equal(t, 48*3+layout.HeaderSize*2, chunks[0].PayloadSize)

			// The combined span satisfies a request no original span could.
			p, err := a.Alloc(100)
			require.NoError(t, err)
			off, err := a.OffsetOf(p)
			require.NoError(t, err)
			assert.Equal(t, layout.HeaderSize, off)

			require.NoError(t, a.Free(p))
			require.NoError(t, a.Free(pin))
			requireSingleFreeChunk(t, a)
		})
	}
}

func TestFreeLastChunkMergesWithArenaTail(t *testing.T) {
	a := newArena(t)

	p := mustAlloc(t, a, 24)
	require.NoError(t, a.Free(p))
	requireSingleFreeChunk(t, a)
}

func TestRepeatedAllocFreeReturnsToSingleChunk(t *testing.T) {
	a := newArena(t)

	// 120 one-byte allocations held live, then freed in allocation order.
	ps := make([][]byte, 120)
	for i := range ps {
		ps[i] = mustAlloc(t, a, 1)
	}
	for _, p := range ps {
		require.NoError(t, a.Free(p))
	}
	requireSingleFreeChunk(t, a)
}

func TestFreeInReverseOrderReturnsToSingleChunk(t *testing.T) {
	a := newArena(t)

	ps := make([][]byte, 120)
	for i := range ps {
		ps[i] = mustAlloc(t, a, 1)
	}
	for i := len(ps) - 1; i >= 0; i-- {
		require.NoError(t, a.Free(ps[i]))
	}
	requireSingleFreeChunk(t, a)
}
