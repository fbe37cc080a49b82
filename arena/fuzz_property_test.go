package arena

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRandomOpsPreserveInvariants drives the arena through a long random
// mix of allocations and frees, checking the structural invariants after
// every single operation. Fixed seed so failures reproduce.
func TestRandomOpsPreserveInvariants(t *testing.T) {
	a := newArena(t)
	rng := rand.New(rand.NewSource(42))

	type live struct {
		p    []byte
		fill byte
	}
	var held []live

	for step := 0; step < 500; step++ {
		if len(held) == 0 || (rng.Intn(2) == 0 && len(held) < 64) {
			size := 1 + rng.Intn(200)
			p, err := a.Alloc(size)
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
			} else {
				fill := byte(step)
				for i := range p {
					p[i] = fill
				}
				held = append(held, live{p, fill})
			}
		} else {
			i := rng.Intn(len(held))
			// The payload must be intact right up to the free.
			for j, b := range held[i].p {
				require.Equal(t, held[i].fill, b,
					"step %d: payload corrupted at byte %d", step, j)
			}
			require.NoError(t, a.Free(held[i].p), "step %d", step)
			held[i] = held[len(held)-1]
			held = held[:len(held)-1]
		}
		require.NoError(t, a.CheckInvariants(), "step %d", step)
	}

	for _, l := range held {
		require.NoError(t, a.Free(l.p))
	}
	requireSingleFreeChunk(t, a)
}

// TestRandomOpsSmallArena squeezes the same mix through a tight arena so
// the out-of-memory and donate paths fire constantly.
func TestRandomOpsSmallArena(t *testing.T) {
	a := newArena(t, WithCapacity(256))
	rng := rand.New(rand.NewSource(7))

	var held [][]byte
	for step := 0; step < 300; step++ {
		if len(held) == 0 || rng.Intn(2) == 0 {
			p, err := a.Alloc(1 + rng.Intn(64))
			if err == nil {
				held = append(held, p)
			} else {
				require.ErrorIs(t, err, ErrNoSpace)
			}
		} else {
			i := rng.Intn(len(held))
			require.NoError(t, a.Free(held[i]))
			held[i] = held[len(held)-1]
			held = held[:len(held)-1]
		}
		require.NoError(t, a.CheckInvariants(), "step %d", step)
	}

	for _, p := range held {
		require.NoError(t, a.Free(p))
	}
	requireSingleFreeChunk(t, a)
}
