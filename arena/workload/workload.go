// Package workload implements the five stress patterns used to exercise and
// time the allocator: paired alloc/free, batch alloc then batch free, random
// mixed traffic, an arena-resident linked list, and a two-dimensional array.
// The same functions back the memctl stress command, the benchmarks, and the
// acceptance tests.
package workload

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/memarena/memarena/arena"
)

// Count is the number of allocations each workload performs.
const Count = 120

// Func runs one workload against the given arena. Every workload frees all
// of its allocations before returning; on a default-size arena the arena is
// back to a single free chunk afterwards.
type Func func(a *arena.Arena) error

// Workload couples a stress pattern with its identity for reporting.
type Workload struct {
	ID          int
	Name        string
	Description string
	Run         Func
}

// All returns the five workloads in their canonical order.
func All() []Workload {
	return []Workload{
		{1, "pairs", "alloc/free 1 byte in sequence, 120 times", Pairs},
		{2, "batch", "alloc 120 one-byte chunks, then free all", Batch},
		{3, "random", "random alloc/free until 120 allocations", Random},
		{4, "list", "build and destroy a 120-node arena-resident linked list", List},
		{5, "matrix", "allocate and free a 15x8 two-dimensional array", Matrix},
	}
}

// ByID returns the workload with the given 1-based ID.
func ByID(id int) (Workload, bool) {
	for _, w := range All() {
		if w.ID == id {
			return w, true
		}
	}
	return Workload{}, false
}

// Pairs allocates and immediately frees one byte, Count times.
func Pairs(a *arena.Arena) error {
	for i := 0; i < Count; i++ {
		p, err := a.Alloc(1)
		if err != nil {
			return fmt.Errorf("workload pairs: alloc %d: %w", i, err)
		}
		if err := a.Free(p); err != nil {
			return fmt.Errorf("workload pairs: free %d: %w", i, err)
		}
	}
	return nil
}

// Batch allocates Count one-byte chunks, holds them all live, then frees
// them in allocation order.
func Batch(a *arena.Arena) error {
	ps := make([][]byte, Count)
	for i := range ps {
		p, err := a.Alloc(1)
		if err != nil {
			return fmt.Errorf("workload batch: alloc %d: %w", i, err)
		}
		ps[i] = p
	}
	for i, p := range ps {
		if err := a.Free(p); err != nil {
			return fmt.Errorf("workload batch: free %d: %w", i, err)
		}
	}
	return nil
}

// Random flips a coin between allocating and freeing a random live chunk
// until Count allocations have happened, then drains the survivors. Fixed
// seed so runs are reproducible.
func Random(a *arena.Arena) error {
	rng := rand.New(rand.NewSource(1))
	var live [][]byte
	allocated := 0
	for allocated < Count {
		if len(live) == 0 || rng.Intn(2) == 0 {
			p, err := a.Alloc(1)
			if err != nil {
				return fmt.Errorf("workload random: alloc %d: %w", allocated, err)
			}
			live = append(live, p)
			allocated++
		} else {
			i := rng.Intn(len(live))
			if err := a.Free(live[i]); err != nil {
				return fmt.Errorf("workload random: free: %w", err)
			}
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	for _, p := range live {
		if err := a.Free(p); err != nil {
			return fmt.Errorf("workload random: drain: %w", err)
		}
	}
	return nil
}

// List builds a Count-node linked list resident in the arena, nodes linked
// by payload offset, then traverses it and frees every node. Node layout:
// [0:8] value, [8:16] offset of the next node, zero terminating the list.
func List(a *arena.Arena) error {
	head := uint64(0)
	for i := 0; i < Count; i++ {
		p, err := a.Alloc(16)
		if err != nil {
			return fmt.Errorf("workload list: alloc node %d: %w", i, err)
		}
		off, err := a.OffsetOf(p)
		if err != nil {
			return fmt.Errorf("workload list: offset of node %d: %w", i, err)
		}
		binary.LittleEndian.PutUint64(p[0:8], uint64(i))
		binary.LittleEndian.PutUint64(p[8:16], head)
		head = uint64(off)
	}
	for head != 0 {
		p, err := a.At(int(head))
		if err != nil {
			return fmt.Errorf("workload list: node at %d: %w", head, err)
		}
		next := binary.LittleEndian.Uint64(p[8:16])
		if err := a.Free(p); err != nil {
			return fmt.Errorf("workload list: free node at %d: %w", head, err)
		}
		head = next
	}
	return nil
}

// Matrix allocates a 15-row, 8-column array of 64-bit values - one chunk of
// row offsets plus one chunk per row - fills it, then frees every row and
// the row vector.
func Matrix(a *arena.Arena) error {
	const rows, cols = 15, 8

	rowVec, err := a.Alloc(rows * 8)
	if err != nil {
		return fmt.Errorf("workload matrix: alloc row vector: %w", err)
	}
	for i := 0; i < rows; i++ {
		row, err := a.Alloc(cols * 8)
		if err != nil {
			return fmt.Errorf("workload matrix: alloc row %d: %w", i, err)
		}
		off, err := a.OffsetOf(row)
		if err != nil {
			return fmt.Errorf("workload matrix: offset of row %d: %w", i, err)
		}
		binary.LittleEndian.PutUint64(rowVec[i*8:], uint64(off))
		for j := 0; j < cols; j++ {
			binary.LittleEndian.PutUint64(row[j*8:], uint64(i*cols+j))
		}
	}

	for i := 0; i < rows; i++ {
		off := binary.LittleEndian.Uint64(rowVec[i*8:])
		row, err := a.At(int(off))
		if err != nil {
			return fmt.Errorf("workload matrix: row %d at %d: %w", i, off, err)
		}
		if err := a.Free(row); err != nil {
			return fmt.Errorf("workload matrix: free row %d: %w", i, err)
		}
	}
	if err := a.Free(rowVec); err != nil {
		return fmt.Errorf("workload matrix: free row vector: %w", err)
	}
	return nil
}
