// Package benchmarks times the allocator under the five stress workloads
// plus alloc/free micro-benchmarks. Run with:
//
//	go test -bench=. ./tests/benchmarks
package benchmarks

import (
	"io"
	"testing"

	"github.com/memarena/memarena/arena"
	"github.com/memarena/memarena/arena/workload"
)

func newBenchArena(b *testing.B) *arena.Arena {
	b.Helper()
	a, err := arena.New(arena.WithDiagnostics(io.Discard))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = a.Close() })
	return a
}

func benchWorkload(b *testing.B, fn workload.Func) {
	a := newBenchArena(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := fn(a); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWorkloadPairs(b *testing.B)  { benchWorkload(b, workload.Pairs) }
func BenchmarkWorkloadBatch(b *testing.B)  { benchWorkload(b, workload.Batch) }
func BenchmarkWorkloadRandom(b *testing.B) { benchWorkload(b, workload.Random) }
func BenchmarkWorkloadList(b *testing.B)   { benchWorkload(b, workload.List) }
func BenchmarkWorkloadMatrix(b *testing.B) { benchWorkload(b, workload.Matrix) }

// BenchmarkAllocFree times one minimal alloc/free pair on an empty arena.
func BenchmarkAllocFree(b *testing.B) {
	a := newBenchArena(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(p); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFreeWithLongScan measures the O(n) predecessor rescan: the arena
// is pre-fragmented with live chunks so every free walks a long chain.
func BenchmarkFreeWithLongScan(b *testing.B) {
	a := newBenchArena(b)

	var live [][]byte
	for {
		p, err := a.Alloc(8)
		if err != nil {
			break
		}
		live = append(live, p)
	}
	last := live[len(live)-1]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := a.Free(last); err != nil {
			b.Fatal(err)
		}
		p, err := a.Alloc(8)
		if err != nil {
			b.Fatal(err)
		}
		last = p
	}
}

// BenchmarkFirstFitScan measures allocation cost when the only fitting free
// chunk sits at the end of a long chain of allocated chunks.
func BenchmarkFirstFitScan(b *testing.B) {
	a := newBenchArena(b)

	for i := 0; i < 100; i++ {
		if _, err := a.Alloc(16); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := a.Alloc(200)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(p); err != nil {
			b.Fatal(err)
		}
	}
}
