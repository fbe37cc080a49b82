package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// writeText renders the snapshot as an aligned chunk table followed by the
// counters and, when nonzero, the leak summary.
func writeText(w io.Writer, s Snapshot) error {
	fmt.Fprintf(w, "=== ARENA DUMP (capacity %d bytes) ===\n", s.Capacity)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHUNK\tOFFSET\tPAYLOAD\tTOTAL\tSTATE\tPAYLOAD OFFSET")
	free, used := 0, 0
	for i, c := range s.Chunks {
		state := "free"
		if c.Allocated {
			state = "allocated"
			used += c.PayloadSize
		} else {
			free += c.PayloadSize
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%d\n",
			i, c.Offset, c.PayloadSize, c.TotalSize, state, c.PayloadOffset)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "chunks: %d, in use: %d bytes, free: %d bytes\n",
		len(s.Chunks), used, free)
	fmt.Fprintf(w, "allocs: %d (failed %d), frees: %d, splits: %d, coalesces: %d forward / %d backward, peak: %d bytes\n",
		s.Stats.Allocs, s.Stats.FailedAllocs, s.Stats.Frees, s.Stats.Splits,
		s.Stats.ForwardCoalesces, s.Stats.BackwardCoalesces, s.Stats.PeakInUse)
	if s.Leaks.Objects > 0 {
		fmt.Fprintf(w, "leaked: %d bytes in %d objects\n", s.Leaks.Bytes, s.Leaks.Objects)
	}
	fmt.Fprintln(w, "=== END ARENA DUMP ===")
	return nil
}
