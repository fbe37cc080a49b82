// Package printer renders arena snapshots for dump tooling: the per-chunk
// map plus the operation counters and leak summary, as aligned text or JSON.
package printer

import (
	"fmt"
	"io"

	"github.com/memarena/memarena/arena"
)

// Format specifies the output format.
type Format string

const (
	// FormatText outputs a human-readable chunk table.
	FormatText Format = "text"

	// FormatJSON outputs a machine-readable document.
	FormatJSON Format = "json"
)

// Snapshot is everything the renderers need, captured from an arena at one
// point in time.
type Snapshot struct {
	Capacity int               `json:"capacity"`
	Chunks   []arena.ChunkInfo `json:"chunks"`
	Stats    arena.Stats       `json:"stats"`
	Leaks    arena.LeakReport  `json:"leaks"`
}

// Capture snapshots the given arena.
func Capture(a *arena.Arena) Snapshot {
	return Snapshot{
		Capacity: a.Capacity(),
		Chunks:   a.Chunks(),
		Stats:    a.Stats(),
		Leaks:    a.LeakCheck(),
	}
}

// Write renders the snapshot to w in the requested format.
func Write(w io.Writer, s Snapshot, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, s)
	case FormatJSON:
		return writeJSON(w, s)
	default:
		return fmt.Errorf("printer: unknown format %q", format)
	}
}
