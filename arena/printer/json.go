package printer

import (
	"encoding/json"
	"io"
)

// writeJSON renders the snapshot as an indented JSON document.
func writeJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
