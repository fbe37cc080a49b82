package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memarena/memarena/arena"
	"github.com/memarena/memarena/arena/printer"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	var (
		capacity int
		ops      string
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Apply an allocation script to a fresh arena and dump the chunk map",
		Long: `The dump command builds a fresh arena, applies a small operation script,
and prints the resulting chunk map, counters, and leak summary.

The script is a space-separated list of operations:
  aN   allocate N bytes (allocations are numbered from 0 in script order)
  fI   free allocation number I

Example:
  memctl dump --ops "a10 a200 a30 f1"
  memctl dump --ops "a100 f0" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(capacity, ops)
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Arena capacity in bytes (default: compile-time capacity)")
	cmd.Flags().StringVar(&ops, "ops", "", "Operation script to apply before dumping")
	return cmd
}

func runDump(capacity int, ops string) error {
	opts := []arena.Option{arena.WithDiagnostics(io.Discard)}
	if capacity > 0 {
		opts = append(opts, arena.WithCapacity(capacity))
	}
	a, err := arena.New(opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := applyOps(a, ops); err != nil {
		return err
	}

	format := printer.FormatText
	if jsonOut {
		format = printer.FormatJSON
	}
	return printer.Write(os.Stdout, printer.Capture(a), format)
}

// applyOps runs a script of aN/fI operations against the arena. Allocations
// are numbered in script order; freeing an index twice is a script error
// (caught here, before it would fault the arena).
func applyOps(a *arena.Arena, script string) error {
	var allocs [][]byte
	for i, tok := range strings.Fields(script) {
		if len(tok) < 2 {
			return fmt.Errorf("op %d: malformed token %q", i, tok)
		}
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return fmt.Errorf("op %d: malformed token %q: %w", i, tok, err)
		}
		switch tok[0] {
		case 'a':
			p, err := a.Alloc(n)
			if err != nil {
				return fmt.Errorf("op %d: alloc %d: %w", i, n, err)
			}
			printVerbose("op %d: allocated %d bytes as #%d\n", i, len(p), len(allocs))
			allocs = append(allocs, p)
		case 'f':
			if n < 0 || n >= len(allocs) {
				return fmt.Errorf("op %d: free of unknown allocation #%d", i, n)
			}
			if allocs[n] == nil {
				return fmt.Errorf("op %d: allocation #%d already freed", i, n)
			}
			if err := a.Free(allocs[n]); err != nil {
				return fmt.Errorf("op %d: free #%d: %w", i, n, err)
			}
			printVerbose("op %d: freed #%d\n", i, n)
			allocs[n] = nil
		default:
			return fmt.Errorf("op %d: unknown operation %q", i, tok)
		}
	}
	return nil
}
