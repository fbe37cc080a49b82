package main

import (
	"github.com/spf13/cobra"

	"github.com/memarena/memarena/internal/layout"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

// geometry is the compile-time arena configuration, reported by `info`.
type geometry struct {
	DefaultCapacity int `json:"defaultCapacity"`
	HeaderSize      int `json:"headerSize"`
	Alignment       int `json:"alignment"`
	MinChunkSize    int `json:"minChunkSize"`
	InitialPayload  int `json:"initialPayload"`
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the compile-time arena geometry",
		Long: `The info command prints the allocator's compile-time configuration:
arena capacity, chunk header size, payload alignment, and the minimum chunk
a split may create.

Example:
  memctl info
  memctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

func runInfo() error {
	g := geometry{
		DefaultCapacity: layout.DefaultCapacity,
		HeaderSize:      layout.HeaderSize,
		Alignment:       layout.Alignment,
		MinChunkSize:    layout.MinChunkSize,
		InitialPayload:  layout.DefaultCapacity - layout.HeaderSize,
	}

	if jsonOut {
		return printJSON(g)
	}

	printInfo("Arena Geometry:\n")
	printInfo("  Default capacity: %d bytes\n", g.DefaultCapacity)
	printInfo("  Header size:      %d bytes\n", g.HeaderSize)
	printInfo("  Alignment:        %d bytes\n", g.Alignment)
	printInfo("  Min chunk size:   %d bytes\n", g.MinChunkSize)
	printInfo("  Initial payload:  %d bytes\n", g.InitialPayload)
	return nil
}
