package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/memarena/memarena/arena"
	"github.com/memarena/memarena/arena/workload"
)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

// stressResult is the timing summary for one workload.
type stressResult struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	MeanMicros float64 `json:"meanMicros"`
}

func newStressCmd() *cobra.Command {
	var (
		runs      int
		capacity  int
		workloads string
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Time the allocator under the standard stress workloads",
		Long: `The stress command runs each workload against a fresh arena the given
number of times and reports the mean wall time per run in microseconds.

Workloads:
  1 pairs   alloc/free 1 byte in sequence, 120 times
  2 batch   alloc 120 one-byte chunks, then free all
  3 random  random alloc/free until 120 allocations
  4 list    build and destroy an arena-resident 120-node linked list
  5 matrix  allocate and free a 15x8 two-dimensional array

Example:
  memctl stress
  memctl stress --runs 100 --workloads 1,3
  memctl stress --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseWorkloadIDs(workloads)
			if err != nil {
				return err
			}
			return runStress(runs, capacity, ids)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 50, "Repetitions per workload")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Arena capacity in bytes (default: compile-time capacity)")
	cmd.Flags().StringVar(&workloads, "workloads", "", "Comma-separated workload IDs (default: all)")
	return cmd
}

// parseWorkloadIDs turns "1,3,5" into IDs, defaulting to all workloads.
func parseWorkloadIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		var ids []int
		for _, w := range workload.All() {
			ids = append(ids, w.ID)
		}
		return ids, nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid workload id %q", part)
		}
		if _, ok := workload.ByID(id); !ok {
			return nil, fmt.Errorf("unknown workload id %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runStress(runs, capacity int, ids []int) error {
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	results := make([]stressResult, 0, len(ids))
	for _, id := range ids {
		w, _ := workload.ByID(id)
		printVerbose("running workload %d (%s), %d runs\n", w.ID, w.Name, runs)

		mean, err := timeWorkload(w, runs, capacity)
		if err != nil {
			return fmt.Errorf("workload %d (%s): %w", w.ID, w.Name, err)
		}
		results = append(results, stressResult{
			ID:         w.ID,
			Name:       w.Name,
			Runs:       runs,
			MeanMicros: mean,
		})
	}

	if jsonOut {
		return printJSON(results)
	}

	p := message.NewPrinter(language.English)
	printInfo("Results (%s runs per workload):\n", p.Sprintf("%d", runs))
	var total float64
	for _, r := range results {
		w, _ := workload.ByID(r.ID)
		printInfo("  Workload %d (%s): mean %.2f microseconds - %s\n",
			r.ID, r.Name, r.MeanMicros, w.Description)
		total += r.MeanMicros
	}
	if len(results) > 1 {
		printInfo("Overall mean across workloads: %.2f microseconds\n",
			total/float64(len(results)))
	}
	return nil
}

// timeWorkload runs one workload against a fresh arena `runs` times and
// returns the mean duration per run in microseconds.
func timeWorkload(w workload.Workload, runs, capacity int) (float64, error) {
	opts := []arena.Option{arena.WithDiagnostics(io.Discard)}
	if capacity > 0 {
		opts = append(opts, arena.WithCapacity(capacity))
	}
	a, err := arena.New(opts...)
	if err != nil {
		return 0, err
	}
	defer a.Close()

	start := time.Now()
	for i := 0; i < runs; i++ {
		if err := w.Run(a); err != nil {
			return 0, fmt.Errorf("run %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)
	return float64(elapsed.Microseconds()) / float64(runs), nil
}
