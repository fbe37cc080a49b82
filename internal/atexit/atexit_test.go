package atexit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// reset clears package state between tests. The production code never needs
// this: a process terminates once.
func reset() {
	hooks = nil
	ran = false
}

func TestRunExecutesHooksLIFO(t *testing.T) {
	reset()

	var order []int
	Register(func() { order = append(order, 1) })
	Register(func() { order = append(order, 2) })
	Register(func() { order = append(order, 3) })

	Run()
	require.Equal(t, []int{3, 2, 1}, order)
}

func TestRunFiresAtMostOnce(t *testing.T) {
	reset()

	calls := 0
	Register(func() { calls++ })

	Run()
	Run()
	require.Equal(t, 1, calls)
}

func TestRunWithNoHooks(t *testing.T) {
	reset()
	require.NotPanics(t, Run)
}
