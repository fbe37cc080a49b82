package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memarena/memarena/arena/workload"
)

func TestParseWorkloadIDsDefaultsToAll(t *testing.T) {
	ids, err := parseWorkloadIDs("")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	ids, err = parseWorkloadIDs("   ")
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestParseWorkloadIDsExplicit(t *testing.T) {
	ids, err := parseWorkloadIDs("1,3, 5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, ids)
}

func TestParseWorkloadIDsRejectsBadInput(t *testing.T) {
	_, err := parseWorkloadIDs("1,banana")
	assert.Error(t, err)

	_, err = parseWorkloadIDs("0")
	assert.Error(t, err)

	_, err = parseWorkloadIDs("6")
	assert.Error(t, err)
}

func TestTimeWorkloadReturnsMean(t *testing.T) {
	w, ok := workload.ByID(1)
	require.True(t, ok)

	mean, err := timeWorkload(w, 3, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mean, 0.0)
}

func TestTimeWorkloadHonorsCapacity(t *testing.T) {
	// A 4KB-class workload cannot run in a 64-byte arena.
	w, ok := workload.ByID(2)
	require.True(t, ok)

	_, err := timeWorkload(w, 1, 64)
	assert.Error(t, err)
}
