package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordBank_WordsFor(t *testing.T) {
	t.Parallel()

	wb := NewWordBank()

	animals := wb.WordsFor("Animals")
	assert.Contains(t, animals, "Giraffe")

	if diff := cmp.Diff(wb.WordsFor(AggregateCategory), wb.WordsFor("No Such Category")); diff != "" {
		t.Errorf("unknown category must fall back to the aggregate pool (-want +got):\n%s", diff)
	}
	assert.Len(t, wb.WordsFor(AggregateCategory), 120, "aggregate is the union of every named pool")
}

func TestWordBank_Categories(t *testing.T) {
	t.Parallel()

	names := NewWordBank().Categories()
	assert.Contains(t, names, "Animals")
	assert.Contains(t, names, AggregateCategory)
	assert.Len(t, names, 7)
}

func TestWordBank_PickRandom(t *testing.T) {
	t.Parallel()

	wb := NewWordBank()

	picked := wb.PickRandom("Food", 3)
	require.Len(t, picked, 3)
	seen := map[string]bool{}
	for _, w := range picked {
		assert.Contains(t, wb.WordsFor("Food"), w)
		assert.False(t, seen[w], "sampling is without replacement")
		seen[w] = true
	}

	// Asking for more than the pool holds returns the whole pool.
	all := wb.PickRandom("Movies", 999)
	assert.Len(t, all, 20)
	assert.ElementsMatch(t, wb.WordsFor("Movies"), all)
}
