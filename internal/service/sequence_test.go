package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceFormatting(t *testing.T) {
	require.Equal(t, "Org-000001", formatUserID("Org", 1))
	require.Equal(t, "Emplr-000042", formatUserID("Emplr", 42))
	require.Equal(t, "SR-00007", formatTicketID(7))
	require.Equal(t, "SR-12345", formatTicketID(12345))
}

func TestSequenceSeededFromExistingCount(t *testing.T) {
	seq := newSequence(3)
	require.Equal(t, 3, seq.value())
	require.Equal(t, 4, seq.next())
	require.Equal(t, 4, seq.value())
}

func TestSequenceConcurrentNextIsUnique(t *testing.T) {
	seq := newSequence(0)
	const workers = 50

	var wg sync.WaitGroup
	results := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- seq.next()
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool, workers)
	for v := range results {
		require.False(t, seen[v], "duplicate id %d", v)
		seen[v] = true
	}
	require.Len(t, seen, workers)
	require.Equal(t, workers, seq.value())
}
