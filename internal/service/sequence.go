package service

import (
	"fmt"
	"sync"
)

// sequence is a mutex-serialized monotonic counter. Values are never
// reused, even after the record they named is deleted.
type sequence struct {
	mu      sync.Mutex
	current int
}

func newSequence(seed int) *sequence {
	return &sequence{current: seed}
}

// next atomically increments and returns the counter.
func (s *sequence) next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	return s.current
}

// value returns the last allocated counter value.
func (s *sequence) value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// formatUserID renders the role-scoped id for a counter value.
func formatUserID(prefix string, n int) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// formatTicketID renders the SR-NNNNN ticket id.
func formatTicketID(n int) string {
	return fmt.Sprintf("SR-%05d", n)
}
