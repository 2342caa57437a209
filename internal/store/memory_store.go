package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

// MemoryStore keeps the latest successful pipeline result in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	result    pipeline.Result
	hasResult bool
	updatedAt time.Time
	now       func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Latest returns the current result and whether one has been stored.
// Slices in the result are shared and must be treated as read-only.
func (s *MemoryStore) Latest() (pipeline.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.hasResult
}

// SetResult replaces the stored result.
func (s *MemoryStore) SetResult(res pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = res
	s.hasResult = true
	s.updatedAt = s.now()
}

// UpdatedAt returns when the result was last replaced, or the zero time.
func (s *MemoryStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
