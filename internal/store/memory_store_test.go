package store

import (
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Latest(); ok {
		t.Fatalf("expected no result before SetResult")
	}
	if !s.UpdatedAt().IsZero() {
		t.Fatalf("expected zero updated time")
	}
}

func TestMemoryStoreSetReplacesResult(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return fixed }

	s.SetResult(pipeline.Result{RunID: "old"})
	s.SetResult(pipeline.Result{RunID: "new"})

	res, ok := s.Latest()
	if !ok || res.RunID != "new" {
		t.Fatalf("expected latest result, got %+v ok=%v", res, ok)
	}
	if !s.UpdatedAt().Equal(fixed) {
		t.Fatalf("expected updated time %s, got %s", fixed, s.UpdatedAt())
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetResult(pipeline.Result{RunID: "r"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Latest()
		}()
	}
	wg.Wait()
	if _, ok := s.Latest(); !ok {
		t.Fatalf("expected a result after concurrent writes")
	}
}
