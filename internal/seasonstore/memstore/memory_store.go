package memstore

import (
	"context"
	"sync"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Store keeps season record sets in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	seasons  map[int][]playoffs.PlayerSeasonRecord
	combined []playoffs.PlayerSeasonRecord
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		seasons: make(map[int][]playoffs.PlayerSeasonRecord),
	}
}

// Write replaces the season's records with a copy of records.
func (s *Store) Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seasons[season] = clone(records)
	return nil
}

// ReadAll returns copies of the stored records for each requested season.
func (s *Store) ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int][]playoffs.PlayerSeasonRecord, len(seasons))
	for _, season := range seasons {
		if recs, ok := s.seasons[season]; ok {
			out[season] = clone(recs)
		}
	}
	return out, nil
}

// WriteCombined replaces the combined collection.
func (s *Store) WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.combined = clone(records)
	return nil
}

// Combined returns a copy of the last combined collection written.
func (s *Store) Combined() []playoffs.PlayerSeasonRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.combined)
}

func clone(records []playoffs.PlayerSeasonRecord) []playoffs.PlayerSeasonRecord {
	out := make([]playoffs.PlayerSeasonRecord, len(records))
	copy(out, records)
	return out
}
