package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// StubProvider is a test double for providers.RawTableProvider.
// Tables are keyed by season; seasons without a table return an empty table with no rows.
type StubProvider struct {
	Tables map[int]playoffs.RawTable
	Err    error
	Errs   map[int]error
	Calls  atomic.Int32
	Notify chan struct{}

	notifyOnce sync.Once
}

// FetchTable returns the configured table and error while tracking calls.
func (s *StubProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	_ = ctx
	if s.Notify != nil {
		s.notifyOnce.Do(func() { close(s.Notify) })
	}
	s.Calls.Add(1)
	if err, ok := s.Errs[season]; ok {
		return playoffs.RawTable{}, err
	}
	if s.Err != nil {
		return playoffs.RawTable{}, s.Err
	}
	table, ok := s.Tables[season]
	if !ok {
		return playoffs.RawTable{Season: season}, nil
	}
	return table, nil
}

// StubStore is an in-memory test double for seasonstore.Store with injectable failures.
type StubStore struct {
	WriteErr   map[int]error
	ReadErr    error
	CombineErr error

	mu       sync.Mutex
	written  map[int][]playoffs.PlayerSeasonRecord
	combined []playoffs.PlayerSeasonRecord
	writes   int
}

// Write records the season's records for later ReadAll calls.
func (s *StubStore) Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error {
	_ = ctx
	if err, ok := s.WriteErr[season]; ok {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.written == nil {
		s.written = make(map[int][]playoffs.PlayerSeasonRecord)
	}
	s.written[season] = append([]playoffs.PlayerSeasonRecord(nil), records...)
	s.writes++
	return nil
}

// ReadAll returns the stored records for the requested seasons that were written.
func (s *StubStore) ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error) {
	_ = ctx
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int][]playoffs.PlayerSeasonRecord, len(seasons))
	for _, season := range seasons {
		if recs, ok := s.written[season]; ok {
			out[season] = append([]playoffs.PlayerSeasonRecord(nil), recs...)
		}
	}
	return out, nil
}

// WriteCombined records the combined collection.
func (s *StubStore) WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error {
	_ = ctx
	if s.CombineErr != nil {
		return s.CombineErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combined = append([]playoffs.PlayerSeasonRecord(nil), records...)
	return nil
}

// Writes returns how many successful season writes were made.
func (s *StubStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Combined returns the last combined collection written.
func (s *StubStore) Combined() []playoffs.PlayerSeasonRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]playoffs.PlayerSeasonRecord(nil), s.combined...)
}
