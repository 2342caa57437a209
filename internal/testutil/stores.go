package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/fsstore"
)

// NewTempFSStore returns a file-backed season store rooted in a temp dir.
func NewTempFSStore(t *testing.T) *fsstore.Store {
	t.Helper()
	return fsstore.New(t.TempDir())
}

// WriteSeason writes records for season, failing the test on error.
func WriteSeason(t *testing.T, s *fsstore.Store, season int, records []playoffs.PlayerSeasonRecord) {
	t.Helper()
	if err := s.Write(context.Background(), season, records); err != nil {
		t.Fatalf("failed to write season %d: %v", season, err)
	}
}

// SeasonFile returns the expected file path for a season.
func SeasonFile(s *fsstore.Store, season int) string {
	return fsstore.SeasonPath(s.BasePath(), season)
}
