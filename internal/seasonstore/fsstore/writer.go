package fsstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Store persists season record sets as JSON files with a manifest:
//
//	{basePath}/seasons/{season}.json
//	{basePath}/combined.json
//	{basePath}/manifest.json
type Store struct {
	basePath string
	now      func() time.Time

	// mu serializes manifest read-modify-write across concurrent season writes.
	mu sync.Mutex
}

type combinedPayload struct {
	Seasons []int                         `json:"seasons"`
	Records []playoffs.PlayerSeasonRecord `json:"records"`
}

// New constructs a store rooted at basePath.
func New(basePath string) *Store {
	return &Store{basePath: basePath, now: time.Now}
}

// BasePath exposes the store root path.
func (s *Store) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Write stores the season's records and records it in the manifest.
// Unchanged content is not rewritten.
func (s *Store) Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error {
	if s == nil {
		return errors.New("season store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []playoffs.PlayerSeasonRecord{}
	}
	payload := playoffs.SeasonRecords{Season: season, Records: records}
	if err := writeJSON(SeasonPath(s.basePath, season), payload); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, _ := ReadManifest(s.basePath)
	m.upsertSeason(SeasonMeta{Season: season, Records: len(records), LastWritten: s.now().UTC()})
	sort.Slice(m.Seasons, func(i, j int) bool { return m.Seasons[i].Season < m.Seasons[j].Season })
	return writeManifest(s.basePath, m)
}

// WriteCombined stores the multi-season collection in the order given.
func (s *Store) WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error {
	if s == nil {
		return errors.New("season store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []playoffs.PlayerSeasonRecord{}
	}
	seasons := seasonsInOrder(records)
	if err := writeJSON(CombinedPath(s.basePath), combinedPayload{Seasons: seasons, Records: records}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, _ := ReadManifest(s.basePath)
	m.Combined = CombinedMeta{Seasons: seasons, Records: len(records), LastWritten: s.now().UTC()}
	return writeManifest(s.basePath, m)
}

func seasonsInOrder(records []playoffs.PlayerSeasonRecord) []int {
	seasons := []int{}
	seen := make(map[int]struct{})
	for _, r := range records {
		if _, ok := seen[r.Season]; ok {
			continue
		}
		seen[r.Season] = struct{}{}
		seasons = append(seasons, r.Season)
	}
	return seasons
}

func writeJSON(target string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return writeAtomic(target, data)
}

func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}
