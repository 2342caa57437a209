package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// ReadAll loads each requested season file that exists.
func (s *Store) ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error) {
	if s == nil {
		return nil, errors.New("season store not configured")
	}
	out := make(map[int][]playoffs.PlayerSeasonRecord, len(seasons))
	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var payload playoffs.SeasonRecords
		err := decodeFile(SeasonPath(s.basePath, season), &payload)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read season %d: %w", season, err)
		}
		if payload.Season != season {
			return nil, fmt.Errorf("read season %d: file holds season %d", season, payload.Season)
		}
		if payload.Records == nil {
			payload.Records = []playoffs.PlayerSeasonRecord{}
		}
		out[season] = payload.Records
	}
	return out, nil
}

// ReadCombined loads the stored multi-season collection.
func (s *Store) ReadCombined(ctx context.Context) ([]playoffs.PlayerSeasonRecord, error) {
	if s == nil {
		return nil, errors.New("season store not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload combinedPayload
	if err := decodeFile(CombinedPath(s.basePath), &payload); err != nil {
		return nil, err
	}
	return payload.Records, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
