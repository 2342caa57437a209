// Package seasonstore defines persistence for cleaned per-season record sets.
package seasonstore

import (
	"context"
	"io"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Store persists cleaned record sets keyed by season.
//
// Write replaces whatever was stored for the season. ReadAll returns the stored
// records for each requested season that has been written; seasons never written
// are absent from the map rather than an error. Records read back must equal the
// records written field for field and in the same order.
type Store interface {
	Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error
	ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error)
}

// CombinedWriter is implemented by stores that also keep the multi-season collection.
type CombinedWriter interface {
	WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error
}

// Close releases store resources when the store holds any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
