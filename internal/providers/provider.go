package providers

import (
	"context"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// RawTableProvider fetches one season's per-game playoff table.
// The returned table is untyped: cells are strings exactly as the source published them.
type RawTableProvider interface {
	FetchTable(ctx context.Context, season int) (playoffs.RawTable, error)
}

// Named is implemented by providers that can report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns p's name when it implements Named, or fallback otherwise.
func NameOf(p RawTableProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
