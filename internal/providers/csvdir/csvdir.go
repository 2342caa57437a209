package csvdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
)

const providerName = "csvdir"

// Provider reads raw per-season exports from a directory.
type Provider struct {
	dir string
}

// New creates a provider rooted at dir.
func New(dir string) *Provider {
	return &Provider{dir: dir}
}

func (p *Provider) Name() string { return providerName }

// FetchTable reads the season's raw CSV export. A missing file yields providers.ErrSeasonNotFound.
func (p *Provider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return playoffs.RawTable{}, err
	}

	path := filepath.Join(p.dir, providers.RawFileName(season))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return playoffs.RawTable{}, fmt.Errorf("%s: %w", path, providers.ErrSeasonNotFound)
		}
		return playoffs.RawTable{}, err
	}
	defer f.Close()

	table, err := providers.DecodeCSV(f, season)
	if err != nil {
		return playoffs.RawTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// WriteTable stores table under the name FetchTable reads, creating dir as needed.
// It is used to seed the directory from another provider.
func (p *Provider) WriteTable(table playoffs.RawTable) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(p.dir, providers.RawFileName(table.Season))
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := providers.EncodeCSV(f, table); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
