package testutil

import (
	"context"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
)

// GoodProvider serves SampleRawTable for any season.
type GoodProvider struct{}

func (GoodProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	_ = ctx
	return SampleRawTable(season), nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	return playoffs.RawTable{}, p.Err
}

// EmptyProvider returns a table with headers but no rows.
type EmptyProvider struct{}

func (EmptyProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	t := SampleRawTable(season)
	t.Rows = nil
	return t, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	return playoffs.RawTable{}, providers.ErrProviderUnavailable
}
