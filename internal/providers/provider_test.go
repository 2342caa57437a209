package providers

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

type testProvider struct{}

func (t *testProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	_ = ctx
	return playoffs.RawTable{Season: season}, nil
}

type namedProvider struct{ testProvider }

func (namedProvider) Name() string { return "named" }

func TestRawTableProviderInterfaceImplemented(t *testing.T) {
	var _ RawTableProvider = (*testProvider)(nil)
}

func TestNameOf(t *testing.T) {
	if got := NameOf(&testProvider{}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback name, got %s", got)
	}
	if got := NameOf(&namedProvider{}, "fallback"); got != "named" {
		t.Fatalf("expected provider name, got %s", got)
	}
}
