package testutil

import (
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/store"
)

// NewAnalysisServiceWithResult builds a read-only analysis service preloaded with res.
// A zero-value result leaves the service not ready.
func NewAnalysisServiceWithResult(res pipeline.Result) *analysis.Service {
	ms := store.NewMemoryStore()
	if res.RunID != "" {
		ms.SetResult(res)
	}
	return analysis.NewService(ms, nil)
}
