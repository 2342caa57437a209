// Package analysis serves read views over the latest pipeline result and triggers refreshes.
package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/aggregator"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/classifier"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

var (
	// ErrNoResult is returned by views before the first successful run.
	ErrNoResult = errors.New("no pipeline result available yet")
	// ErrRefreshInProgress is returned when a refresh is requested while one is running.
	ErrRefreshInProgress = errors.New("refresh already in progress")
)

// Store holds the latest pipeline result.
type Store interface {
	Latest() (pipeline.Result, bool)
	SetResult(pipeline.Result)
}

// Runner produces a fresh pipeline result.
type Runner interface {
	Run(ctx context.Context) (pipeline.Result, error)
}

// Service coordinates refreshes and read views using a Store.
type Service struct {
	store  Store
	runner Runner

	refreshMu sync.Mutex
}

// NewService constructs a Service. runner may be nil for read-only use.
func NewService(store Store, runner Runner) *Service {
	return &Service{store: store, runner: runner}
}

// Refresh runs the pipeline and, on success, replaces the stored result.
// A failed run leaves the previous result in place.
func (s *Service) Refresh(ctx context.Context) (pipeline.Result, error) {
	if s.runner == nil {
		return pipeline.Result{}, errors.New("no pipeline configured")
	}
	if !s.refreshMu.TryLock() {
		return pipeline.Result{}, ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	res, err := s.runner.Run(ctx)
	if err != nil {
		return res, err
	}
	s.store.SetResult(res)
	return res, nil
}

// Latest returns the full latest result.
func (s *Service) Latest() (pipeline.Result, error) {
	res, ok := s.store.Latest()
	if !ok {
		return pipeline.Result{}, ErrNoResult
	}
	return res, nil
}

// Ready reports whether a result is available.
func (s *Service) Ready() bool {
	_, ok := s.store.Latest()
	return ok
}

// Records returns the combined records, or only season's records when season is non-zero.
func (s *Service) Records(season int) ([]playoffs.PlayerSeasonRecord, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	if season == 0 {
		return res.Records, nil
	}
	return aggregator.FilterSeason(res.Records, season), nil
}

// Seasons lists seasons present in the combined records, in combined order.
func (s *Service) Seasons() ([]int, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return aggregator.SeasonsOf(res.Records), nil
}

// Summaries returns per-season averages.
func (s *Service) Summaries() ([]playoffs.SeasonSummary, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return res.Summaries, nil
}

// Classified returns classified records, filtered to category unless it is empty.
func (s *Service) Classified(category playoffs.UsageCategory) ([]playoffs.ClassifiedRecord, classifier.Thresholds, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, classifier.Thresholds{}, err
	}
	if category == "" {
		return res.Classified, res.Thresholds, nil
	}
	return classifier.FilterCategory(res.Classified, category), res.Thresholds, nil
}

// Rankings returns the top n records of category by points per 48.
func (s *Service) Rankings(category playoffs.UsageCategory, n int) ([]playoffs.ClassifiedRecord, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return res.Ranking(category, n), nil
}

// Usage returns record counts per category.
func (s *Service) Usage() (map[playoffs.UsageCategory]int, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return res.Usage(), nil
}

// TopScorers returns season's top n scorers by total points.
func (s *Service) TopScorers(season, n int) ([]playoffs.PlayerSeasonRecord, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return classifier.TopScorersInSeason(res.Records, season, n), nil
}

// TopPer48 returns the top n records across all seasons by points per 48.
func (s *Service) TopPer48(n int) ([]playoffs.PlayerSeasonRecord, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return classifier.TopPer48(res.Records, n), nil
}

// Outcomes returns per-season outcomes from the latest run.
func (s *Service) Outcomes() ([]pipeline.SeasonOutcome, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return res.Seasons, nil
}
