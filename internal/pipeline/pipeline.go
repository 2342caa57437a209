// Package pipeline runs fetch, clean, store, aggregate and classify over a list of seasons.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/aggregator"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/classifier"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/cleaner"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/metrics"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
)

const defaultWorkers = 4

// ErrNoSeasons is returned when every requested season failed to fetch, clean or store.
var ErrNoSeasons = errors.New("no season produced records")

// Config selects what a run covers.
type Config struct {
	Seasons  []int
	TopN     int
	Category playoffs.UsageCategory
	Workers  int
}

// Pipeline wires a provider and a store around the cleaner, aggregator and classifier.
// A Pipeline holds no state between runs and is safe to Run concurrently.
type Pipeline struct {
	provider providers.RawTableProvider
	store    seasonstore.Store
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// New constructs a Pipeline. Duplicate seasons are dropped, keeping the first occurrence.
func New(provider providers.RawTableProvider, store seasonstore.Store, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.TopN <= 0 {
		cfg.TopN = classifier.DefaultTopN
	}
	if !cfg.Category.Valid() {
		cfg.Category = playoffs.CategoryMinutesDependent
	}
	cfg.Seasons = dedupe(cfg.Seasons)
	return &Pipeline{
		provider: provider,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Config returns the effective configuration after defaults.
func (p *Pipeline) Config() Config {
	cfg := p.cfg
	cfg.Seasons = append([]int(nil), p.cfg.Seasons...)
	return cfg
}

// Run processes every configured season and builds the aggregate views.
//
// Per-season failures are recorded in Result.Seasons and do not stop other seasons.
// The returned error is non-nil only for run-level failures: reading back from the
// store, an invariant violation during aggregation, cancellation, or ErrNoSeasons.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := p.now()
	res := Result{
		RunID:     p.newID(),
		StartedAt: start.UTC(),
		Category:  p.cfg.Category,
		TopN:      p.cfg.TopN,
	}
	logger := logging.FromContext(ctx, p.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldRunID, res.RunID))
	}

	err := p.run(ctx, logger, &res)
	res.FinishedAt = p.now().UTC()
	p.metrics.RecordPipelineRun(res.FinishedAt.Sub(res.StartedAt), err)

	if err != nil {
		logging.Error(logger, "pipeline run failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		return res, err
	}
	logging.Info(logger, "pipeline run complete",
		logging.FieldSeasons, len(res.Seasons),
		logging.FieldCount, len(res.Records),
		"failed_seasons", len(res.Failed()),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, res *Result) error {
	res.Seasons = p.processSeasons(ctx, logger)
	if err := ctx.Err(); err != nil {
		return err
	}

	written := make([]int, 0, len(res.Seasons))
	for _, o := range res.Seasons {
		if o.OK() {
			written = append(written, o.Season)
		}
	}
	if len(written) == 0 && len(res.Seasons) > 0 {
		return ErrNoSeasons
	}

	stored, err := p.store.ReadAll(ctx, written)
	if err != nil {
		return fmt.Errorf("read seasons from store: %w", err)
	}
	sets := make([]playoffs.SeasonRecords, 0, len(written))
	for _, season := range written {
		recs, ok := stored[season]
		if !ok {
			return fmt.Errorf("season %d missing from store after write", season)
		}
		sets = append(sets, playoffs.SeasonRecords{Season: season, Records: recs})
	}

	dataset, err := aggregator.Combine(sets)
	if err != nil {
		return err
	}
	res.Records = dataset.Records
	res.Summaries = dataset.Summaries

	if cw, ok := p.store.(seasonstore.CombinedWriter); ok {
		if err := cw.WriteCombined(ctx, dataset.Records); err != nil {
			logging.Warn(logger, "combined write failed", "err", err)
		}
	}

	res.Classified, res.Thresholds = classifier.Classify(dataset.Records)
	res.Ranked = classifier.Top(res.Classified, p.cfg.Category, p.cfg.TopN)
	return nil
}

// processSeasons fetches, cleans and writes each season concurrently. Outcomes are
// indexed by configured position so aggregation order never depends on scheduling.
func (p *Pipeline) processSeasons(ctx context.Context, logger *slog.Logger) []SeasonOutcome {
	outcomes := make([]SeasonOutcome, len(p.cfg.Seasons))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, season := range p.cfg.Seasons {
		g.Go(func() error {
			outcomes[i] = p.processSeason(ctx, logger, season)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (p *Pipeline) processSeason(ctx context.Context, logger *slog.Logger, season int) SeasonOutcome {
	out := SeasonOutcome{Season: season}
	seasonLog := logger
	if seasonLog != nil {
		seasonLog = seasonLog.With(slog.Int(logging.FieldSeason, season))
	}

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	raw, err := p.provider.FetchTable(ctx, season)
	if err != nil {
		if _, ok := playoffs.AsFetchError(err); !ok {
			err = &playoffs.FetchError{Season: season, Provider: providers.NameOf(p.provider, ""), Err: err}
		}
		out.Err = err
		p.metrics.RecordSeasonCleaned(season, 0, 0, err)
		logging.Error(seasonLog, "season fetch failed", err)
		return out
	}

	records, stats, err := cleaner.CleanWithStats(raw, season)
	out.Stats = stats
	if err != nil {
		out.Err = err
		p.metrics.RecordSeasonCleaned(season, 0, 0, err)
		logging.Error(seasonLog, "season clean failed", err)
		return out
	}
	out.Kept = len(records)
	if len(records) == 0 {
		out.Warning = &playoffs.EmptyResultWarning{Season: season, InputRows: stats.InputRows}
		logging.Warn(seasonLog, "season kept no records", "input_rows", stats.InputRows)
	}

	if err := p.store.Write(ctx, season, records); err != nil {
		out.Err = fmt.Errorf("write season %d: %w", season, err)
		p.metrics.RecordSeasonCleaned(season, 0, 0, out.Err)
		logging.Error(seasonLog, "season write failed", err)
		return out
	}

	p.metrics.RecordSeasonCleaned(season, stats.Kept, stats.Dropped(), nil)
	logging.Info(seasonLog, "season cleaned",
		logging.FieldCount, stats.Kept,
		logging.FieldDropped, stats.Dropped(),
	)
	return out
}

func dedupe(seasons []int) []int {
	out := make([]int, 0, len(seasons))
	seen := make(map[int]struct{}, len(seasons))
	for _, s := range seasons {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
