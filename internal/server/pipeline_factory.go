package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/metrics"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
)

var openSeasonStore = BuildSeasonStore

// PipelineConfig maps runtime configuration onto a pipeline run.
func PipelineConfig(cfg config.Config) pipeline.Config {
	return pipeline.Config{
		Seasons:  append([]int(nil), cfg.Seasons...),
		TopN:     cfg.TopN,
		Category: cfg.UsageCategory(),
		Workers:  cfg.Workers,
	}
}

// BuildPipeline wires the configured provider chain and season store into a pipeline.
// The returned store must be released with seasonstore.Close once the pipeline is no longer used.
func BuildPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*pipeline.Pipeline, seasonstore.Store, error) {
	provider := newProviderFactory(logger, recorder).build(cfg)
	return buildPipelineWithProvider(ctx, cfg, logger, recorder, provider)
}

func buildPipelineWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, provider providers.RawTableProvider) (*pipeline.Pipeline, seasonstore.Store, error) {
	seasons, err := openSeasonStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(provider, seasons, PipelineConfig(cfg), logger, recorder), seasons, nil
}
