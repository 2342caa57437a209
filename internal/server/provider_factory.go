package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/metrics"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.RawTableProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

// wrap paces calls before retrying them, so every retry also waits on the limiter.
func (f providerFactory) wrap(cfg config.Config, base providers.RawTableProvider) providers.RawTableProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.Provider.RPS, cfg.Provider.Burst, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider.Kind, base), cfg.Provider.Retries, 0)
}
