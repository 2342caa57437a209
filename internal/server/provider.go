package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers/csvdir"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers/fixture"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers/httpcsv"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.RawTableProvider {
	switch cfg.Provider.Kind {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderCSV:
		return csvdir.New(cfg.Provider.RawDir)
	case config.ProviderHTTP:
		return httpcsv.NewClient(httpcsv.Config{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
			Timeout: cfg.Provider.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", "provider", cfg.Provider.Kind)
		return fixture.New()
	}
}
