package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/fsstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/memstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/redisstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/sqlstore"
)

// BuildSeasonStore opens the configured season store backend.
// Callers release it with seasonstore.Close.
func BuildSeasonStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (seasonstore.Store, error) {
	switch cfg.Store.Kind {
	case config.StoreFS, "":
		return fsstore.New(cfg.Store.DataDir), nil
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreSQL:
		st, err := sqlstore.Open(cfg.Store.SQLDriver, cfg.Store.SQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open sql season store: %w", err)
		}
		return st, nil
	case config.StoreRedis:
		st, err := redisstore.Dial(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB, redisstore.Options{})
		if err != nil {
			return nil, fmt.Errorf("open redis season store: %w", err)
		}
		return st, nil
	default:
		logging.Warn(logger, "unknown store kind, falling back to filesystem", "store", cfg.Store.Kind)
		return fsstore.New(cfg.Store.DataDir), nil
	}
}
