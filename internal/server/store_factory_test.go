package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/fsstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/memstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/sqlstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/testutil"
)

func TestBuildSeasonStoreByKind(t *testing.T) {
	ctx := context.Background()

	fs, err := BuildSeasonStore(ctx, config.Config{Store: config.StoreConfig{Kind: config.StoreFS, DataDir: t.TempDir()}}, nil)
	if err != nil {
		t.Fatalf("fs: %v", err)
	}
	if _, ok := fs.(*fsstore.Store); !ok {
		t.Fatalf("expected fsstore, got %T", fs)
	}

	mem, err := BuildSeasonStore(ctx, config.Config{Store: config.StoreConfig{Kind: config.StoreMemory}}, nil)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := mem.(*memstore.Store); !ok {
		t.Fatalf("expected memstore, got %T", mem)
	}

	sqlCfg := config.Config{Store: config.StoreConfig{
		Kind:      config.StoreSQL,
		SQLDriver: config.DriverSQLite,
		SQLDSN:    filepath.Join(t.TempDir(), "seasons.db"),
	}}
	sq, err := BuildSeasonStore(ctx, sqlCfg, nil)
	if err != nil {
		t.Fatalf("sql: %v", err)
	}
	if _, ok := sq.(*sqlstore.Store); !ok {
		t.Fatalf("expected sqlstore, got %T", sq)
	}
	if err := seasonstore.Close(sq); err != nil {
		t.Fatalf("close sql store: %v", err)
	}
}

func TestBuildSeasonStoreFallsBackForUnknownKind(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	st, err := BuildSeasonStore(context.Background(), config.Config{Store: config.StoreConfig{Kind: "s3", DataDir: t.TempDir()}}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := st.(*fsstore.Store); !ok {
		t.Fatalf("expected fsstore fallback, got %T", st)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a warning for an unknown store kind")
	}
}

func TestBuildSeasonStoreReportsConnectionErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := BuildSeasonStore(ctx, config.Config{Store: config.StoreConfig{Kind: config.StoreRedis, RedisAddr: "127.0.0.1:1"}}, nil); err == nil {
		t.Fatalf("expected redis dial error")
	}
	if _, err := BuildSeasonStore(ctx, config.Config{Store: config.StoreConfig{Kind: config.StoreSQL, SQLDriver: "oracle"}}, nil); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestBuildPipelineUsesConfiguredStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store = config.StoreConfig{Kind: config.StoreFS, DataDir: t.TempDir()}

	pipe, seasons, err := BuildPipeline(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}
	defer seasonstore.Close(seasons)

	res, err := pipe.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Seasons) != 2 {
		t.Fatalf("expected both seasons in result, got %v", res.Seasons)
	}
	stored, err := seasons.ReadAll(context.Background(), cfg.Seasons)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected both seasons persisted, got %d", len(stored))
	}
}

func TestPipelineConfigCopiesSeasons(t *testing.T) {
	cfg := testConfig()
	pc := PipelineConfig(cfg)
	pc.Seasons[0] = 1999
	if cfg.Seasons[0] == 1999 {
		t.Fatalf("expected seasons to be copied")
	}
	if pc.Category != "minutes_dependent" || pc.TopN != 5 || pc.Workers != 2 {
		t.Fatalf("unexpected pipeline config %+v", pc)
	}
}
