package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/store"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		Seasons:         []int{2023, 2024},
		TopN:            5,
		Category:        "minutes_dependent",
		RefreshInterval: time.Hour,
		Workers:         2,
		Provider:        config.ProviderConfig{Kind: config.ProviderFixture, RPS: 100, Burst: 5, Retries: 1},
		Store:           config.StoreConfig{Kind: config.StoreMemory},
		Metrics:         config.MetricsConfig{Enabled: false},
	}
}

func waitForSuccess(t *testing.T, srv *Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !srv.poller.Status().LastSuccess.IsZero() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for first refresh")
}

func waitForAttempt(t *testing.T, srv *Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.poller.Status().ConsecutiveFailures > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for failed refresh")
}

func TestServerServesHealthAndRecordsAfterRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := newServerWithProvider(testConfig(), nil, testutil.GoodProvider{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.poller.Start(ctx)
	defer srv.poller.Stop(context.Background())
	waitForSuccess(t, srv)

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rec := testutil.Serve(router, http.MethodGet, "/records?season=2024", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)

	res, err := srv.Analysis().Latest()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	// two seasons, three kept rows each
	if len(res.Records) != 6 {
		t.Fatalf("expected 6 combined records, got %d", len(res.Records))
	}
}

func TestServerReportsNotReadyWhenProviderFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := newServerWithProvider(testConfig(), nil, testutil.ErrProvider{Err: providers.ErrSeasonNotFound})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.poller.Start(ctx)
	defer srv.poller.Stop(context.Background())
	waitForAttempt(t, srv)

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/records", nil), http.StatusServiceUnavailable)
}

func TestNewConstructsServer(t *testing.T) {
	srv, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.seasons == nil || srv.results == nil {
		t.Fatalf("expected season store and result store to be wired")
	}
}

func TestNewFailsWhenSeasonStoreCannotOpen(t *testing.T) {
	cfg := testConfig()
	cfg.Store = config.StoreConfig{Kind: config.StoreSQL, SQLDriver: "oracle", SQLDSN: "x"}
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unsupported sql driver")
	}
}

func TestAdminRouteMountedOnlyWithToken(t *testing.T) {
	cfg := testConfig()
	srv, err := newServerWithProvider(cfg, nil, testutil.GoodProvider{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rec := testutil.Serve(srv.Handler(), http.MethodPost, "/admin/refresh", nil)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected admin route to be absent without token")
	}

	cfg.AdminToken = "secret"
	srv, err = newServerWithProvider(cfg, nil, testutil.GoodProvider{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rec = testutil.Serve(srv.Handler(), http.MethodPost, "/admin/refresh", nil)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func newTestService() *analysis.Service {
	return analysis.NewService(store.NewMemoryStore(), nil)
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.StubHTTPServer{Block: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls())
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 || httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected stop and shutdown once, got %d/%d", p.StopCalls, httpSrv.ShutdownCalls())
	}
}

func TestGracefulShutdownClosesSeasonStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store = config.StoreConfig{Kind: config.StoreSQL, SQLDriver: config.DriverSQLite, SQLDSN: t.TempDir() + "/seasons.db"}
	srv, err := newServerWithProvider(cfg, nil, testutil.GoodProvider{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.httpServer = &testutil.StubHTTPServer{}
	srv.gracefulShutdown()

	if _, err := srv.seasons.ReadAll(context.Background(), []int{2024}); err == nil {
		t.Fatalf("expected reads to fail after the store is closed")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller start/stop once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls())
	}
}
