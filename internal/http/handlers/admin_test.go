package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/testutil"
)

type stubRefresher struct {
	res   pipeline.Result
	err   error
	calls int
}

func (s *stubRefresher) Refresh(ctx context.Context) (pipeline.Result, error) {
	_ = ctx
	s.calls++
	return s.res, s.err
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	ref := &stubRefresher{}
	h := NewAdminHandler(ref, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := httptest.NewRecorder()
		h.Refresh(rr, adminRequest(token))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", token, rr.Code)
		}
	}
	if ref.calls != 0 {
		t.Fatalf("expected refresher untouched without auth")
	}
}

func TestAdminRefreshRunsPipeline(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	res := testutil.SampleResult(2023, 2024)
	res.StartedAt = start
	res.FinishedAt = start.Add(1500 * time.Millisecond)
	ref := &stubRefresher{res: res}
	h := NewAdminHandler(ref, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp RefreshResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Status != "ok" || resp.RunID != res.RunID || resp.Records != len(res.Records) {
		t.Fatalf("unexpected refresh response %+v", resp)
	}
	if resp.DurationMS != 1500 || len(resp.Seasons) != 2 {
		t.Fatalf("unexpected run details %+v", resp)
	}
	if ref.calls != 1 {
		t.Fatalf("expected one refresh, got %d", ref.calls)
	}
}

func TestAdminRefreshMapsErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: analysis.ErrRefreshInProgress, want: http.StatusConflict},
		{err: fmt.Errorf("run: %w", pipeline.ErrNoSeasons), want: http.StatusBadGateway},
		{err: errors.New("store offline"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h := NewAdminHandler(&stubRefresher{err: tc.err}, "secret", nil)
		rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
		if rr.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rr.Code)
		}
	}
}

func TestAdminRefreshWithoutRefresher(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAdminEnabled(t *testing.T) {
	var nilHandler *AdminHandler
	if nilHandler.Enabled() {
		t.Fatalf("nil handler must not be enabled")
	}
	if NewAdminHandler(nil, "", nil).Enabled() {
		t.Fatalf("empty token must disable admin routes")
	}
	if !NewAdminHandler(nil, "secret", nil).Enabled() {
		t.Fatalf("expected admin enabled with token")
	}
}
