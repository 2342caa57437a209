package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/report"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/testutil"
)

func reportRouter(res pipeline.Result) http.Handler {
	h := NewReportHandler(testutil.NewAnalysisServiceWithResult(res), nil)
	r := chi.NewRouter()
	r.Get("/reports/workbook.xlsx", h.Workbook)
	r.Get("/reports/charts/{chart}.png", h.Chart)
	return r
}

func TestWorkbookDownload(t *testing.T) {
	router := reportRouter(testutil.SampleResult(2023, 2024))

	rr := testutil.Serve(router, http.MethodGet, "/reports/workbook.xlsx", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, report.WorkbookFile) {
		t.Fatalf("expected attachment filename, got %q", got)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if idx, err := f.GetSheetIndex(report.SheetRankings); err != nil || idx < 0 {
		t.Fatalf("expected rankings sheet, idx=%d err=%v", idx, err)
	}
}

func TestChartDownload(t *testing.T) {
	router := reportRouter(testutil.SampleResult(2023, 2024))

	for _, c := range report.Charts() {
		rr := testutil.Serve(router, http.MethodGet, "/reports/charts/"+c.FileName()+"?top_n=4", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		if _, err := png.Decode(bytes.NewReader(rr.Body.Bytes())); err != nil {
			t.Fatalf("%s: expected png body, got %v", c, err)
		}
	}

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/charts/pie.png", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/charts/top-scorers.png?season=1950", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/charts/top-scorers.png?season=x", nil), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/charts/top-scorers.png?top_n=0", nil), http.StatusBadRequest)
}

func TestReportsBeforeFirstRun(t *testing.T) {
	router := reportRouter(pipeline.Result{})
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/workbook.xlsx", nil), http.StatusServiceUnavailable)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/reports/charts/top-per48.png", nil), http.StatusServiceUnavailable)
}
