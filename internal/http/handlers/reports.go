package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/http/requestutil"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/report"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler renders the latest analysis as downloadable artifacts.
type ReportHandler struct {
	svc    *analysis.Service
	logger *slog.Logger
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(svc *analysis.Service, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

// Workbook streams the XLSX workbook for the latest result.
func (h *ReportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Latest()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, res); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "render workbook failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render workbook", h.logger)
		return
	}
	writeBinary(w, contentTypeXLSX, report.WorkbookFile, buf.Bytes(), h.logger)
}

// Chart renders one PNG chart. Optional ?season= and ?top_n= tune its content.
func (h *ReportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chart, err := report.ParseChart(chi.URLParam(r, "chart"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
		return
	}
	season, err := requestutil.PositiveInt(r.URL.Query().Get("season"), 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid season", h.logger)
		return
	}
	topN, err := requestutil.PositiveInt(r.URL.Query().Get("top_n"), 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid top_n", h.logger)
		return
	}

	res, err := h.svc.Latest()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	var buf bytes.Buffer
	err = report.RenderChart(&buf, chart, res, report.Options{Season: season, TopN: topN})
	switch {
	case errors.Is(err, report.ErrEmptyResult):
		writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
		return
	case err != nil:
		logging.Error(loggerFromContext(r, h.logger), "render chart failed", err, "chart", string(chart))
		writeError(w, r, http.StatusInternalServerError, "failed to render chart", h.logger)
		return
	}
	writeBinary(w, "image/png", "", buf.Bytes(), h.logger)
}
