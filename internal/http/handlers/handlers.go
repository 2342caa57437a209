package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/classifier"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/http/requestutil"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/poller"
)

// Handler serves read-only JSON views over the latest analysis.
type Handler struct {
	svc      *analysis.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *analysis.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// RecordsResponse is the body of GET /records.
type RecordsResponse struct {
	Season  int                           `json:"season,omitempty"`
	Count   int                           `json:"count"`
	Records []playoffs.PlayerSeasonRecord `json:"records"`
}

// ClassifiedResponse is the body of GET /classified.
type ClassifiedResponse struct {
	Category   playoffs.UsageCategory      `json:"category,omitempty"`
	Thresholds classifier.Thresholds       `json:"thresholds"`
	Count      int                         `json:"count"`
	Records    []playoffs.ClassifiedRecord `json:"records"`
}

// RankingsResponse is the body of GET /rankings.
type RankingsResponse struct {
	Category playoffs.UsageCategory      `json:"category"`
	TopN     int                         `json:"topN"`
	Records  []playoffs.ClassifiedRecord `json:"records"`
}

// SeasonStatus is one entry of GET /seasons.
type SeasonStatus struct {
	Season  int    `json:"season"`
	OK      bool   `json:"ok"`
	Kept    int    `json:"kept"`
	Dropped int    `json:"dropped"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// SeasonsResponse is the body of GET /seasons.
type SeasonsResponse struct {
	RunID   string         `json:"runId"`
	Seasons []SeasonStatus `json:"seasons"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether an analysis is loaded and the refresh loop is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.svc.Ready() {
		msg := "analysis not available yet"
		if h.statusFn != nil {
			if last := h.statusFn().LastError; last != "" {
				msg = last
			}
		}
		writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
		return
	}
	if h.statusFn != nil {
		if status := h.statusFn(); !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Records returns the combined records, optionally narrowed by ?season=.
func (h *Handler) Records(w nethttp.ResponseWriter, r *nethttp.Request) {
	season, err := requestutil.PositiveInt(r.URL.Query().Get("season"), 0)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
		return
	}
	records, err := h.svc.Records(season)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, RecordsResponse{Season: season, Count: len(records), Records: records}, h.logger)
}

// Seasons reports what happened to each requested season in the latest run.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	res, err := h.svc.Latest()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, SeasonsResponse{RunID: res.RunID, Seasons: seasonStatuses(res.Seasons)}, h.logger)
}

// Summaries returns the per-season average points per 48.
func (h *Handler) Summaries(w nethttp.ResponseWriter, r *nethttp.Request) {
	summaries, err := h.svc.Summaries()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, summaries, h.logger)
}

// Classified returns classified records with the thresholds used, optionally filtered by ?category=.
func (h *Handler) Classified(w nethttp.ResponseWriter, r *nethttp.Request) {
	var category playoffs.UsageCategory
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := classifier.ParseCategory(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
			return
		}
		category = c
	}
	records, thresholds, err := h.svc.Classified(category)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, ClassifiedResponse{
		Category:   category,
		Thresholds: thresholds,
		Count:      len(records),
		Records:    records,
	}, h.logger)
}

// Rankings returns the top-N records of a category by points per 48.
// Without query parameters it serves the ranking configured for the run.
func (h *Handler) Rankings(w nethttp.ResponseWriter, r *nethttp.Request) {
	res, err := h.svc.Latest()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	category := res.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := classifier.ParseCategory(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
			return
		}
		category = c
	}
	topN, err := requestutil.PositiveInt(r.URL.Query().Get("top_n"), res.TopN)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid top_n", h.logger)
		return
	}

	records, err := h.svc.Rankings(category, topN)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "served rankings",
		logging.FieldCategory, string(category),
		logging.FieldCount, len(records),
	)
	writeJSON(w, nethttp.StatusOK, RankingsResponse{Category: category, TopN: topN, Records: records}, h.logger)
}

// Usage returns how many records fall into each category.
func (h *Handler) Usage(w nethttp.ResponseWriter, r *nethttp.Request) {
	counts, err := h.svc.Usage()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	out := make(map[string]int, len(counts))
	for _, c := range playoffs.Categories() {
		out[string(c)] = counts[c]
	}
	writeJSON(w, nethttp.StatusOK, out, h.logger)
}

// TopScorers returns a season's leading scorers by total points.
func (h *Handler) TopScorers(w nethttp.ResponseWriter, r *nethttp.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
		return
	}
	topN, err := requestutil.PositiveInt(r.URL.Query().Get("top_n"), classifier.DefaultTopN)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid top_n", h.logger)
		return
	}
	records, err := h.svc.TopScorers(season, topN)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if len(records) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "season not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, RecordsResponse{Season: season, Count: len(records), Records: records}, h.logger)
}

// TopPer48 returns the highest points-per-48 records across every season.
func (h *Handler) TopPer48(w nethttp.ResponseWriter, r *nethttp.Request) {
	topN, err := requestutil.PositiveInt(r.URL.Query().Get("top_n"), classifier.DefaultTopN)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid top_n", h.logger)
		return
	}
	records, err := h.svc.TopPer48(topN)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, RecordsResponse{Count: len(records), Records: records}, h.logger)
}

func seasonStatuses(outcomes []pipeline.SeasonOutcome) []SeasonStatus {
	out := make([]SeasonStatus, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, SeasonStatus{
			Season:  o.Season,
			OK:      o.OK(),
			Kept:    o.Kept,
			Dropped: o.Stats.Dropped(),
			Error:   o.ErrorMessage(),
			Warning: o.WarningMessage(),
		})
	}
	return out
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
