package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/app/analysis"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/http/requestutil"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

// Refresher re-runs the pipeline on demand.
type Refresher interface {
	Refresh(ctx context.Context) (pipeline.Result, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// RefreshResponse is the body of a successful POST /admin/refresh.
type RefreshResponse struct {
	Status     string         `json:"status"`
	RunID      string         `json:"runId"`
	Records    int            `json:"records"`
	DurationMS int64          `json:"durationMs"`
	Seasons    []SeasonStatus `json:"seasons"`
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs the pipeline now and publishes the result.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "pipeline not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	res, err := h.refresher.Refresh(r.Context())
	switch {
	case errors.Is(err, analysis.ErrRefreshInProgress):
		writeError(w, r, http.StatusConflict, "refresh already in progress", logger)
		return
	case errors.Is(err, pipeline.ErrNoSeasons):
		logging.Warn(logger, "admin refresh produced no seasons", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "no season could be fetched", logger)
		return
	case err != nil:
		logging.Error(logger, "admin refresh failed", err)
		writeError(w, r, http.StatusInternalServerError, "refresh failed", logger)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Status:     "ok",
		RunID:      res.RunID,
		Records:    len(res.Records),
		DurationMS: res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond).Milliseconds(),
		Seasons:    seasonStatuses(res.Seasons),
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldRunID, res.RunID),
		slog.Int(logging.FieldCount, len(res.Records)),
	)
}

// Enabled reports whether admin routes should be mounted.
func (h *AdminHandler) Enabled() bool {
	return h != nil && h.token != ""
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
