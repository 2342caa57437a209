package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/http/handlers"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/http/middleware"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/metrics"
)

// RouterOptions carries the cross-cutting pieces every route shares.
type RouterOptions struct {
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
	CORSOrigins []string
}

// NewRouter mounts the JSON API and report routes. Admin routes are mounted only when admin is enabled.
func NewRouter(h *handlers.Handler, reports *handlers.ReportHandler, admin *handlers.AdminHandler, opts RouterOptions) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(opts.Logger, opts.Recorder))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/records", h.Records)
	r.Get("/seasons", h.Seasons)
	r.Get("/seasons/{season}/top-scorers", h.TopScorers)
	r.Get("/summaries", h.Summaries)
	r.Get("/classified", h.Classified)
	r.Get("/rankings", h.Rankings)
	r.Get("/usage", h.Usage)
	r.Get("/top-per48", h.TopPer48)

	if reports != nil {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/workbook.xlsx", reports.Workbook)
			r.Get("/charts/{chart}.png", reports.Chart)
		})
	}

	if admin.Enabled() {
		r.Post("/admin/refresh", admin.Refresh)
	}
	return r
}
