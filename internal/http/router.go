package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pwhl-schedule-service/internal/http/handlers"
	"pwhl-schedule-service/internal/http/middleware"
	"pwhl-schedule-service/internal/metrics"
)

// RouterConfig carries the wiring the router needs beyond its handlers.
type RouterConfig struct {
	CORSOrigins []string
	AdminToken  string
	// Metrics, when set, is mounted at /metrics on the same mux.
	Metrics nethttp.Handler
}

// NewRouter assembles the service's chi router: request-ID aware logging,
// panic recovery, CORS, the schedule API, probes, and optional admin and
// metrics endpoints.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler, cfg RouterConfig, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seasons", h.Seasons)
		r.Get("/schedule", h.Schedule)
		r.Get("/schedule/export.csv", h.ExportCSV)

		if admin != nil && cfg.AdminToken != "" {
			r.Post("/admin/refresh", admin.Refresh)
		}
	})

	if cfg.Metrics != nil {
		r.Method(nethttp.MethodGet, "/metrics", cfg.Metrics)
	}

	return r
}
