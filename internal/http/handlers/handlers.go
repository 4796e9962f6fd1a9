package handlers

import (
	"bytes"
	"log/slog"
	nethttp "net/http"

	"pwhl-schedule-service/internal/app/schedule"
	"pwhl-schedule-service/internal/export"
	"pwhl-schedule-service/internal/http/requestutil"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/poller"
	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/seasons"
)

// Handler wires HTTP routes to the schedule service.
type Handler struct {
	svc      *schedule.Service
	logger   *slog.Logger
	version  string
	statusFn func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(svc *schedule.Service, logger *slog.Logger, version string, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		version:  version,
		statusFn: statusFn,
	}
}

// Health reports liveness and build info.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok", "version": h.version}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Seasons lists every known season for selection controls.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	_ = r
	writeJSON(w, nethttp.StatusOK, map[string][]seasons.Season{"seasons": h.svc.Seasons()}, h.logger)
}

// Schedule returns the filtered schedule view with stats and filter options.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	criteria, err := requestutil.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	view, err := h.svc.Schedule(r.Context(), criteria)
	if err != nil {
		h.writeScheduleError(w, r, err)
		return
	}

	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "served schedule", slog.Int(logging.FieldCount, len(view.Games)))
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// ExportCSV streams the filtered schedule as a CSV attachment. An empty
// result is a legitimate header-only document.
func (h *Handler) ExportCSV(w nethttp.ResponseWriter, r *nethttp.Request) {
	criteria, err := requestutil.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	// Render into a buffer first so failures can still produce a JSON
	// error response instead of a truncated CSV body.
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(r.Context(), criteria, &buf); err != nil {
		h.writeScheduleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pwhl-schedule.csv"`)
	w.WriteHeader(nethttp.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Error(h.logger, "failed to write csv response", err)
	}
}

func (h *Handler) writeScheduleError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case isUnknownSeason(err):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	case isUpstreamFailure(err):
		writeError(w, r, nethttp.StatusBadGateway, err.Error(), h.logger)
	case err == export.ErrEmptyExport:
		writeError(w, r, nethttp.StatusNotFound, err.Error(), h.logger)
	default:
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
	}
}

func isUnknownSeason(err error) bool {
	_, ok := seasons.AsUnknownSeason(err)
	return ok
}

func isUpstreamFailure(err error) bool {
	if _, ok := providers.AsUpstreamUnavailable(err); ok {
		return true
	}
	_, ok := providers.AsUpstreamMalformed(err)
	return ok
}
