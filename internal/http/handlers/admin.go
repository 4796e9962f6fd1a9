package handlers

import (
	"crypto/subtle"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"pwhl-schedule-service/internal/app/schedule"
	"pwhl-schedule-service/internal/logging"
)

// AdminHandler exposes bearer-token guarded maintenance operations.
type AdminHandler struct {
	svc    *schedule.Service
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables the
// handler; the router only mounts it when a token is configured.
func NewAdminHandler(svc *schedule.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, token: token, logger: logger}
}

// Refresh forces a re-fetch of one season (?season=) or every season.
func (h *AdminHandler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.authorized(r) {
		writeError(w, r, nethttp.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	var seasonID *int
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid season", h.logger)
			return
		}
		seasonID = &id
	}

	if err := h.svc.Refresh(r.Context(), seasonID); err != nil {
		switch {
		case isUnknownSeason(err):
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		case isUpstreamFailure(err):
			writeError(w, r, nethttp.StatusBadGateway, err.Error(), h.logger)
		default:
			writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
		}
		return
	}

	logger := loggerFromContext(r, h.logger)
	logging.Info(logger, "admin refresh complete")
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *AdminHandler) authorized(r *nethttp.Request) bool {
	if h.token == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	supplied, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(h.token)) == 1
}
