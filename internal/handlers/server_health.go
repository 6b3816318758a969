package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/interfaces"
)

const backendProbeTimeout = 3 * time.Second

// ServerHealthHandler probes the market data backend's /health endpoint.
type ServerHealthHandler struct {
	logger *common.Logger
	api    interfaces.MarketData
}

// NewServerHealthHandler creates a new backend health handler.
func NewServerHealthHandler(logger *common.Logger, api interfaces.MarketData) *ServerHealthHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &ServerHealthHandler{logger: logger, api: api}
}

// ServeHTTP handles GET /api/server-health.
func (h *ServerHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	SetMaxAge(w, 0)

	ctx, cancel := context.WithTimeout(r.Context(), backendProbeTimeout)
	defer cancel()

	health, err := h.api.Health(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("backend health probe failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}

	body := map[string]string{"status": "ok"}
	if health.Service != "" {
		body["service"] = health.Service
	}
	if health.Timestamp != "" {
		body["timestamp"] = health.Timestamp
	}
	WriteJSON(w, http.StatusOK, body)
}
