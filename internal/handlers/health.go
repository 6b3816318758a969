package handlers

import (
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/common"
)

// HealthHandler reports that the portal process is serving.
type HealthHandler struct {
	logger *common.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	SetMaxAge(w, 0)
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
