package handlers

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
)

// HistoryHandler returns a stock's daily price history as JSON.
type HistoryHandler struct {
	market *market.Service
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *market.Service) *HistoryHandler {
	return &HistoryHandler{market: svc}
}

// ServeHTTP handles GET /api/stocks/{symbol}/history?period=. An unknown
// period is rejected rather than silently widened.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := pathSymbol(r)
	if !validSymbol(symbol) {
		WriteError(w, http.StatusBadRequest, "invalid symbol")
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = models.DefaultPeriod
	}
	if !models.ValidPeriod(period) {
		WriteError(w, http.StatusBadRequest, "invalid period: "+period)
		return
	}

	st := h.market.History(r.Context(), symbol, period)
	if st.IsError() {
		if errors.Is(st.Err, client.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "symbol not found: "+symbol)
			return
		}
		WriteError(w, http.StatusBadGateway, "history unavailable")
		return
	}

	SetMaxAge(w, h.market.Queries().TTL("history"))
	WriteJSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"period": period,
		"data":   st.Data,
	})
}
