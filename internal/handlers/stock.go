package handlers

import (
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/chart"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/bobmcallan/invest-portal/internal/query"
)

// Detail page tabs.
const (
	TabAnalysis   = "analysis"
	TabOverview   = "overview"
	TabFinancials = "financials"
)

type tab struct {
	Value  string
	Label  string
	Color  string
	Active bool
	URL    string
}

func detailTabs(base, active string) []tab {
	switch active {
	case TabOverview, TabFinancials:
	default:
		active = TabAnalysis
	}
	tabs := []tab{
		{Value: TabAnalysis, Label: "บทวิเคราะห์ (Analysis)", Color: "bg-primary"},
		{Value: TabOverview, Label: "เกี่ยวกับบริษัท (Overview)", Color: "bg-yellow"},
		{Value: TabFinancials, Label: "งบการเงิน (Financials)", Color: "bg-secondary"},
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].Value == active
		tabs[i].URL = base
		if tabs[i].Value != TabAnalysis {
			tabs[i].URL = base + "?tab=" + tabs[i].Value
		}
	}
	return tabs
}

type stockData struct {
	Symbol      string
	Stock       *models.Stock
	Quote       *models.Quote
	QuoteFailed bool
	Analysis    *models.Analysis
	Chart       *chart.Embed
	Tabs        []tab
	Tab         string
}

// StockHandler serves the stock detail page.
type StockHandler struct {
	pages    *Pages
	market   *market.Service
	logger   *common.Logger
	chart    config.ChartConfig
	embedder chart.Embedder
}

// NewStockHandler creates a new stock detail handler.
func NewStockHandler(pages *Pages, svc *market.Service, logger *common.Logger, chartCfg config.ChartConfig, embedder chart.Embedder) *StockHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &StockHandler{pages: pages, market: svc, logger: logger, chart: chartCfg, embedder: embedder}
}

// ServeHTTP handles GET /stocks/{symbol}. The profile, quote and analysis
// are fetched concurrently; only a failed profile fails the page.
func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	symbol := pathSymbol(r)
	if !validSymbol(symbol) {
		h.pages.NotFound(w, r)
		return
	}

	ctx := r.Context()
	var (
		stock    query.State[*models.Stock]
		quote    query.State[*models.Quote]
		analysis query.State[*models.Analysis]
	)
	query.All(
		func() { stock = h.market.Stock(ctx, symbol) },
		func() { quote = h.market.StockQuote(ctx, symbol) },
		func() { analysis = h.market.StockAnalysis(ctx, symbol) },
	)

	if stock.IsError() {
		h.pages.Failure(w, r, "stock", symbol, stock.Err)
		return
	}
	if quote.IsError() {
		h.logger.Debug().Str("symbol", symbol).Err(quote.Err).Msg("quote unavailable")
	}
	if analysis.IsError() {
		h.logger.Debug().Str("symbol", symbol).Err(analysis.Err).Msg("analysis unavailable")
	}

	data := stockData{
		Symbol:      symbol,
		Stock:       stock.Data,
		QuoteFailed: quote.IsError(),
		Tab:         r.URL.Query().Get("tab"),
	}
	if quote.HasData() {
		data.Quote = quote.Data
	}
	if analysis.HasData() && !analysis.Data.Empty() {
		data.Analysis = analysis.Data
	}
	data.Tabs = detailTabs("/stocks/"+symbol, data.Tab)
	for _, t := range data.Tabs {
		if t.Active {
			data.Tab = t.Value
		}
	}

	widget := chart.NewWidget(h.embedder)
	defer widget.Close()
	embed, err := widget.Update(chart.Params{
		Symbol:   symbol,
		Exchange: stock.Data.Exchange,
		Theme:    h.chart.Theme,
		Height:   h.chart.DetailHeight,
		Locale:   h.chart.Locale,
		Timezone: h.chart.Timezone,
		Interval: h.chart.Interval,
	})
	if err != nil {
		h.logger.Warn().Str("symbol", symbol).Err(err).Msg("chart mount failed")
	}
	data.Chart = embed

	h.pages.Render(w, r, http.StatusOK, "stock.html", Page{
		Title:  symbol + " " + stock.Data.DisplayName() + " | " + SiteTitle,
		Active: "stocks",
		Data:   data,
	})
}
