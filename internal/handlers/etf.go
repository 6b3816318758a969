package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/invest-portal/internal/chart"
	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/listing"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/bobmcallan/invest-portal/internal/query"
)

type etfData struct {
	Symbol   string
	ETF      *models.ETF
	Quote    *models.Quote
	Holdings []models.ETFHolding
	Analysis *models.Analysis
	Chart    *chart.Embed
}

// ETFHandler serves the ETF detail page.
type ETFHandler struct {
	pages    *Pages
	market   *market.Service
	logger   *common.Logger
	chart    config.ChartConfig
	embedder chart.Embedder
}

// NewETFHandler creates a new ETF detail handler.
func NewETFHandler(pages *Pages, svc *market.Service, logger *common.Logger, chartCfg config.ChartConfig, embedder chart.Embedder) *ETFHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &ETFHandler{pages: pages, market: svc, logger: logger, chart: chartCfg, embedder: embedder}
}

// ServeHTTP handles GET /etfs/{symbol}.
func (h *ETFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		etf      query.State[*models.ETF]
		quote    query.State[*models.Quote]
		holdings query.State[[]models.ETFHolding]
		analysis query.State[*models.Analysis]
	)
	query.All(
		func() { etf = h.market.ETF(ctx, symbol) },
		func() { quote = h.market.ETFQuote(ctx, symbol) },
		func() { holdings = h.market.Holdings(ctx, symbol, client.DefaultHoldingsLimit) },
		func() { analysis = h.market.ETFAnalysis(ctx, symbol) },
	)

	if etf.IsError() {
		h.pages.Failure(w, r, "etf", symbol, etf.Err)
		return
	}

	data := etfData{Symbol: symbol, ETF: etf.Data}
	if quote.HasData() {
		data.Quote = quote.Data
	}
	if holdings.HasData() {
		data.Holdings = holdings.Data
	} else {
		h.logger.Debug().Str("symbol", symbol).Err(holdings.Err).Msg("holdings unavailable")
	}
	if analysis.HasData() && !analysis.Data.Empty() {
		data.Analysis = analysis.Data
	}

	// ETFs carry no exchange, so the chart uses the bare symbol.
	widget := chart.NewWidget(h.embedder)
	defer widget.Close()
	embed, err := widget.Update(chart.Params{
		Symbol:   symbol,
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

	h.pages.Render(w, r, http.StatusOK, "etf.html", Page{
		Title:  symbol + " " + etf.Data.DisplayName() + " | " + SiteTitle,
		Active: "etfs",
		Data:   data,
	})
}

type etfListData struct {
	Category   string
	Categories []string
	Items      []models.ETFListItem
	Failed     bool
	Pagination listing.Pagination
}

// etfCategories are the category filters offered above the ETF list.
var etfCategories = []string{
	"Large Blend",
	"Large Growth",
	"Large Value",
	"Mid-Cap Blend",
	"Small Blend",
	"Technology",
	"Foreign Large Blend",
	"Diversified Emerging Mkts",
	"Intermediate Core Bond",
	"Long Government",
	"Commodities Focused",
	"Real Estate",
}

// ETFListHandler serves the popular ETF list and the per-category listing.
type ETFListHandler struct {
	pages  *Pages
	market *market.Service
}

// NewETFListHandler creates a new ETF list handler.
func NewETFListHandler(pages *Pages, svc *market.Service) *ETFListHandler {
	return &ETFListHandler{pages: pages, market: svc}
}

// ServeHTTP handles GET /etfs. Without ?category the top 50 are shown;
// with it the paginated /api/etfs listing is used.
func (h *ETFListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	category := r.URL.Query().Get("category")
	data := etfListData{Category: category, Categories: etfCategories}

	if category == "" {
		st := h.market.TopETFs(ctx)
		data.Items, data.Failed = st.Data, st.IsError()
	} else {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		st := h.market.ETFs(ctx, client.ETFsQuery{Page: page, PerPage: client.DefaultListPerPage, Category: category})
		data.Failed = st.IsError()
		if st.HasData() {
			data.Items = st.Data.Items
			data.Pagination = newETFPagination(st.Data.Meta, category)
		}
	}

	h.pages.Render(w, r, http.StatusOK, "etfs.html", Page{Active: "etfs", Data: data})
}

// newETFPagination reuses the list pagination control with links that
// keep the category filter.
func newETFPagination(meta models.Meta, category string) listing.Pagination {
	p := listing.NewPagination(meta, listing.Default().WithPage(meta.Page), "/etfs")
	link := func(page int) string {
		v := url.Values{}
		v.Set("category", category)
		if page > 1 {
			v.Set("page", strconv.Itoa(page))
		}
		return "/etfs?" + v.Encode()
	}
	if !p.PrevDisabled {
		p.PrevURL = link(p.Page - 1)
	}
	if !p.NextDisabled {
		p.NextURL = link(p.Page + 1)
	}
	return p
}
