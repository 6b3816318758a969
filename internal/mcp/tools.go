package mcp

import (
	"github.com/bobmcallan/invest-portal/internal/listing"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/mark3labs/mcp-go/server"
)

var sortValues = func() []string {
	out := make([]string, len(listing.SortOptions))
	for i, o := range listing.SortOptions {
		out[i] = o.Value
	}
	return out
}()

// Tools is the portal's tool catalog.
func Tools() []CatalogTool {
	symbol := CatalogParam{Name: "symbol", Type: "string", Description: "Ticker symbol, e.g. AAPL", Required: true}

	return []CatalogTool{
		{
			Name:        "get_version",
			Description: "Get the portal version and the market data backend status. Use this to verify connectivity.",
			handler:     versionHandler,
		},
		{
			Name:        "search_symbols",
			Description: "Search U.S. stocks and ETFs by symbol or name.",
			Params: []CatalogParam{
				{Name: "query", Type: "string", Description: "Search text, at most 50 characters", Required: true},
				{Name: "type", Type: "string", Description: "Restrict results", Enum: []string{models.SearchAll, models.SearchStock, models.SearchETF}},
			},
			handler: searchHandler,
		},
		{
			Name:        "get_stock",
			Description: "Get a stock's company profile and latest quote.",
			Params:      []CatalogParam{symbol},
			handler:     stockHandler,
		},
		{
			Name:        "get_stock_history",
			Description: "Get daily price bars for a stock.",
			Params: []CatalogParam{
				symbol,
				{Name: "period", Type: "string", Description: "History window, default " + models.DefaultPeriod, Enum: models.Periods},
			},
			handler: historyHandler,
		},
		{
			Name:        "get_etf",
			Description: "Get an ETF's profile, latest quote and top holdings.",
			Params: []CatalogParam{
				symbol,
				{Name: "holdings_limit", Type: "number", Description: "Number of holdings, 1 to 100, default 20"},
			},
			handler: etfHandler,
		},
		{
			Name:        "list_index_components",
			Description: "List one page of S&P 500 or Nasdaq 100 constituents.",
			Params: []CatalogParam{
				{Name: "index", Type: "string", Description: "SPX or NDX", Required: true, Enum: []string{models.IndexSP500, models.IndexNasdaq100}},
				{Name: "page", Type: "number", Description: "Page number, default 1"},
				{Name: "sort", Type: "string", Description: "Sort order, default " + listing.DefaultSort, Enum: sortValues},
				{Name: "sector", Type: "string", Description: "Sector filter", Enum: listing.Sectors},
			},
			handler: componentsHandler,
		},
		{
			Name:        "get_analysis",
			Description: "Get the published Thai-language analysis for a stock or ETF.",
			Params: []CatalogParam{
				symbol,
				{Name: "type", Type: "string", Description: "Security type, default stock", Enum: []string{models.SymbolTypeStock, models.SymbolTypeETF}},
			},
			handler: analysisHandler,
		},
	}
}

// RegisterTools adds every catalog tool to s and returns the count.
func RegisterTools(s *server.MCPServer, svc *market.Service, catalog []CatalogTool) int {
	for _, ct := range catalog {
		s.AddTool(BuildMCPTool(ct), ct.handler(svc))
	}
	return len(catalog)
}
