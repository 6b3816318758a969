// Package market pairs each backend read with its query key so every
// caller (pages, tools, warmup) shares one cache entry per request.
package market

import (
	"context"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/interfaces"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/bobmcallan/invest-portal/internal/query"
)

// Service reads market data through the query cache.
type Service struct {
	api     interfaces.MarketData
	queries *query.Client
}

// NewService creates a service over api backed by queries.
func NewService(api interfaces.MarketData, queries *query.Client) *Service {
	return &Service{api: api, queries: queries}
}

// Queries returns the query client.
func (s *Service) Queries() *query.Client { return s.queries }

// API returns the uncached backend.
func (s *Service) API() interfaces.MarketData { return s.api }

// Keys for every cached read. The resource name selects the freshness tier.

func IndicesKey() query.Key { return query.NewKey("indices") }

func IndexKey(symbol string) query.Key {
	return query.NewKey("index", models.NormalizeSymbol(symbol))
}

func ComponentsKey(symbol string, q client.ComponentsQuery) query.Key {
	return query.NewKey("components", models.NormalizeSymbol(symbol), q.Encode())
}

func StocksKey(q client.StocksQuery) query.Key { return query.NewKey("stocks", q.Encode()) }

func StockKey(symbol string) query.Key {
	return query.NewKey("stock", models.NormalizeSymbol(symbol))
}

func QuoteKey(symbol string) query.Key {
	return query.NewKey("quote", models.NormalizeSymbol(symbol))
}

func HistoryKey(symbol, period string) query.Key {
	return query.NewKey("history", models.NormalizeSymbol(symbol), period)
}

func AnalysisKey(symbolType, symbol string) query.Key {
	return query.NewKey("analysis", symbolType, models.NormalizeSymbol(symbol))
}

func ETFsKey(q client.ETFsQuery) query.Key { return query.NewKey("etfs", q.Encode()) }

func TopETFsKey() query.Key { return query.NewKey("etf-top50") }

func ETFKey(symbol string) query.Key {
	return query.NewKey("etf", models.NormalizeSymbol(symbol))
}

func ETFQuoteKey(symbol string) query.Key {
	return query.NewKey("etf-quote", models.NormalizeSymbol(symbol))
}

func HoldingsKey(symbol string, limit int) query.Key {
	return query.NewKey("holdings", models.NormalizeSymbol(symbol), limit)
}

func SearchKey(q, kind string) query.Key { return query.NewKey("search", q, kind) }

// Indices returns every index.
func (s *Service) Indices(ctx context.Context) query.State[[]models.Index] {
	return query.Fetch(ctx, s.queries, IndicesKey(), s.api.ListIndices)
}

// Index returns one index.
func (s *Service) Index(ctx context.Context, symbol string) query.State[*models.Index] {
	return query.Fetch(ctx, s.queries, IndexKey(symbol), func(ctx context.Context) (*models.Index, error) {
		return s.api.GetIndex(ctx, symbol)
	})
}

// ComponentsFetcher returns the fetch function for one components page.
func (s *Service) ComponentsFetcher(symbol string, q client.ComponentsQuery) func(context.Context) (*models.Page[models.IndexComponent], error) {
	return func(ctx context.Context) (*models.Page[models.IndexComponent], error) {
		return s.api.ListIndexComponents(ctx, symbol, q)
	}
}

// Components returns one page of an index's constituents.
func (s *Service) Components(ctx context.Context, symbol string, q client.ComponentsQuery) query.State[*models.Page[models.IndexComponent]] {
	return query.Fetch(ctx, s.queries, ComponentsKey(symbol, q), s.ComponentsFetcher(symbol, q))
}

// Stocks returns one page of the stock universe.
func (s *Service) Stocks(ctx context.Context, q client.StocksQuery) query.State[*models.Page[models.StockListItem]] {
	return query.Fetch(ctx, s.queries, StocksKey(q), func(ctx context.Context) (*models.Page[models.StockListItem], error) {
		return s.api.ListStocks(ctx, q)
	})
}

// Stock returns a company profile.
func (s *Service) Stock(ctx context.Context, symbol string) query.State[*models.Stock] {
	return query.Fetch(ctx, s.queries, StockKey(symbol), func(ctx context.Context) (*models.Stock, error) {
		return s.api.GetStock(ctx, symbol)
	})
}

// StockQuote returns a stock's latest quote.
func (s *Service) StockQuote(ctx context.Context, symbol string) query.State[*models.Quote] {
	return query.Fetch(ctx, s.queries, QuoteKey(symbol), func(ctx context.Context) (*models.Quote, error) {
		return s.api.GetStockQuote(ctx, symbol)
	})
}

// History returns daily bars. period must already be valid.
func (s *Service) History(ctx context.Context, symbol, period string) query.State[[]models.PriceBar] {
	return query.Fetch(ctx, s.queries, HistoryKey(symbol, period), func(ctx context.Context) ([]models.PriceBar, error) {
		return s.api.GetStockHistory(ctx, symbol, period)
	})
}

// StockAnalysis returns the analysis for a stock; Data is nil when none is published.
func (s *Service) StockAnalysis(ctx context.Context, symbol string) query.State[*models.Analysis] {
	return query.Fetch(ctx, s.queries, AnalysisKey(models.SymbolTypeStock, symbol), func(ctx context.Context) (*models.Analysis, error) {
		return s.api.GetStockAnalysis(ctx, symbol)
	})
}

// ETFs returns one page of ETFs.
func (s *Service) ETFs(ctx context.Context, q client.ETFsQuery) query.State[*models.Page[models.ETFListItem]] {
	return query.Fetch(ctx, s.queries, ETFsKey(q), func(ctx context.Context) (*models.Page[models.ETFListItem], error) {
		return s.api.ListETFs(ctx, q)
	})
}

// TopETFs returns the fifty most popular ETFs.
func (s *Service) TopETFs(ctx context.Context) query.State[[]models.ETFListItem] {
	return query.Fetch(ctx, s.queries, TopETFsKey(), s.api.TopETFs)
}

// ETF returns an ETF profile.
func (s *Service) ETF(ctx context.Context, symbol string) query.State[*models.ETF] {
	return query.Fetch(ctx, s.queries, ETFKey(symbol), func(ctx context.Context) (*models.ETF, error) {
		return s.api.GetETF(ctx, symbol)
	})
}

// ETFQuote returns an ETF's latest quote.
func (s *Service) ETFQuote(ctx context.Context, symbol string) query.State[*models.Quote] {
	return query.Fetch(ctx, s.queries, ETFQuoteKey(symbol), func(ctx context.Context) (*models.Quote, error) {
		return s.api.GetETFQuote(ctx, symbol)
	})
}

// Holdings returns up to limit holdings.
func (s *Service) Holdings(ctx context.Context, symbol string, limit int) query.State[[]models.ETFHolding] {
	return query.Fetch(ctx, s.queries, HoldingsKey(symbol, limit), func(ctx context.Context) ([]models.ETFHolding, error) {
		return s.api.GetETFHoldings(ctx, symbol, limit)
	})
}

// ETFAnalysis returns the analysis for an ETF; Data is nil when none is published.
func (s *Service) ETFAnalysis(ctx context.Context, symbol string) query.State[*models.Analysis] {
	return query.Fetch(ctx, s.queries, AnalysisKey(models.SymbolTypeETF, symbol), func(ctx context.Context) (*models.Analysis, error) {
		return s.api.GetETFAnalysis(ctx, symbol)
	})
}

// Search finds stocks and ETFs. q must already be normalised.
func (s *Service) Search(ctx context.Context, q, kind string) query.State[*models.SearchResult] {
	return query.Fetch(ctx, s.queries, SearchKey(q, kind), func(ctx context.Context) (*models.SearchResult, error) {
		return s.api.Search(ctx, q, kind)
	})
}
