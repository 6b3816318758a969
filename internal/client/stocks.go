package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// DefaultListPerPage is the page size for stock and ETF lists.
const DefaultListPerPage = 20

// StocksQuery selects one page of the stock universe.
type StocksQuery struct {
	Page    int
	PerPage int
	Sector  string
	Search  string
}

func (q StocksQuery) withDefaults() StocksQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultListPerPage
	}
	return q
}

// Encode returns the query string in backend parameter order.
func (q StocksQuery) Encode() string {
	q = q.withDefaults()
	return encodeParams(
		param{"page", itoa(q.Page)},
		param{"per_page", itoa(q.PerPage)},
		param{"sector", q.Sector},
		param{"search", q.Search},
	)
}

// ListStocks returns one page of stocks.
func (c *Client) ListStocks(ctx context.Context, q StocksQuery) (*models.Page[models.StockListItem], error) {
	q = q.withDefaults()
	return getList[models.StockListItem](ctx, c, "stocks", "/api/stocks", q.Encode(), q.Page, q.PerPage)
}

// GetStock returns a company profile.
func (c *Client) GetStock(ctx context.Context, symbol string) (*models.Stock, error) {
	return getOne[models.Stock](ctx, c, "stock", symbolPath("/api/stocks", symbol, ""))
}

// GetStockQuote returns the latest quote for a stock.
func (c *Client) GetStockQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return getOne[models.Quote](ctx, c, "quote", symbolPath("/api/stocks", symbol, "/quote"))
}

// GetStockHistory returns daily bars for period. Unknown periods fall back
// to the default window.
func (c *Client) GetStockHistory(ctx context.Context, symbol, period string) ([]models.PriceBar, error) {
	if !models.ValidPeriod(period) {
		period = models.DefaultPeriod
	}
	path := symbolPath("/api/stocks", symbol, "/history")
	body, err := c.get(ctx, "history", path, encodeParams(param{"period", period}))
	if err != nil {
		return nil, err
	}

	var env models.Envelope[[]models.PriceBar]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if env.Data == nil {
		return []models.PriceBar{}, nil
	}
	return env.Data, nil
}

// GetStockAnalysis returns the published analysis for a stock, or nil
// when none exists.
func (c *Client) GetStockAnalysis(ctx context.Context, symbol string) (*models.Analysis, error) {
	return c.getAnalysis(ctx, "analysis", symbolPath("/api/stocks", symbol, "/analysis"))
}

// getAnalysis maps {"data": null} to a nil analysis rather than an error.
func (c *Client) getAnalysis(ctx context.Context, endpoint, path string) (*models.Analysis, error) {
	body, err := c.get(ctx, endpoint, path, "")
	if err != nil {
		return nil, err
	}

	var env models.RawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if env.IsNull() {
		return nil, nil
	}

	var a models.Analysis
	if err := json.Unmarshal(env.Data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	a.Symbol = models.NormalizeSymbol(a.Symbol)
	if a.Empty() {
		return nil, nil
	}
	return &a, nil
}
