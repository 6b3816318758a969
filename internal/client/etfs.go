package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// Holdings and top-list sizes.
const (
	DefaultHoldingsLimit = 20
	TopETFCount          = 50
)

// ETFsQuery selects one page of ETFs.
type ETFsQuery struct {
	Page     int
	PerPage  int
	Category string
}

func (q ETFsQuery) withDefaults() ETFsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultListPerPage
	}
	return q
}

// Encode returns the query string in backend parameter order.
func (q ETFsQuery) Encode() string {
	q = q.withDefaults()
	return encodeParams(
		param{"page", itoa(q.Page)},
		param{"per_page", itoa(q.PerPage)},
		param{"category", q.Category},
	)
}

// ListETFs returns one page of ETFs.
func (c *Client) ListETFs(ctx context.Context, q ETFsQuery) (*models.Page[models.ETFListItem], error) {
	q = q.withDefaults()
	return getList[models.ETFListItem](ctx, c, "etfs", "/api/etfs", q.Encode(), q.Page, q.PerPage)
}

// TopETFs returns the fifty most popular ETFs.
func (c *Client) TopETFs(ctx context.Context) ([]models.ETFListItem, error) {
	page, err := getList[models.ETFListItem](ctx, c, "etf-top50", "/api/etfs/top50", "", 1, TopETFCount)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetETF returns an ETF profile.
func (c *Client) GetETF(ctx context.Context, symbol string) (*models.ETF, error) {
	return getOne[models.ETF](ctx, c, "etf", symbolPath("/api/etfs", symbol, ""))
}

// GetETFQuote returns the latest quote for an ETF.
func (c *Client) GetETFQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return getOne[models.Quote](ctx, c, "etf-quote", symbolPath("/api/etfs", symbol, "/quote"))
}

// GetETFHoldings returns up to limit holdings.
func (c *Client) GetETFHoldings(ctx context.Context, symbol string, limit int) ([]models.ETFHolding, error) {
	if limit < 1 {
		limit = DefaultHoldingsLimit
	}
	path := symbolPath("/api/etfs", symbol, "/holdings")
	body, err := c.get(ctx, "holdings", path, encodeParams(param{"limit", itoa(limit)}))
	if err != nil {
		return nil, err
	}

	var env models.Envelope[[]models.ETFHolding]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse holdings: %w", err)
	}
	holdings := models.NormalizeRows(env.Data)
	if len(holdings) > limit {
		holdings = holdings[:limit]
	}
	if holdings == nil {
		holdings = []models.ETFHolding{}
	}
	return holdings, nil
}

// GetETFAnalysis returns the published analysis for an ETF, or nil when
// none exists.
func (c *Client) GetETFAnalysis(ctx context.Context, symbol string) (*models.Analysis, error) {
	return c.getAnalysis(ctx, "analysis", symbolPath("/api/etfs", symbol, "/analysis"))
}
