package interfaces

import (
	"context"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/models"
)

// MarketData is the read-only view of the market data backend that pages,
// tools and warmup depend on. *client.Client implements it.
type MarketData interface {
	ListIndices(ctx context.Context) ([]models.Index, error)
	GetIndex(ctx context.Context, symbol string) (*models.Index, error)
	ListIndexComponents(ctx context.Context, symbol string, q client.ComponentsQuery) (*models.Page[models.IndexComponent], error)

	ListStocks(ctx context.Context, q client.StocksQuery) (*models.Page[models.StockListItem], error)
	GetStock(ctx context.Context, symbol string) (*models.Stock, error)
	GetStockQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetStockHistory(ctx context.Context, symbol, period string) ([]models.PriceBar, error)
	GetStockAnalysis(ctx context.Context, symbol string) (*models.Analysis, error)

	ListETFs(ctx context.Context, q client.ETFsQuery) (*models.Page[models.ETFListItem], error)
	TopETFs(ctx context.Context) ([]models.ETFListItem, error)
	GetETF(ctx context.Context, symbol string) (*models.ETF, error)
	GetETFQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetETFHoldings(ctx context.Context, symbol string, limit int) ([]models.ETFHolding, error)
	GetETFAnalysis(ctx context.Context, symbol string) (*models.Analysis, error)

	Search(ctx context.Context, q, kind string) (*models.SearchResult, error)
	Health(ctx context.Context) (*models.Health, error)
}

var _ MarketData = (*client.Client)(nil)
