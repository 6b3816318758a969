package client

import (
	"context"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// Component list defaults.
const (
	DefaultComponentsPerPage = 50
	DefaultComponentsSort    = "weight"
	DefaultComponentsOrder   = "desc"
)

// ComponentsQuery selects one page of an index's constituents.
type ComponentsQuery struct {
	Page    int
	PerPage int
	Sort    string
	Order   string
	Sector  string
	Search  string
}

func (q ComponentsQuery) withDefaults() ComponentsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultComponentsPerPage
	}
	if q.Sort == "" {
		q.Sort = DefaultComponentsSort
	}
	if q.Order == "" {
		q.Order = DefaultComponentsOrder
	}
	return q
}

// Encode returns the query string in backend parameter order.
func (q ComponentsQuery) Encode() string {
	q = q.withDefaults()
	return encodeParams(
		param{"page", itoa(q.Page)},
		param{"per_page", itoa(q.PerPage)},
		param{"sort", q.Sort},
		param{"order", q.Order},
		param{"sector", q.Sector},
		param{"search", q.Search},
	)
}

// ListIndices returns every index the backend tracks.
func (c *Client) ListIndices(ctx context.Context) ([]models.Index, error) {
	page, err := getList[models.Index](ctx, c, "indices", "/api/indices", "", 1, 0)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetIndex returns one index with its component count.
func (c *Client) GetIndex(ctx context.Context, symbol string) (*models.Index, error) {
	return getOne[models.Index](ctx, c, "index", symbolPath("/api/indices", symbol, ""))
}

// ListIndexComponents returns one page of an index's constituents.
func (c *Client) ListIndexComponents(ctx context.Context, symbol string, q ComponentsQuery) (*models.Page[models.IndexComponent], error) {
	q = q.withDefaults()
	return getList[models.IndexComponent](ctx, c, "components",
		symbolPath("/api/indices", symbol, "/components"), q.Encode(), q.Page, q.PerPage)
}
