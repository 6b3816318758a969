package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// NormalizeSearchQuery trims q and caps it at the backend's maximum length.
func NormalizeSearchQuery(q string) string {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) <= models.SearchMaxQueryLen {
		return q
	}
	return string([]rune(q)[:models.SearchMaxQueryLen])
}

// Search finds stocks and ETFs matching q. An empty query returns an empty
// result without calling the backend.
func (c *Client) Search(ctx context.Context, q, kind string) (*models.SearchResult, error) {
	q = NormalizeSearchQuery(q)
	kind = models.ParseSearchType(kind)
	if q == "" {
		return &models.SearchResult{Stocks: []models.SearchItem{}, ETFs: []models.SearchItem{}}, nil
	}

	body, err := c.get(ctx, "search", "/api/search", encodeParams(param{"q", q}, param{"type", kind}))
	if err != nil {
		return nil, err
	}

	var env models.Envelope[models.SearchResult]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse search: %w", err)
	}

	res := env.Data
	res.Stocks = models.NormalizeRows(res.Stocks)
	res.ETFs = models.NormalizeRows(res.ETFs)
	if res.Stocks == nil {
		res.Stocks = []models.SearchItem{}
	}
	if res.ETFs == nil {
		res.ETFs = []models.SearchItem{}
	}
	return &res, nil
}
