package models

import "github.com/guregu/null/v6"

// SearchItem is one stock or ETF matching a search query.
type SearchItem struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	NameTH        string     `json:"name_th"`
	Sector        string     `json:"sector"`
	Category      string     `json:"category"`
	Type          string     `json:"type"`
	Price         null.Float `json:"price"`
	ChangePercent null.Float `json:"change_percent"`
	Trend         Trend      `json:"trend"`
}

func (s *SearchItem) Normalize() bool {
	s.Symbol = NormalizeSymbol(s.Symbol)
	return s.Symbol != ""
}

func (s *SearchItem) Key() string { return s.Symbol }

// SearchResult holds the stocks and ETFs matching one query.
type SearchResult struct {
	Stocks []SearchItem `json:"stocks"`
	ETFs   []SearchItem `json:"etfs"`
}

// Total is the number of matches across both groups.
func (r *SearchResult) Total() int {
	return len(r.Stocks) + len(r.ETFs)
}

// Search type filters accepted by the backend.
const (
	SearchAll   = "all"
	SearchStock = "stock"
	SearchETF   = "etf"
)

// SearchMaxQueryLen is the longest query the backend accepts.
const SearchMaxQueryLen = 50

// ParseSearchType returns a valid search type, defaulting to SearchAll.
func ParseSearchType(s string) string {
	switch s {
	case SearchStock, SearchETF:
		return s
	default:
		return SearchAll
	}
}
