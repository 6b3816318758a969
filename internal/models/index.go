package models

import "github.com/guregu/null/v6"

// Index is a market index such as the S&P 500.
type Index struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	NameTH         string   `json:"name_th"`
	DescriptionTH  string   `json:"description_th"`
	ComponentCount null.Int `json:"component_count"`
}

func (i *Index) Normalize() bool {
	i.Symbol = NormalizeSymbol(i.Symbol)
	return i.Symbol != ""
}

func (i *Index) Key() string { return i.Symbol }

// IndexComponent is a constituent stock of one index, with its index weight.
type IndexComponent struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	NameTH        string     `json:"name_th"`
	Sector        string     `json:"sector"`
	Price         null.Float `json:"price"`
	ChangePercent null.Float `json:"change_percent"`
	Trend         Trend      `json:"trend"`
	Weight        null.Float `json:"weight"`
}

func (c *IndexComponent) Normalize() bool {
	c.Symbol = NormalizeSymbol(c.Symbol)
	return c.Symbol != ""
}

func (c *IndexComponent) Key() string { return c.Symbol }

// Well-known index symbols.
const (
	IndexSP500     = "SPX"
	IndexNasdaq100 = "NDX"
)
