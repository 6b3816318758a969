package models

import "github.com/guregu/null/v6"

// ETF is the descriptive profile of an exchange-traded fund.
type ETF struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	NameTH        string     `json:"name_th"`
	Category      string     `json:"category"`
	Provider      string     `json:"provider"`
	ExpenseRatio  null.Float `json:"expense_ratio"`
	AUM           null.Float `json:"aum"`
	Description   string     `json:"description"`
	DescriptionTH string     `json:"description_th"`
	InceptionDate string     `json:"inception_date"`
}

func (e *ETF) Normalize() bool {
	e.Symbol = NormalizeSymbol(e.Symbol)
	return e.Symbol != ""
}

// DisplayName prefers the Thai name when present.
func (e *ETF) DisplayName() string {
	if e.NameTH != "" {
		return e.NameTH
	}
	return e.Name
}

// ETFListItem is one row of an ETF list.
type ETFListItem struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	NameTH        string     `json:"name_th"`
	Category      string     `json:"category"`
	Provider      string     `json:"provider"`
	ExpenseRatio  null.Float `json:"expense_ratio"`
	AUM           null.Float `json:"aum"`
	Price         null.Float `json:"price"`
	ChangePercent null.Float `json:"change_percent"`
	Trend         Trend      `json:"trend"`
}

func (e *ETFListItem) Normalize() bool {
	e.Symbol = NormalizeSymbol(e.Symbol)
	return e.Symbol != ""
}

// Key identifies the record within a list.
func (e *ETFListItem) Key() string { return e.Symbol }

// ETFHolding is one constituent position disclosed by an ETF.
type ETFHolding struct {
	HoldingSymbol string     `json:"holding_symbol"`
	HoldingName   string     `json:"holding_name"`
	Weight        null.Float `json:"weight"`
	Shares        null.Float `json:"shares"`
}

// Normalize upper-cases the holding symbol. Holdings without a symbol are
// kept when they carry a name (cash and derivative lines often have none).
func (h *ETFHolding) Normalize() bool {
	h.HoldingSymbol = NormalizeSymbol(h.HoldingSymbol)
	return h.HoldingSymbol != "" || h.HoldingName != ""
}

// Key identifies the holding within one ETF's list.
func (h *ETFHolding) Key() string {
	if h.HoldingSymbol != "" {
		return h.HoldingSymbol
	}
	return "name:" + h.HoldingName
}
