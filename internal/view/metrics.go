package view

import (
	"strconv"

	"github.com/guregu/null/v6"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/models"
)

// Metric is one labelled cell of a metrics grid.
type Metric struct {
	Label string
	Value string
}

func orPlaceholder(v null.Float, format func(float64) string) string {
	if !v.Valid {
		return common.Placeholder
	}
	return format(v.Float64)
}

func fixed2(v float64) string { return common.FormatFixed(v, 2) }

func count(v float64) string { return common.FormatNumber(v, 0) }

// StockMetrics builds the key statistics grid for a stock quote.
// A nil quote yields every label with a placeholder.
func StockMetrics(q *models.Quote) []Metric {
	if q == nil {
		q = &models.Quote{}
	}
	return []Metric{
		{"มูลค่าตลาด", orPlaceholder(q.MarketCap, common.FormatBillions)},
		{"P/E Ratio", orPlaceholder(q.PERatio, fixed2)},
		{"EPS", orPlaceholder(q.EPS, common.FormatPrice)},
		{"ปันผล", orPlaceholder(q.DividendYield, common.FormatRatioPct)},
		{"สูงสุด 52 สัปดาห์", orPlaceholder(q.Week52High, common.FormatPrice)},
		{"ต่ำสุด 52 สัปดาห์", orPlaceholder(q.Week52Low, common.FormatPrice)},
		{"SMA 50", orPlaceholder(q.SMA50, common.FormatPrice)},
		{"SMA 200", orPlaceholder(q.SMA200, common.FormatPrice)},
		{"ช่วงราคาวันนี้", dayRange(q)},
		{"ปริมาณซื้อขาย", orPlaceholder(q.Volume, count)},
	}
}

func dayRange(q *models.Quote) string {
	if !q.LowPrice.Valid || !q.HighPrice.Valid {
		return common.Placeholder
	}
	return common.FormatPrice(q.LowPrice.Float64) + " - " + common.FormatPrice(q.HighPrice.Float64)
}

// ETFMetrics builds the key statistics grid for an ETF.
func ETFMetrics(e *models.ETF, q *models.Quote) []Metric {
	if e == nil {
		e = &models.ETF{}
	}
	if q == nil {
		q = &models.Quote{}
	}
	inception := e.InceptionDate
	if inception == "" {
		inception = common.Placeholder
	}
	return []Metric{
		{"สินทรัพย์รวม (AUM)", orPlaceholder(e.AUM, common.FormatBillions)},
		{"ค่าใช้จ่าย (Expense)", orPlaceholder(e.ExpenseRatio, common.FormatRatioPct)},
		{"ปันผล", orPlaceholder(q.DividendYield, common.FormatRatioPct)},
		{"วันจัดตั้ง", inception},
	}
}

// Fact is one row of the company profile card.
type Fact struct {
	Label string
	Value string
}

// Facts is the company profile card.
type Facts struct {
	Rows    []Fact
	Website string
}

// CompanyFacts builds the profile card for a stock.
func CompanyFacts(s *models.Stock) Facts {
	if s == nil {
		return Facts{}
	}

	text := func(v string) string {
		if v == "" {
			return common.Placeholder
		}
		return v
	}

	hq := s.Headquarters
	if hq == "" {
		hq = s.Country
	}
	employees := common.Placeholder
	if s.Employees.Valid {
		employees = common.FormatCount(s.Employees.Int64)
	}

	f := Facts{
		Rows: []Fact{
			{"Sector / Industry", text(s.Sector) + " / " + text(s.Industry)},
			{"CEO", text(s.CEO)},
			{"Employees", employees},
			{"Headquarters", text(hq)},
		},
		Website: s.Website,
	}
	if s.FoundedYear.Valid {
		f.Rows = append(f.Rows, Fact{"Founded", strconv.FormatInt(s.FoundedYear.Int64, 10)})
	}
	return f
}

// HoldingWeight formats an ETF holding's weight, which the backend sends
// as a percentage.
func HoldingWeight(w null.Float) string {
	return orPlaceholder(w, common.FormatPct)
}
