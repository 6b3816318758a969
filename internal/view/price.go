package view

import (
	"github.com/guregu/null/v6"

	"github.com/bobmcallan/invest-portal/internal/common"
)

// PriceDisplay is a formatted price with its daily move.
type PriceDisplay struct {
	Price      string
	Percent    string
	Change     string
	HasPercent bool
	Positive   bool
	Class      string
	PriceClass string
	MoveClass  string
}

var priceSizes = map[string][2]string{
	SizeSmall:  {"price-sm", "move-sm"},
	SizeMedium: {"price-md", "move-md"},
	SizeLarge:  {"price-lg", "move-lg"},
}

// NewPriceDisplay formats price, change and changePercent. Missing values
// become placeholders. A zero or missing percent counts as positive.
func NewPriceDisplay(price, change, changePercent null.Float, size string) PriceDisplay {
	sz := priceSizes[normalizeSize(size)]
	d := PriceDisplay{
		Price:      common.Placeholder,
		PriceClass: sz[0],
		MoveClass:  sz[1],
	}

	if price.Valid && price.Float64 != 0 {
		d.Price = common.FormatPrice(price.Float64)
	}

	pct := changePercent.ValueOrZero()
	d.Positive = pct >= 0
	if d.Positive {
		d.Class = "text-uptrend"
	} else {
		d.Class = "text-downtrend"
	}

	if changePercent.Valid {
		d.HasPercent = true
		d.Percent = common.FormatSignedPct(changePercent.Float64)
		if change.Valid {
			d.Change = "(" + signedBy(change.Float64, d.Positive) + ")"
		}
	}
	return d
}

// signedBy formats v with a "+" when the move is positive, matching the
// sign convention of the percentage beside it.
func signedBy(v float64, positive bool) string {
	s := common.FormatFixed(v, 2)
	if positive && s[0] != '-' {
		return "+" + s
	}
	return s
}
