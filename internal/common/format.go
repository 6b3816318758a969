package common

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered wherever an optional value is absent.
const Placeholder = "—"

var billion = decimal.NewFromInt(1_000_000_000)

// FormatFixed rounds v half away from zero and renders it with exactly
// places decimals and no grouping. Negative values that round to zero keep
// their sign ("-0.00").
func FormatFixed(v float64, places int32) string {
	s := decimal.NewFromFloat(v).StringFixed(places)
	if v < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// FormatNumber renders v with comma grouping and exactly places decimals.
func FormatNumber(v float64, places int32) string {
	s := FormatFixed(v, places)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	s = groupThousands(whole)
	if hasFrac {
		s += "." + frac
	}
	if negative {
		return "-" + s
	}
	return s
}

// FormatCount renders an integer with comma grouping.
func FormatCount(v int64) string {
	if v < 0 {
		return "-" + groupThousands(strconv.FormatInt(-v, 10))
	}
	return groupThousands(strconv.FormatInt(v, 10))
}

// FormatPrice formats a dollar amount: "$1,234.56", "-$5.00".
func FormatPrice(v float64) string {
	s := FormatNumber(v, 2)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatSignedPct formats a percentage with an explicit "+" for values >= 0.
func FormatSignedPct(v float64) string {
	return FormatSignedChange(v) + "%"
}

// FormatSignedChange formats an absolute change with an explicit "+" for values >= 0.
func FormatSignedChange(v float64) string {
	if v >= 0 {
		return "+" + FormatFixed(v, 2)
	}
	return FormatFixed(v, 2)
}

// FormatBillions formats a dollar amount in billions: 2950120000000 -> "$2950.12B".
func FormatBillions(v float64) string {
	return "$" + decimal.NewFromFloat(v).Div(billion).StringFixed(2) + "B"
}

// FormatRatioPct formats a fraction as a percentage: 0.0095 -> "0.95%".
func FormatRatioPct(v float64) string {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatPct formats a value that is already a percentage: 7.12 -> "7.12%".
func FormatPct(v float64) string {
	return FormatFixed(v, 2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}
