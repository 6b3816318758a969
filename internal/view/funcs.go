package view

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/guregu/null/v6"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/models"
)

// FuncMap returns the helpers available to every page template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"badge": func(trend models.Trend, size string) *Badge {
			b, ok := TrendBadge(string(trend), size)
			if !ok {
				return nil
			}
			return &b
		},
		"priceDisplay": NewPriceDisplay,
		"price": func(v null.Float) string {
			return orPlaceholder(v, common.FormatPrice)
		},
		"signedPct": func(v null.Float) string {
			return orPlaceholder(v, common.FormatSignedPct)
		},
		"moveClass": func(v null.Float) string {
			if v.ValueOrZero() >= 0 {
				return "text-uptrend"
			}
			return "text-downtrend"
		},
		"weight":       HoldingWeight,
		"stockMetrics": StockMetrics,
		"etfMetrics":   ETFMetrics,
		"companyFacts": CompanyFacts,
		"updatedAt":    UpdatedAt,
		"thaiDate":     ThaiDate,
		"count":        func(n int) string { return common.FormatCount(int64(n)) },
		"placeholder":  func() string { return common.Placeholder },
		"paragraphs":   Paragraphs,
		"displayName":  DisplayName,
		"add":          func(a, b int) int { return a + b },
		"ordinal":      func(i int) int { return i + 1 },
		"dict":         Dict,
	}
}

// Dict builds a map from alternating keys and values so a template can pass
// several values to a shared partial. A trailing key without a value or a
// non-string key is an error.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

// Paragraphs splits long-form text on blank lines.
func Paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DisplayName prefers a Thai name over the English one.
func DisplayName(nameTH, name string) string {
	if strings.TrimSpace(nameTH) != "" {
		return nameTH
	}
	return name
}
