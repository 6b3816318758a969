// Package view turns backend records into display-ready values for the
// page templates. Nothing here does I/O.
package view

import "github.com/bobmcallan/invest-portal/internal/models"

// Display sizes shared by badges and price displays.
const (
	SizeSmall  = "sm"
	SizeMedium = "md"
	SizeLarge  = "lg"
)

func normalizeSize(size string) string {
	switch size {
	case SizeSmall, SizeLarge:
		return size
	default:
		return SizeMedium
	}
}

// Badge is a rendered trend indicator.
type Badge struct {
	Label     string
	Icon      string
	BgClass   string
	TextClass string
	SizeClass string
}

// Class returns the full class attribute for the badge.
func (b Badge) Class() string {
	return "trend-badge " + b.BgClass + " " + b.TextClass + " " + b.SizeClass
}

var badgeSizes = map[string]string{
	SizeSmall:  "badge-sm",
	SizeMedium: "badge-md",
	SizeLarge:  "badge-lg",
}

// TrendBadge returns the badge for trend. An empty trend yields false and
// the caller renders nothing. Unrecognised values display as sideways.
func TrendBadge(trend, size string) (Badge, bool) {
	t := models.ParseTrend(trend)
	if t == models.TrendNone {
		return Badge{}, false
	}

	b := Badge{SizeClass: badgeSizes[normalizeSize(size)]}
	switch t {
	case models.TrendUp:
		b.Label, b.Icon, b.BgClass, b.TextClass = "ขาขึ้น", "↑", "bg-uptrend", "text-white"
	case models.TrendDown:
		b.Label, b.Icon, b.BgClass, b.TextClass = "ขาลง", "↓", "bg-downtrend", "text-white"
	default:
		b.Label, b.Icon, b.BgClass, b.TextClass = "ไซด์เวย์", "→", "bg-sideways", "text-black"
	}
	return b, true
}
