package models

import "encoding/json"

// Trend is the backend's classification of recent price direction.
// The zero value means the backend sent no trend.
type Trend string

const (
	TrendNone     Trend = ""
	TrendUp       Trend = "uptrend"
	TrendDown     Trend = "downtrend"
	TrendSideways Trend = "sideways"
)

// ParseTrend maps a raw trend string. Empty input yields TrendNone and any
// other value except the exact lower-case names is treated as sideways.
func ParseTrend(s string) Trend {
	switch s {
	case "":
		return TrendNone
	case string(TrendUp):
		return TrendUp
	case string(TrendDown):
		return TrendDown
	default:
		return TrendSideways
	}
}

// UnmarshalJSON accepts a string or null.
func (t *Trend) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TrendNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTrend(s)
	return nil
}
