package view

import (
	"strings"
	"time"
)

var bangkok = loadBangkok()

func loadBangkok() *time.Location {
	if loc, err := time.LoadLocation("Asia/Bangkok"); err == nil {
		return loc
	}
	return time.FixedZone("ICT", 7*60*60)
}

// Naive timestamps from the backend are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes the backend emits.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UpdatedAt renders "อัพเดท: dd/mm/yyyy hh:mm" in Bangkok time, or "" when
// s is empty or unparsable.
func UpdatedAt(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return "อัพเดท: " + t.In(bangkok).Format("02/01/2006 15:04")
}

// ThaiDate renders a date as dd/mm/yyyy in Bangkok time.
func ThaiDate(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return t.In(bangkok).Format("02/01/2006")
}
