package wincpl

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coercions are permissive: empty or unparseable text yields nil rather than
// an error, so one bad field does not reject the whole item.

func parseBool(s string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "oui", "o", "yes", "y", "vrai":
		v = true
	case "0", "false", "non", "n", "no", "faux":
		v = false
	default:
		return nil
	}
	return &v
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseInt(s string) *int64 {
	d := parseDecimal(s)
	if d == nil {
		return nil
	}
	n := d.IntPart()
	return &n
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseStamp combines the Date and Heure attributes
func parseStamp(date, clock string) *time.Time {
	day := parseDate(date)
	if day == nil {
		return nil
	}
	clock = strings.TrimSpace(clock)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			ts := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			return &ts
		}
	}
	return day
}
