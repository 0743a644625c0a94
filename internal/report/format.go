package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Date layouts used across every encoder.
const (
	LabelLayout = "Jan 02"
	LongLayout  = "January 02, 2006"
	MonthLayout = "Jan 2006"
	DayLayout   = "2006-01-02"
)

// Formatter renders money and percentages for documents.
type Formatter struct {
	CurrencySymbol string
}

// Currency renders v with thousands separators, two decimals and the currency glyph.
func (f Formatter) Currency(v float64) string {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + f.CurrencySymbol + humanize.FormatFloat("#,###.##", rounded)
}

// Percent renders an integer percentage.
func Percent(v int) string {
	return strconv.Itoa(v) + "%"
}

// Amount renders v with two decimals and no grouping, for delimited output.
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// parseTime accepts the timestamp shapes seen in the hotel tables.
// Date-only values are interpreted in loc.
func parseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", DayLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// roundInt rounds half away from zero.
func roundInt(v float64) int {
	return int(decimal.NewFromFloat(v).Round(0).IntPart())
}
