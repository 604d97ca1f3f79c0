package importer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rustyeddy/tradejournal/journal"
)

// The mappers below never fail. Unknown values fall back to a fixed default
// so every imported row still lands in the aggregate statistics.

func MapDirection(text string) journal.Direction {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "SELL", "SHORT", "VENTA":
		return journal.Sell
	default:
		// BUY, LONG, COMPRA and anything unrecognised
		return journal.Buy
	}
}

var dayPrefixes = map[string]journal.Weekday{
	"LUN": journal.Monday,
	"MON": journal.Monday,
	"MAR": journal.Tuesday,
	"TUE": journal.Tuesday,
	"MIE": journal.Wednesday,
	"WED": journal.Wednesday,
	"JUE": journal.Thursday,
	"THU": journal.Thursday,
	"VIE": journal.Friday,
	"FRI": journal.Friday,
}

// MapDayOfWeek reads Spanish or English weekday names by their first three
// letters, ignoring accents ("Miércoles" and "MIE" both work).
func MapDayOfWeek(text string) journal.Weekday {
	s := []rune(strings.ToUpper(stripDiacritics(strings.TrimSpace(text))))
	if len(s) < 3 {
		return journal.Monday
	}
	if d, ok := dayPrefixes[string(s[:3])]; ok {
		return d
	}
	return journal.Monday
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// MapResultType reads the result label and falls back to the sign of the P&L.
func MapResultType(text string, pnl decimal.Decimal) journal.ResultType {
	s := strings.ToUpper(text)
	switch {
	case containsAny(s, "TP", "WIN", "PROFIT"):
		return journal.TakeProfit
	case containsAny(s, "SL", "LOSS", "STOP"):
		return journal.StopLoss
	case containsAny(s, "BE", "BREAK"):
		return journal.BreakEven
	}
	if pnl.IsNegative() {
		return journal.StopLoss
	}
	return journal.TakeProfit
}

// MapEntryModel canonicalises the models we know about and otherwise keeps
// the text exactly as written.
func MapEntryModel(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case strings.Contains(s, "M1"):
		return journal.ModelM1
	case strings.Contains(s, "M3"):
		return journal.ModelM3
	case strings.HasPrefix(s, "CONT"):
		return journal.ModelContinuation
	}
	return text
}

// ParseMonetary strips currency symbols, thousands separators and spaces.
// Anything unreadable is zero.
func ParseMonetary(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case decimal.Decimal:
		return x
	}

	s := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, fmt.Sprint(v))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseOptionalNumber keeps only digits, signs and dots. nil means absent,
// which matters for RR and drawdown where 0 is a real value.
func ParseOptionalNumber(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return &x
	case int:
		f := float64(x)
		return &f
	}

	s := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.' {
			return r
		}
		return -1
	}, fmt.Sprint(v))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// WeekOfMonth is 1 for days 1-7, 2 for 8-14 and so on up to 5.
func WeekOfMonth(dayOfMonth int) int {
	return (dayOfMonth + 6) / 7
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
