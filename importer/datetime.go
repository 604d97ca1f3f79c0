package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	DefaultTime = "09:30:00"
)

// Spreadsheet serial dates count days from this epoch.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serials outside this range fall outside years 1-9999.
const (
	minSerial = -693593.0
	maxSerial = 2958466.0
)

var (
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockTime  = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	fourDigits = regexp.MustCompile(`^\d{4}$`)
)

// Layouts tried when none of the explicit date forms match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02",
	"02.01.2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
}

// ParseDate turns a date cell into YYYY-MM-DD. The second result is false
// when the value cannot be read as a date and the row should be skipped.
//
// Numbers are spreadsheet serial dates. Slash dates with both parts <= 12 are
// read day first, and a two-digit year above 50 is taken as 19xx.
func ParseDate(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case float64:
		return serialDate(x)
	case float32:
		return serialDate(float64(x))
	case int:
		return serialDate(float64(x))
	case int64:
		return serialDate(float64(x))
	case time.Time:
		if x.IsZero() || !validYear(x.Year()) {
			return "", false
		}
		return x.Format(dateLayout), true
	case string:
		return parseDateString(strings.TrimSpace(x))
	default:
		return parseDateString(strings.TrimSpace(fmt.Sprint(x)))
	}
}

func serialDate(days float64) (string, bool) {
	if math.IsNaN(days) || days < minSerial || days >= maxSerial {
		return "", false
	}
	whole := math.Floor(days)
	secs := math.Round((days - whole) * 86400)
	t := serialEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(secs) * time.Second)
	if !validYear(t.Year()) {
		return "", false
	}
	return t.Format(dateLayout), true
}

// validYear keeps dates in four-digit YYYY-MM-DD form.
func validYear(y int) bool { return y >= 1 && y <= 9999 }

func parseDateString(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if isoDate.MatchString(s) {
		return s, true
	}

	if strings.Count(s, "/") == 2 {
		if parts, ok := ints(strings.Split(s, "/")); ok {
			a, b, c := parts[0], parts[1], parts[2]
			day, month := a, b
			if b > 12 && a <= 12 {
				day, month = b, a
			}
			return civil(expandYear(c), month, day)
		}
	}

	if strings.Count(s, "-") == 2 {
		segs := strings.Split(s, "-")
		if parts, ok := ints(segs); ok {
			if fourDigits.MatchString(strings.TrimSpace(segs[0])) {
				return civil(parts[0], parts[1], parts[2])
			}
			return civil(expandYear(parts[2]), parts[1], parts[0])
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil && validYear(t.Year()) {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}

func ints(segs []string) ([]int, bool) {
	out := make([]int, len(segs))
	for i, seg := range segs {
		n, err := strconv.Atoi(strings.TrimSpace(seg))
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y > 50 {
		return 1900 + y
	}
	return 2000 + y
}

// civil validates the calendar fields and formats them.
func civil(year, month, day int) (string, bool) {
	if !validYear(year) || month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// time.Date normalised an overflowing day into the next month
		return "", false
	}
	return t.Format(dateLayout), true
}

// ParseTime turns a time cell into HH:MM:SS. Numbers are fractions of a day
// rounded to the minute. Strings use the first H:MM[:SS] found plus any
// am/pm marker. Anything else gives DefaultTime.
func ParseTime(v any) string {
	switch x := v.(type) {
	case float64:
		return fractionTime(x)
	case float32:
		return fractionTime(float64(x))
	case int:
		return fractionTime(float64(x))
	case time.Time:
		return x.Format("15:04:05")
	case string:
		return parseTimeString(x)
	case nil:
		return DefaultTime
	default:
		return parseTimeString(fmt.Sprint(x))
	}
}

func fractionTime(days float64) string {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return DefaultTime
	}
	frac := days - math.Floor(days)
	minutes := int(math.Round(frac*24*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

func parseTimeString(s string) string {
	m := clockTime.FindStringSubmatch(s)
	if m == nil {
		return DefaultTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute := m[2]
	second := m[3]
	if second == "" {
		second = "00"
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "pm") || strings.Contains(lower, "p.m"):
		if hour < 12 {
			hour += 12
		}
	case strings.Contains(lower, "am") || strings.Contains(lower, "a.m"):
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%s:%s", hour, minute, second)
}
