package attendance

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
)

const (
	// Serials outside (serialMin, serialMax) are not treated as dates (~1954..2064).
	serialMin = 20000
	serialMax = 60000

	// Day count between the spreadsheet anchor 1899-12-30 and 1970-01-01.
	unixEpochSerial = 25569

	secondsPerDay = 86400
)

var (
	serialPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	clockPattern  = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

	// Leading weekday of long-date text such as "Sunday, January 5, 2025".
	weekdayPrefix = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun)\.?,?\s+`)
)

// numericValue reports the value of raw when it is an actual number.
func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		f := float64(v)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	default:
		return 0, false
	}
}

// dateSerial reports the serial carried by raw when raw is a number, or a
// pure-digit string, inside the accepted serial range.
func dateSerial(raw any) (float64, bool) {
	f, ok := numericValue(raw)
	if !ok {
		s, isString := raw.(string)
		if !isString || !serialPattern.MatchString(strings.TrimSpace(s)) {
			return 0, false
		}
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, false
		}
	}
	return f, f > serialMin && f < serialMax
}

// canonicalDate is the single place a calendar day and weekday are derived
// from an instant. It always reads UTC calendar fields.
func canonicalDate(t time.Time) attendance.CanonicalDate {
	u := t.UTC()
	return attendance.CanonicalDate{
		Text:    u.Format("2006-01-02"),
		Weekday: u.Weekday(),
	}
}

func serialToTime(serial float64) time.Time {
	secs := int64(math.Round((serial - unixEpochSerial) * secondsPerDay))
	t := time.Unix(secs, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDate resolves a raw date cell into a canonical date. Spreadsheet
// serials are tried first, then calendar-string parsing.
func NormalizeDate(raw any) (attendance.CanonicalDate, bool) {
	if serial, ok := dateSerial(raw); ok {
		return canonicalDate(serialToTime(serial)), true
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case time.Time:
		return canonicalDate(v), true
	default:
		// numbers outside the serial range
		return attendance.CanonicalDate{}, false
	}

	if s == "" || serialPattern.MatchString(s) {
		return attendance.CanonicalDate{}, false
	}

	t, err := dateparse.ParseIn(weekdayPrefix.ReplaceAllString(s, ""), time.UTC)
	if err != nil {
		return attendance.CanonicalDate{}, false
	}
	return canonicalDate(t), true
}

// DisplayTime renders a raw time cell as "HH:MM". Day fractions are converted
// and strings pass through unchanged. Empty cells and negative numbers render
// as "-".
func DisplayTime(raw any) string {
	if f, ok := numericValue(raw); ok {
		if f < 0 {
			return attendance.NoTime
		}
		total := int64(math.Round(f * secondsPerDay))
		hours := (total / 3600) % 24
		minutes := (total % 3600) / 60
		return fmt.Sprintf("%02d:%02d", hours, minutes)
	}

	s := valueString(raw)
	if strings.TrimSpace(s) == "" {
		return attendance.NoTime
	}
	return s
}

// TimeHours converts a raw time cell into hours since midnight. The second
// result is false when the cell holds no usable time.
//
// Numbers are day fractions; only the time-of-day part is used, matching
// DisplayTime's modulo-24 rendering.
func TimeHours(raw any) (float64, bool) {
	if f, ok := numericValue(raw); ok {
		if f < 0 {
			return 0, false
		}
		return math.Mod(f, 1) * 24, true
	}

	s, ok := raw.(string)
	if !ok {
		return 0, false
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "PM") && hour < 12:
		hour += 12
	case strings.Contains(upper, "AM") && hour == 12:
		hour = 0
	}

	return float64(hour) + float64(minute)/60, true
}
