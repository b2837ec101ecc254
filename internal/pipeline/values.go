package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Export timestamps come as "2006-01-02 15:04:05.000"; some older files
// omit the millisecond part.
var exportTimeLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// ParseExportTime parses a Samsung Health timestamp cell.
func ParseExportTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range exportTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a cell to a float. Unparseable values report false;
// callers treat that as the missing-value sentinel.
func parseNumber(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a reconstructed numeric value without a trailing
// ".0" for whole numbers.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// clockFromHours formats decimal hours as HH:MM, rounding the fractional
// part to the nearest minute and carrying 60 minutes into the next hour.
func clockFromHours(hours float64) string {
	h := int(hours)
	m := int((hours-float64(h))*60 + 0.5)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// clockFromMillis formats a millisecond duration as HH:MM with truncation
// to whole minutes.
func clockFromMillis(ms float64) string {
	totalMinutes := int(ms / 60000)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
