package pipeline

import (
	"sort"

	"healthcli/internal/health"
)

// snoringHandler rolls detected snoring sessions up into one total
// duration per calendar day.
type snoringHandler struct{}

func (snoringHandler) Decode(t health.Table) health.Table { return t }

// Aggregate groups rows by the calendar day of create_time and sums the
// millisecond durations, formatted as HH:MM with whole-minute truncation.
// Rows whose create_time does not parse are dropped; unparseable
// durations count as zero. The result has one row per distinct day,
// ascending.
func (snoringHandler) Aggregate(t health.Table) health.Table {
	timeIdx := t.ColumnIndex("create_time")
	durIdx := t.ColumnIndex("duration")
	if timeIdx < 0 || durIdx < 0 {
		return t
	}

	totals := make(map[string]float64)
	for _, row := range t.Rows {
		if timeIdx >= len(row) {
			continue
		}
		ts, ok := ParseExportTime(row[timeIdx])
		if !ok {
			continue
		}
		day := ts.Format("2006-01-02")
		var ms float64
		if durIdx < len(row) {
			ms, _ = parseNumber(row[durIdx])
		}
		totals[day] += ms
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	out := health.NewTable("create_time", "duration")
	for _, day := range days {
		out.AppendRow([]string{day, clockFromMillis(totals[day])})
	}
	return out
}
