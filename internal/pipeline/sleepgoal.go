package pipeline

import "healthcli/internal/health"

// sleepGoalHandler converts the sleep goal's millisecond offsets into
// clock times and keeps only the most recent goal configuration. The
// output models the current goal, not its history.
type sleepGoalHandler struct{}

const millisPerHour = 3600000

// goalTimeColumns are millisecond offsets converted to HH:MM clock
// strings. sleep_time is stored as "hours past midnight of the previous
// day", so it gets 24 hours added before formatting.
var goalTimeColumns = []string{"wake_up_time", "bed_time", "sleep_time"}

func (sleepGoalHandler) Decode(t health.Table) health.Table {
	for _, col := range goalTimeColumns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for i, row := range t.Rows {
			if idx >= len(row) {
				continue
			}
			ms, ok := parseNumber(row[idx])
			if !ok {
				t.Set(i, col, "")
				continue
			}
			hours := ms / millisPerHour
			if col == "sleep_time" {
				hours += 24
			}
			t.Set(i, col, clockFromHours(hours))
		}
	}
	return t
}

// Aggregate retains the single row with the latest create_time. Rows
// without a parseable create_time never win over a parseable one.
func (sleepGoalHandler) Aggregate(t health.Table) health.Table {
	idx := t.ColumnIndex("create_time")
	if idx < 0 || len(t.Rows) == 0 {
		return t
	}

	latest := -1
	for i, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		ts, ok := ParseExportTime(row[idx])
		if !ok {
			continue
		}
		if latest < 0 {
			latest = i
			continue
		}
		prev, _ := ParseExportTime(t.Rows[latest][idx])
		if ts.After(prev) {
			latest = i
		}
	}
	if latest < 0 {
		return t
	}
	return health.Table{Columns: t.Columns, Rows: [][]string{t.Rows[latest]}}
}
