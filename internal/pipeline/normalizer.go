package pipeline

import (
	"strings"

	"healthcli/internal/health"
)

// Temporal key columns are moved to the front of every normalized table,
// in this order.
var temporalKeyColumns = []string{"create_time", "start_time", "end_time"}

// DropSet is the resolved set of column names removed for one metric:
// the universal defaults plus the metric's extra drop columns. It is
// computed once per metric, not per file.
type DropSet map[string]struct{}

// NewDropSet merges the universal drop list with a metric's extra columns.
func NewDropSet(def health.MetricDefinition) DropSet {
	set := make(DropSet, len(health.DefaultDropColumns)+len(def.ExtraDropColumns))
	for _, c := range health.DefaultDropColumns {
		set[c] = struct{}{}
	}
	for _, c := range def.ExtraDropColumns {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether the column is dropped.
func (s DropSet) Contains(column string) bool {
	_, ok := s[column]
	return ok
}

// Normalize turns one raw export fragment into its normalized form:
//
//  1. Column names are reduced to the segment after the last dot, so
//     "com.samsung.health.heart_rate.create_time" becomes "create_time".
//     When stripping produces duplicate names the last occurrence wins.
//  2. Columns in the drop set are removed. Absent columns are ignored.
//  3. create_time, start_time and end_time are relocated to the front in
//     that order, skipping any not present; the relative order of the
//     remaining columns is preserved.
//
// The input fragment is not modified.
func Normalize(frag health.Table, drop DropSet) health.Table {
	type keptColumn struct {
		name string
		src  int
	}

	// Strip prefixes and apply the drop set. Later duplicates replace
	// earlier ones so each surviving name maps to a single source index.
	var kept []keptColumn
	position := make(map[string]int)
	for i, col := range frag.Columns {
		name := stripPrefix(col)
		// Exports end rows with a trailing comma, which shows up as a
		// nameless column.
		if name == "" || drop.Contains(name) {
			continue
		}
		if at, dup := position[name]; dup {
			kept[at].src = i
			continue
		}
		position[name] = len(kept)
		kept = append(kept, keptColumn{name: name, src: i})
	}

	// Pull the temporal keys to the front.
	var ordered []keptColumn
	seen := make(map[string]bool, len(temporalKeyColumns))
	for _, key := range temporalKeyColumns {
		if at, ok := position[key]; ok {
			ordered = append(ordered, kept[at])
			seen[key] = true
		}
	}
	for _, col := range kept {
		if !seen[col.name] {
			ordered = append(ordered, col)
		}
	}

	out := health.Table{Columns: make([]string, len(ordered))}
	for i, col := range ordered {
		out.Columns[i] = col.name
	}
	for _, row := range frag.Rows {
		normalized := make([]string, len(ordered))
		for i, col := range ordered {
			if col.src < len(row) {
				normalized[i] = row[col.src]
			}
		}
		out.Rows = append(out.Rows, normalized)
	}
	return out
}

func stripPrefix(column string) string {
	if idx := strings.LastIndex(column, "."); idx >= 0 {
		column = column[idx+1:]
	}
	return strings.TrimSpace(column)
}
