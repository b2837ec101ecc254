package pipeline

import "healthcli/internal/health"

// MergeFragments concatenates normalized per-file fragments into one
// table, in fragment-then-row order. The column set is the union across
// fragments in first-seen order; rows from fragments lacking a column
// get an empty value for it. No dedup happens here.
func MergeFragments(fragments []health.Table) health.Table {
	var merged health.Table
	seen := make(map[string]bool)
	for _, frag := range fragments {
		for _, col := range frag.Columns {
			if !seen[col] {
				seen[col] = true
				merged.Columns = append(merged.Columns, col)
			}
		}
	}

	for _, frag := range fragments {
		// Map fragment column positions onto merged positions once per
		// fragment.
		target := make([]int, len(frag.Columns))
		for i, col := range frag.Columns {
			target[i] = mergedIndex(merged.Columns, col)
		}
		for _, row := range frag.Rows {
			out := make([]string, len(merged.Columns))
			for i, cell := range row {
				if i < len(target) && target[i] >= 0 {
					out[target[i]] = cell
				}
			}
			merged.Rows = append(merged.Rows, out)
		}
	}
	return merged
}

func mergedIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
