package pipeline

import (
	"strconv"
	"strings"

	"healthcli/internal/health"
)

// UnmappedPolicy controls what happens to a row whose enum code has no
// mapping entry.
type UnmappedPolicy int

const (
	// DropRow removes the row from the table.
	DropRow UnmappedPolicy = iota
	// KeepRaw leaves the original cell value untouched.
	KeepRaw
	// UseFallback replaces the cell with the rule's fallback label.
	UseFallback
)

// EnumRule decodes integer codes in one column into display labels.
type EnumRule struct {
	Column   string
	Mapping  map[int]string
	Unmapped UnmappedPolicy
	Fallback string

	// FirstOfList extracts the first integer from a bracketed list such
	// as "[1,2]" before the mapping is applied; an empty or unparseable
	// list decodes as code 0.
	FirstOfList bool
}

// decodeEnum applies one rule to a table. Rows whose code cannot be
// parsed follow the same policy as unmapped codes, except that
// FirstOfList coerces them to 0 first. A table without the rule's column
// is returned unchanged. Decoding is idempotent: label values are
// recognized and passed through untouched.
func decodeEnum(t health.Table, rule EnumRule) health.Table {
	col := t.ColumnIndex(rule.Column)
	if col < 0 {
		return t
	}

	out := health.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		raw := ""
		if col < len(row) {
			raw = strings.TrimSpace(row[col])
		}

		// Already-decoded labels are never re-mapped or dropped; the
		// mapping keys are numeric.
		if isKnownLabel(raw, rule) {
			out.Rows = append(out.Rows, row)
			continue
		}

		code, parsed := parseEnumCode(raw, rule.FirstOfList)
		if !parsed {
			if applyPolicy(&row, col, rule) {
				out.Rows = append(out.Rows, row)
			}
			continue
		}

		label, ok := rule.Mapping[code]
		if !ok {
			if applyPolicy(&row, col, rule) {
				out.Rows = append(out.Rows, row)
			}
			continue
		}
		setCell(&row, col, label)
		out.Rows = append(out.Rows, row)
	}
	return out
}

// applyPolicy mutates the row per the rule's unmapped policy and reports
// whether the row is retained.
func applyPolicy(row *[]string, col int, rule EnumRule) bool {
	switch rule.Unmapped {
	case DropRow:
		return false
	case UseFallback:
		setCell(row, col, rule.Fallback)
		return true
	default:
		return true
	}
}

func isKnownLabel(value string, rule EnumRule) bool {
	if value == rule.Fallback && rule.Unmapped == UseFallback {
		return true
	}
	for _, label := range rule.Mapping {
		if value == label {
			return true
		}
	}
	return false
}

func setCell(row *[]string, col int, value string) {
	for len(*row) <= col {
		*row = append(*row, "")
	}
	(*row)[col] = value
}

// parseEnumCode parses a plain integer code, or the first element of a
// bracketed list when firstOfList is set. The second return value is
// false only for plain codes that are not integers; list values always
// coerce, defaulting to 0.
func parseEnumCode(raw string, firstOfList bool) (int, bool) {
	if firstOfList {
		return firstListCode(raw), true
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return code, true
}

// firstListCode extracts the leading integer from values like "[1,2]".
// Empty or unparseable lists decode as 0.
func firstListCode(raw string) int {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return code
}

// Enum mappings per metric, as coded in the Samsung Health export format.

var sleepStageRule = EnumRule{
	Column: "stage",
	Mapping: map[int]string{
		40001: "Awake",
		40002: "Light sleep",
		40003: "Deep sleep",
		40004: "REM sleep",
	},
	Unmapped: DropRow,
}

var ecgSymptomsRule = EnumRule{
	Column: "symptoms",
	Mapping: map[int]string{
		0: "None",
		1: "Shortness of breath",
		2: "Fatigue",
		3: "Dizziness",
		4: "Chest pain/pressure",
		5: "Palpitations",
		6: "Faintness",
	},
	Unmapped:    UseFallback,
	Fallback:    "None",
	FirstOfList: true,
}

var ecgClassificationRule = EnumRule{
	Column: "classification",
	Mapping: map[int]string{
		1: "Sinus rhythm",
		2: "Atrial fibrillation",
		3: "Inconclusive",
		4: "Poor recording",
	},
	Unmapped: DropRow,
}

var foodMealTypeRule = EnumRule{
	Column: "meal_type",
	Mapping: map[int]string{
		100001: "Breakfast",
		100002: "Lunch",
		100003: "Dinner",
		100004: "Morning snack",
		100005: "Afternoon snack",
		100006: "Evening snack",
	},
	Unmapped: DropRow,
}

var respiratoryOutlierRule = EnumRule{
	Column: "is_outlier",
	Mapping: map[int]string{
		0: "valid",
		1: "outlier",
	},
	Unmapped: DropRow,
}

var exerciseTypeRule = EnumRule{
	Column: "exercise_type",
	Mapping: map[int]string{
		1001:  "Walking",
		1002:  "Running",
		2001:  "Baseball",
		3001:  "Golf",
		11007: "Cycling",
		13001: "Hiking",
		14001: "Swimming",
		15002: "Pilates",
		15003: "Yoga",
		15004: "Stretching",
		15006: "Weight machine",
	},
	Unmapped: UseFallback,
	Fallback: "Other/Unknown",
}
