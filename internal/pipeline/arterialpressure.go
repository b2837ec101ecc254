package pipeline

import (
	"sort"
	"strings"
	"time"

	"healthcli/internal/health"
)

// arterialPressureHandler reconstructs absolute mean arterial pressure
// values from the device's three-reading protocol: type 1 is a
// calibration reading, type 2 is an absolute reference measurement and
// type 3 is a delta relative to the most recent type 2 reading.
type arterialPressureHandler struct{}

const (
	readingCalibration = "1"
	readingReference   = "2"
	readingDelta       = "3"
)

func (arterialPressureHandler) Decode(t health.Table) health.Table { return t }

// Aggregate sorts the merged table chronologically, forward-fills the
// reference from type 2 rows and rewrites every type 3 measurement as
// reference plus delta. Cross-file row order cannot be trusted, so the
// reconstruction only runs on the fully merged table. A type 3 row seen
// before any reference keeps its original value. Type codes are mapped
// to labels last.
func (arterialPressureHandler) Aggregate(t health.Table) health.Table {
	timeIdx := t.ColumnIndex("create_time")
	typeIdx := t.ColumnIndex("type")
	measIdx := t.ColumnIndex("measurement")
	if typeIdx < 0 || measIdx < 0 {
		return t
	}

	rows := make([][]string, len(t.Rows))
	copy(rows, t.Rows)
	if timeIdx >= 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			ti, iok := rowTime(rows[i], timeIdx)
			tj, jok := rowTime(rows[j], timeIdx)
			if iok != jok {
				return !iok // unparseable timestamps sort first
			}
			return ti.Before(tj)
		})
	}

	var reference float64
	haveReference := false
	for i := range rows {
		switch cellAt(rows[i], typeIdx) {
		case readingReference:
			if v, ok := parseNumber(cellAt(rows[i], measIdx)); ok {
				reference = v
				haveReference = true
			}
		case readingDelta:
			if !haveReference {
				break
			}
			delta, ok := parseNumber(cellAt(rows[i], measIdx))
			if !ok {
				break
			}
			setCell(&rows[i], measIdx, formatNumber(reference+delta))
		}
	}

	out := health.Table{Columns: t.Columns, Rows: rows}
	return decodeEnum(out, readingTypeRule)
}

var readingTypeRule = EnumRule{
	Column: "type",
	Mapping: map[int]string{
		1: "Calibration/Initialization",
		2: "Reference measurement",
		3: "Measurement",
	},
	Unmapped: KeepRaw,
}

func rowTime(row []string, idx int) (time.Time, bool) {
	return ParseExportTime(cellAt(row, idx))
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
