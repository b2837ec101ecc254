package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// columnBlacklist removes identifier-like numeric columns from the
// plottable set.
var columnBlacklist = map[string]bool{
	"tag_id":          true,
	"source":          true,
	"coverage_rate":   true,
	"client_data_ver": true,
	"custom":          true,
}

// Point is one plotted sample.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is the plotted data for one column, with an optional polynomial
// trend overlay evaluated at the same x positions.
type Series struct {
	Column string  `json:"column"`
	Points []Point `json:"points"`
	Trend  []Point `json:"trend,omitempty"`
}

// SeriesRequest selects and filters session data for plotting.
type SeriesRequest struct {
	Columns []string
	// From/To bound start_time inclusively; zero values leave the bound
	// open.
	From time.Time
	To   time.Time
	// NightFrom/NightTo restrict rows to a clock window ("HH:MM"); a
	// window whose start is after its end wraps past midnight. Both must
	// be set to take effect.
	NightFrom string
	NightTo   string
	// TrendDegree adds a least-squares polynomial trend of this degree
	// when positive. The trend needs more points than its degree.
	TrendDegree int
}

// Series extracts the requested columns from a session as time series.
// Non-numeric cells are skipped per column.
func (s *Service) Series(sessionID string, req SeriesRequest) ([]Series, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	keep, err := rowSelector(sess, req)
	if err != nil {
		return nil, err
	}

	var out []Series
	for _, column := range req.Columns {
		idx := sess.Table.ColumnIndex(column)
		if idx < 0 {
			return nil, fmt.Errorf("column %s not found", column)
		}

		series := Series{Column: column}
		for i, row := range sess.Table.Rows {
			if !keep[i] || idx >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil {
				continue
			}
			series.Points = append(series.Points, Point{Time: sess.Times[i], Value: v})
		}

		if req.TrendDegree > 0 && len(series.Points) > req.TrendDegree {
			series.Trend = trendLine(series.Points, req.TrendDegree)
		}
		out = append(out, series)
	}
	return out, nil
}

// NumericColumns returns the session's plottable columns: those with at
// least one numeric value and not blacklisted.
func (s *Service) NumericColumns(sessionID string) ([]string, error) {
	sess, ok := s.Session(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	var cols []string
	for idx, column := range sess.Table.Columns {
		if columnBlacklist[column] || isTemporalKey(column) {
			continue
		}
		for _, row := range sess.Table.Rows {
			if idx >= len(row) {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64); err == nil {
				cols = append(cols, column)
				break
			}
		}
	}
	return cols, nil
}

func isTemporalKey(column string) bool {
	switch column {
	case "create_time", "start_time", "end_time":
		return true
	}
	return false
}

// rowSelector computes which rows pass the date-range and night-window
// filters.
func rowSelector(sess *Session, req SeriesRequest) ([]bool, error) {
	var night *nightWindow
	if req.NightFrom != "" || req.NightTo != "" {
		w, err := parseNightWindow(req.NightFrom, req.NightTo)
		if err != nil {
			return nil, err
		}
		night = &w
	}

	keep := make([]bool, len(sess.Times))
	for i, ts := range sess.Times {
		if !req.From.IsZero() && ts.Before(req.From) {
			continue
		}
		if !req.To.IsZero() && ts.After(req.To) {
			continue
		}
		if night != nil && !night.contains(ts) {
			continue
		}
		keep[i] = true
	}
	return keep, nil
}

// nightWindow is a wraparound clock-time window. A window whose from is
// later than its to spans midnight, e.g. 21:00-04:30.
type nightWindow struct {
	from int // minutes since midnight
	to   int
}

func parseNightWindow(from, to string) (nightWindow, error) {
	f, err := parseClock(from)
	if err != nil {
		return nightWindow{}, fmt.Errorf("invalid night window start: %w", err)
	}
	t, err := parseClock(to)
	if err != nil {
		return nightWindow{}, fmt.Errorf("invalid night window end: %w", err)
	}
	return nightWindow{from: f, to: t}, nil
}

func (w nightWindow) contains(ts time.Time) bool {
	m := ts.Hour()*60 + ts.Minute()
	if w.from <= w.to {
		return m >= w.from && m <= w.to
	}
	return m >= w.from || m <= w.to
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
