package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportTime(t *testing.T) {
	ts, ok := ParseExportTime("2024-03-15 22:41:07.123")
	require.True(t, ok)
	assert.Equal(t, 22, ts.Hour())
	assert.Equal(t, 123000000, ts.Nanosecond())

	ts, ok = ParseExportTime("2024-03-15 22:41:07")
	require.True(t, ok)
	assert.Equal(t, 41, ts.Minute())

	_, ok = ParseExportTime("15/03/2024")
	assert.False(t, ok)
	_, ok = ParseExportTime("")
	assert.False(t, ok)
}

func TestClockFromHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{7, "07:00"},
		{7.5, "07:30"},
		{23.25, "23:15"},
		{7.9999, "08:00"}, // minute rounding carries into the hour
		{0.0166, "00:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clockFromHours(tt.hours), "hours=%v", tt.hours)
	}
}

func TestClockFromMillis(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "00:00"},
		{630000, "00:10"},  // 10.5 minutes truncate to 10
		{3659999, "01:00"}, // just under 61 minutes
		{5400000, "01:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clockFromMillis(tt.ms), "ms=%v", tt.ms)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "85", formatNumber(85.0))
	assert.Equal(t, "85.5", formatNumber(85.5))
	assert.Equal(t, "-3", formatNumber(-3.0))
}

func TestParseNumber(t *testing.T) {
	v, ok := parseNumber(" 42.5 ")
	require.True(t, ok)
	assert.Equal(t, 42.5, v)

	_, ok = parseNumber("")
	assert.False(t, ok)
	_, ok = parseNumber("n/a")
	assert.False(t, ok)
}
