package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heartRateExport = "com.samsung.shealth.tracker.heart_rate,5021,metadata\n" +
	"com.samsung.health.heart_rate.start_time,com.samsung.health.heart_rate.heart_rate,com.samsung.health.heart_rate.tag_id\n" +
	"2024-01-01 08:00:00.000,72,10001\n" +
	"2024-01-02 23:30:00.000,64,10001\n" +
	"2024-01-03 02:10:00.000,58,10001\n"

func uploadFrom(name, content string) Upload {
	return Upload{Name: name, Reader: strings.NewReader(content)}
}

func TestCreateSession_IndexesRowsByStartTime(t *testing.T) {
	svc := NewService(nil)

	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, []string{"hr.csv"}, sess.Sources)

	require.Len(t, sess.Table.Rows, 3)
	require.Len(t, sess.Times, 3)
	assert.True(t, sess.Times[0].Before(sess.Times[1]))
	assert.True(t, sess.Times[1].Before(sess.Times[2]))

	// Every row carries its source file.
	srcIdx := sess.Table.ColumnIndex("source")
	require.GreaterOrEqual(t, srcIdx, 0)
	assert.Equal(t, "hr.csv", sess.Table.Rows[0][srcIdx])

	got, ok := svc.Session(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestCreateSession_MergesMultipleFilesChronologically(t *testing.T) {
	later := "metadata\n" +
		"start_time,heart_rate\n" +
		"2024-02-01 08:00:00.000,70\n"
	earlier := "metadata\n" +
		"start_time,heart_rate\n" +
		"2023-12-01 08:00:00.000,90\n"

	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{
		uploadFrom("later.csv", later),
		uploadFrom("earlier.csv", earlier),
	})
	require.NoError(t, err)

	require.Len(t, sess.Times, 2)
	assert.Equal(t, 2023, sess.Times[0].Year())
	assert.Equal(t, 2024, sess.Times[1].Year())
}

func TestCreateSession_DropsRowsWithoutStartTime(t *testing.T) {
	export := "metadata\n" +
		"start_time,heart_rate\n" +
		"garbage,70\n" +
		"2024-01-01 08:00:00.000,72\n"

	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", export)})
	require.NoError(t, err)
	assert.Len(t, sess.Table.Rows, 1)
}

func TestCreateSession_NoUploads(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.CreateSession(nil)
	assert.Error(t, err)
}

func TestNumericColumns_ExcludesIdentifiersAndTimes(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	cols, err := svc.NumericColumns(sess.ID)
	require.NoError(t, err)

	assert.Contains(t, cols, "heart_rate")
	assert.NotContains(t, cols, "start_time")
	assert.NotContains(t, cols, "tag_id")
	assert.NotContains(t, cols, "source")
}

func TestSeries_DateRangeFilter(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	series, err := svc.Series(sess.ID, SeriesRequest{
		Columns: []string{"heart_rate"},
		From:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, series, 1)
	require.Len(t, series[0].Points, 1)
	assert.Equal(t, 64.0, series[0].Points[0].Value)
}

func TestSeries_NightWindowWrapsMidnight(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	// 21:00-04:30 covers 23:30 and 02:10 but not 08:00.
	series, err := svc.Series(sess.ID, SeriesRequest{
		Columns:   []string{"heart_rate"},
		NightFrom: "21:00",
		NightTo:   "04:30",
	})
	require.NoError(t, err)

	require.Len(t, series, 1)
	require.Len(t, series[0].Points, 2)
	assert.Equal(t, 64.0, series[0].Points[0].Value)
	assert.Equal(t, 58.0, series[0].Points[1].Value)
}

func TestSeries_NonWrappingNightWindow(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	series, err := svc.Series(sess.ID, SeriesRequest{
		Columns:   []string{"heart_rate"},
		NightFrom: "07:00",
		NightTo:   "09:00",
	})
	require.NoError(t, err)
	require.Len(t, series[0].Points, 1)
	assert.Equal(t, 72.0, series[0].Points[0].Value)
}

func TestSeries_InvalidNightWindow(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	_, err = svc.Series(sess.ID, SeriesRequest{
		Columns:   []string{"heart_rate"},
		NightFrom: "not-a-clock",
		NightTo:   "04:30",
	})
	assert.Error(t, err)
}

func TestSeries_SkipsNonNumericCells(t *testing.T) {
	export := "metadata\n" +
		"start_time,value\n" +
		"2024-01-01 08:00:00.000,72\n" +
		"2024-01-02 08:00:00.000,n/a\n"

	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("v.csv", export)})
	require.NoError(t, err)

	series, err := svc.Series(sess.ID, SeriesRequest{Columns: []string{"value"}})
	require.NoError(t, err)
	require.Len(t, series[0].Points, 1)
}

func TestSeries_TrendRequiresEnoughPoints(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	series, err := svc.Series(sess.ID, SeriesRequest{
		Columns:     []string{"heart_rate"},
		TrendDegree: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, series[0].Trend)

	series, err = svc.Series(sess.ID, SeriesRequest{
		Columns:     []string{"heart_rate"},
		TrendDegree: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, series[0].Trend)
}

func TestSeries_UnknownColumnAndSession(t *testing.T) {
	svc := NewService(nil)
	sess, err := svc.CreateSession([]Upload{uploadFrom("hr.csv", heartRateExport)})
	require.NoError(t, err)

	_, err = svc.Series(sess.ID, SeriesRequest{Columns: []string{"no_such_column"}})
	assert.Error(t, err)

	_, err = svc.Series("missing-session", SeriesRequest{Columns: []string{"heart_rate"}})
	assert.Error(t, err)
}
