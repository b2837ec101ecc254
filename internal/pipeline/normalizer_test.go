package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcli/internal/health"
)

func TestNormalize_StripsPrefixes(t *testing.T) {
	frag := health.Table{
		Columns: []string{
			"com.samsung.health.heart_rate.create_time",
			"com.samsung.health.heart_rate.heart_rate",
			"com.samsung.health.heart_rate.max",
		},
		Rows: [][]string{
			{"2024-01-01 08:00:00.000", "72", "101"},
		},
	}

	out := Normalize(frag, DropSet{})

	assert.Equal(t, []string{"create_time", "heart_rate", "max"}, out.Columns)
	assert.Equal(t, [][]string{{"2024-01-01 08:00:00.000", "72", "101"}}, out.Rows)
}

func TestNormalize_DropsConfiguredColumns(t *testing.T) {
	def := health.MetricDefinition{ID: "heart_rate", ExtraDropColumns: []string{"max"}}
	drop := NewDropSet(def)

	frag := health.Table{
		Columns: []string{"create_time", "datauuid", "heart_rate", "max", "pkg_name"},
		Rows: [][]string{
			{"2024-01-01 08:00:00.000", "abc-123", "72", "101", "com.sec.android.app.shealth"},
		},
	}

	out := Normalize(frag, drop)

	assert.Equal(t, []string{"create_time", "heart_rate"}, out.Columns)
	assert.Equal(t, [][]string{{"2024-01-01 08:00:00.000", "72"}}, out.Rows)
}

func TestNormalize_AbsentDropColumnsAreIgnored(t *testing.T) {
	drop := NewDropSet(health.MetricDefinition{ExtraDropColumns: []string{"never_present"}})

	frag := health.Table{
		Columns: []string{"create_time", "value"},
		Rows:    [][]string{{"2024-01-01 08:00:00.000", "1"}},
	}

	out := Normalize(frag, drop)
	assert.Equal(t, []string{"create_time", "value"}, out.Columns)
	assert.Len(t, out.Rows, 1)
}

func TestNormalize_TemporalKeysMoveToFront(t *testing.T) {
	frag := health.Table{
		Columns: []string{"heart_rate", "end_time", "min", "create_time", "start_time"},
		Rows: [][]string{
			{"72", "e", "60", "c", "s"},
		},
	}

	out := Normalize(frag, DropSet{})

	assert.Equal(t, []string{"create_time", "start_time", "end_time", "heart_rate", "min"}, out.Columns)
	assert.Equal(t, [][]string{{"c", "s", "e", "72", "60"}}, out.Rows)
}

func TestNormalize_MissingTemporalKeysAreSkipped(t *testing.T) {
	frag := health.Table{
		Columns: []string{"value", "end_time"},
		Rows:    [][]string{{"1", "e"}},
	}

	out := Normalize(frag, DropSet{})
	assert.Equal(t, []string{"end_time", "value"}, out.Columns)
}

func TestNormalize_DuplicateStrippedNamesLastWins(t *testing.T) {
	// Stripping "com.samsung.health.heart_rate.heart_rate" collides with
	// the plain "heart_rate" column; the later occurrence supplies the
	// values.
	frag := health.Table{
		Columns: []string{"heart_rate", "create_time", "com.samsung.health.heart_rate.heart_rate"},
		Rows: [][]string{
			{"old", "2024-01-01 08:00:00.000", "new"},
		},
	}

	out := Normalize(frag, DropSet{})

	require.Equal(t, []string{"create_time", "heart_rate"}, out.Columns)
	assert.Equal(t, "new", out.Rows[0][1])
}

func TestNormalize_NamelessColumnsAreDropped(t *testing.T) {
	frag := health.Table{
		Columns: []string{"create_time", "value", ""},
		Rows:    [][]string{{"c", "1", ""}},
	}

	out := Normalize(frag, DropSet{})
	assert.Equal(t, []string{"create_time", "value"}, out.Columns)
	assert.Equal(t, [][]string{{"c", "1"}}, out.Rows)
}

func TestNormalize_ShortRowsPadWithEmpty(t *testing.T) {
	frag := health.Table{
		Columns: []string{"create_time", "a", "b"},
		Rows:    [][]string{{"c", "1"}},
	}

	out := Normalize(frag, DropSet{})
	assert.Equal(t, [][]string{{"c", "1", ""}}, out.Rows)
}

func TestNewDropSet_MergesUniversalAndMetricColumns(t *testing.T) {
	drop := NewDropSet(health.MetricDefinition{ExtraDropColumns: []string{"sleep_id"}})

	assert.True(t, drop.Contains("datauuid"))
	assert.True(t, drop.Contains("pkg_name"))
	assert.True(t, drop.Contains("sleep_id"))
	assert.False(t, drop.Contains("heart_rate"))
}
