package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcli/internal/health"
)

func TestSnoringAggregate_SumsDurationsPerDay(t *testing.T) {
	in := health.NewTable("create_time", "duration")
	in.AppendRow([]string{"2024-01-05 23:10:00.000", "30000"})
	in.AppendRow([]string{"2024-01-05 23:40:00.000", "600000"})
	in.AppendRow([]string{"2024-01-07 01:15:00.000", "5400000"})

	out := snoringHandler{}.Aggregate(in)

	require.Equal(t, []string{"create_time", "duration"}, out.Columns)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, []string{"2024-01-05", "00:10"}, out.Rows[0])
	assert.Equal(t, []string{"2024-01-07", "01:30"}, out.Rows[1])
}

func TestSnoringAggregate_DaysSortAscending(t *testing.T) {
	in := health.NewTable("create_time", "duration")
	in.AppendRow([]string{"2024-03-10 02:00:00.000", "60000"})
	in.AppendRow([]string{"2024-01-02 03:00:00.000", "60000"})
	in.AppendRow([]string{"2024-02-20 04:00:00.000", "60000"})

	out := snoringHandler{}.Aggregate(in)

	require.Len(t, out.Rows, 3)
	assert.Equal(t, "2024-01-02", out.Rows[0][0])
	assert.Equal(t, "2024-02-20", out.Rows[1][0])
	assert.Equal(t, "2024-03-10", out.Rows[2][0])
}

func TestSnoringAggregate_BadCellsAreTolerated(t *testing.T) {
	in := health.NewTable("create_time", "duration")
	in.AppendRow([]string{"not-a-time", "60000"}) // dropped
	in.AppendRow([]string{"2024-01-05 23:00:00.000", "garbage"})
	in.AppendRow([]string{"2024-01-05 23:30:00.000", "120000"})

	out := snoringHandler{}.Aggregate(in)

	require.Len(t, out.Rows, 1)
	// The garbage duration counts as zero.
	assert.Equal(t, []string{"2024-01-05", "00:02"}, out.Rows[0])
}

func TestSnoringAggregate_MissingColumnsAreNoOp(t *testing.T) {
	in := health.NewTable("create_time")
	in.AppendRow([]string{"2024-01-05 23:00:00.000"})

	out := snoringHandler{}.Aggregate(in)
	assert.Equal(t, in, out)
}
