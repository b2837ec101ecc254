package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcli/internal/health"
)

func pressureTable(rows ...[]string) health.Table {
	t := health.NewTable("create_time", "type", "measurement")
	for _, row := range rows {
		t.AppendRow(row)
	}
	return t
}

func TestArterialPressureAggregate_ReconstructsDeltas(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
		[]string{"2024-01-01 09:00:00.000", "3", "5"},
		[]string{"2024-01-01 10:00:00.000", "3", "-2.5"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	require.Len(t, out.Rows, 3)
	assert.Equal(t, []string{"2024-01-01 08:00:00.000", "Reference measurement", "80"}, out.Rows[0])
	assert.Equal(t, []string{"2024-01-01 09:00:00.000", "Measurement", "85"}, out.Rows[1])
	assert.Equal(t, []string{"2024-01-01 10:00:00.000", "Measurement", "77.5"}, out.Rows[2])
}

func TestArterialPressureAggregate_ReferenceUpdatesForwardOnly(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
		[]string{"2024-01-01 09:00:00.000", "3", "5"},
		[]string{"2024-01-02 08:00:00.000", "2", "90"},
		[]string{"2024-01-02 09:00:00.000", "3", "5"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	assert.Equal(t, "85", out.Rows[1][2])
	assert.Equal(t, "95", out.Rows[3][2])
}

func TestArterialPressureAggregate_SortsAcrossFragmentsBeforeFilling(t *testing.T) {
	// The merged table interleaves two export files; rows must be put in
	// chronological order before the forward fill or deltas would pick up
	// the wrong reference.
	in := pressureTable(
		[]string{"2024-01-02 09:00:00.000", "3", "1"},
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
		[]string{"2024-01-02 08:00:00.000", "2", "90"},
		[]string{"2024-01-01 09:00:00.000", "3", "1"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	require.Len(t, out.Rows, 4)
	assert.Equal(t, "80", out.Rows[0][2])
	assert.Equal(t, "81", out.Rows[1][2])
	assert.Equal(t, "90", out.Rows[2][2])
	assert.Equal(t, "91", out.Rows[3][2])
}

func TestArterialPressureAggregate_DeltaBeforeAnyReference(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 07:00:00.000", "3", "5"},
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	// Without a reference the delta row keeps its original value; it is
	// never rewritten to zero.
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "5", out.Rows[0][2])
	assert.Equal(t, "Measurement", out.Rows[0][1])
}

func TestArterialPressureAggregate_CalibrationRowsPassThrough(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 07:00:00.000", "1", "0"},
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	assert.Equal(t, "Calibration/Initialization", out.Rows[0][1])
	assert.Equal(t, "0", out.Rows[0][2])
}

func TestArterialPressureAggregate_UnknownTypeKeptRaw(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 07:00:00.000", "9", "42"},
	)

	out := arterialPressureHandler{}.Aggregate(in)

	require.Len(t, out.Rows, 1)
	assert.Equal(t, "9", out.Rows[0][1])
	assert.Equal(t, "42", out.Rows[0][2])
}

func TestArterialPressureAggregate_IsIdempotent(t *testing.T) {
	in := pressureTable(
		[]string{"2024-01-01 08:00:00.000", "2", "80"},
		[]string{"2024-01-01 09:00:00.000", "3", "5"},
	)

	h := arterialPressureHandler{}
	once := h.Aggregate(in)
	twice := h.Aggregate(once)
	assert.Equal(t, once, twice)
}
